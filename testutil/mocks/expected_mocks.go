package mocks

import (
	"github.com/lsst-sqre/rsp-jupyter-extensions/materialize"
	"github.com/lsst-sqre/rsp-jupyter-extensions/source"
)

//go:generate mockgen -destination=transferer.go -package=mocks . Transferer
//go:generate mockgen -destination=cloner.go -package=mocks . Cloner

type Transferer interface {
	materialize.Transferer
}

type Cloner interface {
	source.Cloner
}
