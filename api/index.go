package api

import (
	"net/http"

	"github.com/lsst-sqre/rsp-jupyter-extensions/api/types"
	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
)

func IndexHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, types.IndexResponse{
			Status:  "online",
			Version: config.Version(),
		})
	}
}

func VersionHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, types.VersionResponse{
			Version: config.Version(),
			Commit:  config.Commit(),
		})
	}
}
