package materialize

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rsp_tutorials_materializations_total",
	Help: "Materialization requests by outcome",
}, []string{"outcome"})
