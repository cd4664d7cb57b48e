package landing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var refreshes = promauto.NewCounter(prometheus.CounterOpts{
	Name: "rsp_tutorials_landing_refreshes_total",
	Help: "The number of times the landing page files were copied into the cache",
})
