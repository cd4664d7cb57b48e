package tutorials

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rebuilds = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rsp_tutorials_menu_rebuilds_total",
	Help: "The number of menu rebuilds by result",
}, []string{"result"})

var rebuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "rsp_tutorials_menu_rebuild_seconds",
	Help:    "How long it takes to scan and clone the tutorials",
	Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
})
