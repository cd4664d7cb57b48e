package monitoring

import (
	"sync"
	"time"

	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var menuStashAge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "rsp_tutorials_menu_stash_age_seconds",
	Help: "Age of the tutorials menu stash, -1 when there is none",
})

var menuStashFresh = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "rsp_tutorials_menu_stash_fresh",
	Help: "1 when the menu stash is within its freshness window",
})

const DefaultInterval = 30 * time.Second

// Monitor publishes the state of the on-disk stashes.
type Monitor struct {
	cfg      config.Config
	interval time.Duration

	stop chan struct{}
	once sync.Once
}

func NewMonitor(cfg config.Config, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		cfg:      cfg,
		interval: interval,
		stop:     make(chan struct{}),
	}
}
