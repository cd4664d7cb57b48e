package stash

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var stashHits = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rsp_tutorials_stash_hits_total",
	Help: "The number of stash loads served from disk",
}, []string{"stash"})

var stashMisses = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rsp_tutorials_stash_misses_total",
	Help: "The number of stash loads that found no fresh stash",
}, []string{"stash"})

var stashWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rsp_tutorials_stash_writes_total",
	Help: "The number of times a stash was rewritten",
}, []string{"stash"})
