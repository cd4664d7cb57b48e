package network

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var transferredBytes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rsp_tutorials_transferred_bytes_total",
	Help: "Bytes written into user workspaces, by transfer kind",
}, []string{"kind"})
