package provision

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submitTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provision_submit_total",
			Help: "Total provisioning submissions by outcome",
		},
		[]string{"result"},
	)

	pollTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provision_poll_total",
			Help: "Total database readiness polls by outcome",
		},
		[]string{"result"},
	)
)
