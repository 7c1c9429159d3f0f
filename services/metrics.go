// services/metrics.go
package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitlog_achievement_evaluations_total",
			Help: "Achievement engine evaluations by event kind",
		},
		[]string{"event"},
	)
	unlocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitlog_achievement_unlocks_total",
			Help: "Achievements unlocked",
		},
	)
	evalFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitlog_achievement_write_failures_total",
			Help: "Per-definition progress write failures",
		},
	)
)
