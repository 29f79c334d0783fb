package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var scorePersistDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "score_persist_duration_seconds",
	Help: "Duration of writing scored results back to the database",
})

func observePersist(start time.Time) {
	scorePersistDuration.Observe(time.Since(start).Seconds())
}
