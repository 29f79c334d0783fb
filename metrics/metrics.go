package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RescoreCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "clubscore_rescore_total",
	Help: "Number of event rescoring passes by event type",
}, []string{"event_type"})

var StandingsDiffCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "clubscore_standings_diffs_total",
		Help: "Number of standings recomputations that produced a change",
	},
)

var StandingsSubscriberGauge = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "clubscore_standings_subscribers",
		Help: "Currently connected standings websocket subscribers",
	},
)

var KafkaPublishErrorCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "clubscore_kafka_publish_errors_total",
		Help: "Number of failed standings diff publishes",
	},
)

var DiscordAnnounceErrorCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "clubscore_discord_announce_errors_total",
		Help: "Number of failed Discord podium announcements",
	},
)
