package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"clubscore/repository"
)

var scoreEventDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "score_event_duration_seconds",
	Help: "Duration of one event scoring pass",
	Buckets: []float64{
		0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1,
	},
}, []string{"event_type"})

// ScoreEvent routes an event to the scorer matching its type and returns the
// same result set with Points and RankOverall recomputed. Unfinished events are
// zeroed out instead of scored; an unrecognized event type passes the results
// through untouched.
func ScoreEvent(event *repository.Event, results []*repository.Result, participants []*repository.Participant, teams []*repository.Team, members []*repository.TeamMember, settings *repository.ScoringSettings) []*repository.Result {
	timer := prometheus.NewTimer(scoreEventDuration.WithLabelValues(string(event.EventType)))
	defer timer.ObserveDuration()
	if settings == nil {
		settings = &repository.ScoringSettings{}
	}
	if !event.Finished {
		for _, result := range results {
			result.Points = 0
			result.RankOverall = nil
		}
		return results
	}
	switch event.EventType {
	case repository.IndividualTimeTrial, repository.MountainTimeTrial:
		return ScoreIndividualTimeTrial(event, results, participants, settings)
	case repository.HandicapRace:
		return ScoreHandicapRace(results, participants, settings)
	case repository.TeamTimeTrial:
		return ScoreTeamTimeTrial(event, results, teams, members, participants, settings)
	}
	return results
}
