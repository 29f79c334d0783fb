package scoring

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"clubscore/repository"
)

var standingsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "standings_computation_duration_seconds",
	Help: "Duration of the season standings aggregation",
	Buckets: []float64{
		0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1,
	},
})

// EventScore is one attended event inside a standing. Dropped scores still
// show up in the list, flagged, so reports can strike them through.
type EventScore struct {
	EventId   int
	Points    int
	IsDropped bool
}

// Standing is a participant's season aggregate. SortedPoints holds the
// per-event points in descending order and exists purely for tie-breaking.
type Standing struct {
	Participant  *repository.Participant
	Scores       []*EventScore
	TotalPoints  int
	FinalPoints  int
	SortedPoints []int
}

// ComputeStandings builds the season-long overall ranking from all finished
// events' results, grouped into the three cohorts. A missed event already
// counts towards the drop allowance, so only the remainder of the configured
// drop count is taken from a participant's worst attended scores. Participants
// without any result in a finished event are left out entirely.
func ComputeStandings(results []*repository.Result, participants []*repository.Participant, events []*repository.Event, settings *repository.ScoringSettings) map[GroupLabel][]*Standing {
	timer := prometheus.NewTimer(standingsDuration)
	defer timer.ObserveDuration()

	dropScores := 0
	if settings != nil {
		dropScores = settings.DropScores
	}
	finished := make([]*repository.Event, 0, len(events))
	finishedIds := make(map[int]bool)
	for _, event := range events {
		if event.Finished {
			finished = append(finished, event)
			finishedIds[event.Id] = true
		}
	}

	byId := participantsById(participants)
	pointsByParticipant := make(map[int]map[int]int)
	for _, result := range results {
		if !finishedIds[result.EventId] || byId[result.ParticipantId] == nil {
			continue
		}
		if pointsByParticipant[result.ParticipantId] == nil {
			pointsByParticipant[result.ParticipantId] = make(map[int]int)
		}
		pointsByParticipant[result.ParticipantId][result.EventId] = result.Points
	}

	grouped := map[GroupLabel][]*Standing{
		GroupWomen:     {},
		GroupHobby:     {},
		GroupAmbitious: {},
	}
	for participantId, byEvent := range pointsByParticipant {
		participant := byId[participantId]
		standing := &Standing{Participant: participant}
		for _, event := range finished {
			if points, ok := byEvent[event.Id]; ok {
				standing.Scores = append(standing.Scores, &EventScore{EventId: event.Id, Points: points})
			}
		}
		applyDrops(standing, len(finished), dropScores)
		for _, score := range standing.Scores {
			standing.TotalPoints += score.Points
			if !score.IsDropped {
				standing.FinalPoints += score.Points
			}
			standing.SortedPoints = append(standing.SortedPoints, score.Points)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(standing.SortedPoints)))
		label := ClassifyGroup(participant)
		grouped[label] = append(grouped[label], standing)
	}

	for _, cohort := range grouped {
		sort.Slice(cohort, func(i, j int) bool {
			return standingLess(cohort[i], cohort[j])
		})
	}
	return grouped
}

// applyDrops flags the participant's worst attended scores as dropped. Missing
// an event entirely already costs one drop, so only the remainder is applied,
// capped at the number of attended events. When several events tie at the drop
// boundary the choice among them is arbitrary, but the dropped count is exact.
func applyDrops(standing *Standing, finishedEventCount int, dropScores int) {
	attended := len(standing.Scores)
	missed := finishedEventCount - attended
	drops := dropScores - missed
	if drops < 0 {
		drops = 0
	}
	if drops > attended {
		drops = attended
	}
	order := make([]int, attended)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return standing.Scores[order[i]].Points < standing.Scores[order[j]].Points
	})
	for i := 0; i < drops; i++ {
		standing.Scores[order[i]].IsDropped = true
	}
}

// standingLess orders two standings within a cohort: final points first, then
// the full descending per-event point lists element by element, then event
// count, then name.
func standingLess(a *Standing, b *Standing) bool {
	if a.FinalPoints != b.FinalPoints {
		return a.FinalPoints > b.FinalPoints
	}
	n := len(a.SortedPoints)
	if len(b.SortedPoints) < n {
		n = len(b.SortedPoints)
	}
	for i := 0; i < n; i++ {
		if a.SortedPoints[i] != b.SortedPoints[i] {
			return a.SortedPoints[i] > b.SortedPoints[i]
		}
	}
	if len(a.SortedPoints) != len(b.SortedPoints) {
		return len(a.SortedPoints) > len(b.SortedPoints)
	}
	return a.Participant.DisplayName() < b.Participant.DisplayName()
}
