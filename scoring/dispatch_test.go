package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clubscore/repository"
)

func TestScoreEventUnfinishedZeroesEverything(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, TimeSeconds: intPtr(1800), Points: 8, RankOverall: intPtr(1)},
	}
	event := &repository.Event{Id: 1, Season: 2025, EventType: repository.IndividualTimeTrial, Finished: false}

	scored := ScoreEvent(event, results, participants, nil, nil, &repository.ScoringSettings{})

	assert.Len(t, scored, 1)
	assert.Equal(t, 0, scored[0].Points)
	assert.Nil(t, scored[0].RankOverall)
}

func TestScoreEventUnknownTypePassesThrough(t *testing.T) {
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, Points: 5, RankOverall: intPtr(2)},
	}
	event := &repository.Event{Id: 1, Season: 2025, EventType: repository.EventType("Cyclocross"), Finished: true}

	scored := ScoreEvent(event, results, nil, nil, nil, nil)

	assert.Equal(t, 5, scored[0].Points)
	assert.Equal(t, 2, *scored[0].RankOverall)
}

func TestScoreEventIdempotent(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 2, BirthYear: 1985, PerfClass: repository.PerfClassB, Gender: repository.GenderFemale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, TimeSeconds: intPtr(1800)},
		{Id: 2, EventId: 1, ParticipantId: 2, TimeSeconds: intPtr(1900)},
	}
	event := &repository.Event{Id: 1, Season: 2025, EventType: repository.IndividualTimeTrial, Finished: true}
	settings := &repository.ScoringSettings{GenderBonusEnabled: true, GenderBonusSeconds: -200}

	ScoreEvent(event, results, participants, nil, nil, settings)
	firstPoints := []int{results[0].Points, results[1].Points}
	firstRanks := []int{*results[0].RankOverall, *results[1].RankOverall}

	ScoreEvent(event, results, participants, nil, nil, settings)

	assert.Equal(t, firstPoints, []int{results[0].Points, results[1].Points})
	assert.Equal(t, firstRanks, []int{*results[0].RankOverall, *results[1].RankOverall})
}

func TestScoreEventDispatchesByType(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, BirthYear: 1990, PerfClass: repository.PerfClassD, Gender: repository.GenderMale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, FinisherGroup: 2},
	}
	event := &repository.Event{Id: 1, Season: 2025, EventType: repository.HandicapRace, Finished: true}
	settings := &repository.ScoringSettings{BasePointsD: 4}

	ScoreEvent(event, results, participants, nil, nil, settings)

	assert.Equal(t, 3, results[0].Points)
}
