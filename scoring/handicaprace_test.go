package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clubscore/repository"
)

func handicapRaceSettings() *repository.ScoringSettings {
	return &repository.ScoringSettings{
		BasePointsA:  10,
		BasePointsB:  8,
		BasePointsC:  6,
		BasePointsD:  4,
		WinnerPoints: repository.PointsTable{3, 2, 1},
	}
}

func TestScoreHandicapRace(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, FirstName: "Jan", LastName: "Weiss", PerfClass: repository.PerfClassD, Gender: repository.GenderMale},
		{Id: 2, FirstName: "Tom", LastName: "Roth", PerfClass: repository.PerfClassA, Gender: repository.GenderMale},
		{Id: 3, FirstName: "Mia", LastName: "Blau", PerfClass: repository.PerfClassB, Gender: repository.GenderFemale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, FinisherGroup: 2},
		{Id: 2, EventId: 1, ParticipantId: 2, FinisherGroup: 1, WinnerRank: intPtr(1)},
		{Id: 3, EventId: 1, ParticipantId: 3, Dnf: true},
	}

	scored := ScoreHandicapRace(results, participants, handicapRaceSettings())

	assert.Len(t, scored, 3)
	// class D in the second group: max(1, 4-1)
	assert.Equal(t, 3, scored[0].Points)
	// class A in group 1 with winner rank 1
	assert.Equal(t, 10+3, scored[1].Points)
	assert.Equal(t, 0, scored[2].Points)
}

func TestScoreHandicapRaceFloorsAtOnePoint(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, PerfClass: repository.PerfClassD, Gender: repository.GenderMale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, FinisherGroup: 2},
	}
	// base points unconfigured: finisher still earns one point
	ScoreHandicapRace(results, participants, &repository.ScoringSettings{})
	assert.Equal(t, 1, results[0].Points)
}

func TestScoreHandicapRaceUnknownParticipant(t *testing.T) {
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 42, FinisherGroup: 1},
	}
	ScoreHandicapRace(results, nil, handicapRaceSettings())
	assert.Equal(t, 0, results[0].Points)
}

func TestGroupResults(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, FirstName: "Jan", LastName: "Weiss", PerfClass: repository.PerfClassD, Gender: repository.GenderMale},
		{Id: 2, FirstName: "Tom", LastName: "Roth", PerfClass: repository.PerfClassA, Gender: repository.GenderMale},
		{Id: 3, FirstName: "Uwe", LastName: "Alt", PerfClass: repository.PerfClassB, Gender: repository.GenderMale},
		{Id: 4, FirstName: "Mia", LastName: "Blau", PerfClass: repository.PerfClassB, Gender: repository.GenderFemale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, Points: 3},
		{Id: 2, EventId: 1, ParticipantId: 2, Points: 10},
		{Id: 3, EventId: 1, ParticipantId: 3, Points: 10},
		{Id: 4, EventId: 1, ParticipantId: 4, Points: 7},
	}

	grouped := GroupResults(results, participants)

	assert.Len(t, grouped[GroupAmbitious], 1)
	assert.Len(t, grouped[GroupWomen], 1)
	assert.Len(t, grouped[GroupHobby], 2)
	// equal points rank alphabetically but share the rank
	assert.Equal(t, "Alt, Uwe", grouped[GroupHobby][0].Participant.DisplayName())
	assert.Equal(t, 1, grouped[GroupHobby][0].Rank)
	assert.Equal(t, 1, grouped[GroupHobby][1].Rank)
}
