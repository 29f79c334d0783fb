package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clubscore/repository"
)

func intPtr(i int) *int {
	return &i
}

func TestScoreIndividualTimeTrial(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, FirstName: "Peter", LastName: "Lang", BirthYear: 1990, PerfClass: repository.PerfClassB, Gender: repository.GenderMale},
		{Id: 2, FirstName: "Anna", LastName: "Kurz", BirthYear: 1985, PerfClass: repository.PerfClassC, Gender: repository.GenderFemale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, TimeSeconds: intPtr(1900)},
		{Id: 2, EventId: 1, ParticipantId: 2, TimeSeconds: intPtr(2000), HasAeroBars: true},
	}
	event := &repository.Event{Id: 1, Season: 2025, EventType: repository.IndividualTimeTrial, Finished: true}
	// aero bar penalty and gender bonus both disabled
	settings := &repository.ScoringSettings{AeroBarsSeconds: -30, GenderBonusSeconds: -60}

	scored := ScoreIndividualTimeTrial(event, results, participants, settings)

	assert.Len(t, scored, 2)
	assert.Equal(t, 1, *scored[0].RankOverall)
	assert.Equal(t, 2, *scored[1].RankOverall)
	// both inside the top-3 placement bracket, no winner bonus assigned
	assert.Equal(t, 8, scored[0].Points)
	assert.Equal(t, 8, scored[1].Points)
}

func TestScoreIndividualTimeTrialHandicapChangesOrder(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, FirstName: "Peter", LastName: "Lang", BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 2, FirstName: "Anna", LastName: "Kurz", BirthYear: 1985, PerfClass: repository.PerfClassC, Gender: repository.GenderFemale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, TimeSeconds: intPtr(1900)},
		{Id: 2, EventId: 1, ParticipantId: 2, TimeSeconds: intPtr(1950)},
	}
	event := &repository.Event{Id: 1, Season: 2025, EventType: repository.IndividualTimeTrial, Finished: true}
	settings := &repository.ScoringSettings{GenderBonusEnabled: true, GenderBonusSeconds: -60}

	ScoreIndividualTimeTrial(event, results, participants, settings)

	// Anna's adjusted 1890 beats Peter's 1900
	assert.Equal(t, 2, *results[0].RankOverall)
	assert.Equal(t, 1, *results[1].RankOverall)
}

func TestScoreIndividualTimeTrialBaselines(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 2, BirthYear: 1991, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 3, BirthYear: 1992, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, Dnf: true, TimeSeconds: intPtr(1800)},
		{Id: 2, EventId: 1, ParticipantId: 2, TimeSeconds: intPtr(0)},
		{Id: 3, EventId: 1, ParticipantId: 3},
		{Id: 4, EventId: 1, ParticipantId: 99, TimeSeconds: intPtr(1700)},
	}
	event := &repository.Event{Id: 1, Season: 2025, EventType: repository.MountainTimeTrial, Finished: true}

	scored := ScoreIndividualTimeTrial(event, results, participants, &repository.ScoringSettings{})

	assert.Len(t, scored, 4)
	// DNF scores zero, everyone else keeps the baseline finisher point
	assert.Equal(t, 0, scored[0].Points)
	assert.Equal(t, 1, scored[1].Points)
	assert.Equal(t, 1, scored[2].Points)
	assert.Equal(t, 1, scored[3].Points)
	for _, result := range scored {
		assert.Nil(t, result.RankOverall)
	}
}

func TestScoreIndividualTimeTrialTiedTimesShareRank(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 2, BirthYear: 1991, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 3, BirthYear: 1992, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 4, BirthYear: 1993, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, TimeSeconds: intPtr(1800)},
		{Id: 2, EventId: 1, ParticipantId: 2, TimeSeconds: intPtr(1850)},
		{Id: 3, EventId: 1, ParticipantId: 3, TimeSeconds: intPtr(1850)},
		{Id: 4, EventId: 1, ParticipantId: 4, TimeSeconds: intPtr(1900)},
	}
	event := &repository.Event{Id: 1, Season: 2025, EventType: repository.IndividualTimeTrial, Finished: true}

	ScoreIndividualTimeTrial(event, results, participants, &repository.ScoringSettings{})

	assert.Equal(t, 1, *results[0].RankOverall)
	assert.Equal(t, 2, *results[1].RankOverall)
	assert.Equal(t, 2, *results[2].RankOverall)
	assert.Equal(t, 4, *results[3].RankOverall)
}

func TestScoreIndividualTimeTrialWinnerBonusIsManual(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 2, BirthYear: 1991, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, TimeSeconds: intPtr(1800)},
		{Id: 2, EventId: 1, ParticipantId: 2, TimeSeconds: intPtr(1900), WinnerRank: intPtr(2)},
	}
	event := &repository.Event{Id: 1, Season: 2025, EventType: repository.IndividualTimeTrial, Finished: true}
	settings := &repository.ScoringSettings{WinnerPoints: repository.PointsTable{3, 2, 1}}

	ScoreIndividualTimeTrial(event, results, participants, settings)

	// the fastest rider has no manually assigned winner rank and gets no bonus
	assert.Equal(t, 8, results[0].Points)
	assert.Equal(t, 8+2, results[1].Points)
}
