package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clubscore/repository"
)

func TestClassifyGroup(t *testing.T) {
	assert.Equal(t, GroupWomen, ClassifyGroup(&repository.Participant{Gender: repository.GenderFemale, PerfClass: repository.PerfClassD}))
	assert.Equal(t, GroupWomen, ClassifyGroup(&repository.Participant{Gender: repository.GenderFemale, PerfClass: repository.PerfClassA}))
	assert.Equal(t, GroupHobby, ClassifyGroup(&repository.Participant{Gender: repository.GenderMale, PerfClass: repository.PerfClassA}))
	assert.Equal(t, GroupHobby, ClassifyGroup(&repository.Participant{Gender: repository.GenderMale, PerfClass: repository.PerfClassB}))
	assert.Equal(t, GroupAmbitious, ClassifyGroup(&repository.Participant{Gender: repository.GenderMale, PerfClass: repository.PerfClassC}))
	assert.Equal(t, GroupAmbitious, ClassifyGroup(&repository.Participant{Gender: repository.GenderMale, PerfClass: repository.PerfClassD}))
}

func seasonEvents(count int) []*repository.Event {
	events := make([]*repository.Event, 0, count)
	for i := 1; i <= count; i++ {
		events = append(events, &repository.Event{
			Id:        i,
			Season:    2025,
			EventType: repository.IndividualTimeTrial,
			Finished:  true,
		})
	}
	return events
}

func TestComputeStandingsDropScoreWithMissedEvents(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, FirstName: "Paul", LastName: "Voll", BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 2, FirstName: "Nils", LastName: "Teil", BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
	}
	events := seasonEvents(4)
	results := []*repository.Result{
		// attended all four, lowest score gets dropped
		{Id: 1, EventId: 1, ParticipantId: 1, Points: 8},
		{Id: 2, EventId: 2, ParticipantId: 1, Points: 5},
		{Id: 3, EventId: 3, ParticipantId: 1, Points: 7},
		{Id: 4, EventId: 4, ParticipantId: 1, Points: 6},
		// missed one event, the miss consumes the drop allowance
		{Id: 5, EventId: 1, ParticipantId: 2, Points: 8},
		{Id: 6, EventId: 2, ParticipantId: 2, Points: 7},
		{Id: 7, EventId: 3, ParticipantId: 2, Points: 6},
	}
	settings := &repository.ScoringSettings{DropScores: 1}

	standings := ComputeStandings(results, participants, events, settings)

	ambitious := standings[GroupAmbitious]
	assert.Len(t, ambitious, 2)

	var full, partial *Standing
	for _, standing := range ambitious {
		if standing.Participant.Id == 1 {
			full = standing
		} else {
			partial = standing
		}
	}
	assert.Equal(t, 26, full.TotalPoints)
	assert.Equal(t, 21, full.FinalPoints)
	dropped := 0
	for _, score := range full.Scores {
		if score.IsDropped {
			dropped++
			assert.Equal(t, 5, score.Points)
		}
	}
	assert.Equal(t, 1, dropped)

	assert.Equal(t, 21, partial.TotalPoints)
	assert.Equal(t, 21, partial.FinalPoints)
	for _, score := range partial.Scores {
		assert.False(t, score.IsDropped)
	}
}

func TestComputeStandingsDropCountExactOnTies(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, FirstName: "Tim", LastName: "Gleich", BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
	}
	events := seasonEvents(4)
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, Points: 5},
		{Id: 2, EventId: 2, ParticipantId: 1, Points: 5},
		{Id: 3, EventId: 3, ParticipantId: 1, Points: 5},
		{Id: 4, EventId: 4, ParticipantId: 1, Points: 8},
	}
	settings := &repository.ScoringSettings{DropScores: 2}

	standings := ComputeStandings(results, participants, events, settings)

	standing := standings[GroupAmbitious][0]
	dropped := 0
	for _, score := range standing.Scores {
		if score.IsDropped {
			dropped++
			assert.Equal(t, 5, score.Points)
		}
	}
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 23, standing.TotalPoints)
	assert.Equal(t, 13, standing.FinalPoints)
}

func TestComputeStandingsTieBreaks(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, FirstName: "Ben", LastName: "Zwei", BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 2, FirstName: "Ali", LastName: "Eins", BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
		{Id: 3, FirstName: "Cem", LastName: "Drei", BirthYear: 1990, PerfClass: repository.PerfClassC, Gender: repository.GenderMale},
	}
	events := seasonEvents(2)
	results := []*repository.Result{
		// all end on 13 final points; Drei wins on the better single result,
		// Eins beats Zwei alphabetically on identical point lists
		{Id: 1, EventId: 1, ParticipantId: 1, Points: 7},
		{Id: 2, EventId: 2, ParticipantId: 1, Points: 6},
		{Id: 3, EventId: 1, ParticipantId: 2, Points: 7},
		{Id: 4, EventId: 2, ParticipantId: 2, Points: 6},
		{Id: 5, EventId: 1, ParticipantId: 3, Points: 8},
		{Id: 6, EventId: 2, ParticipantId: 3, Points: 5},
	}

	standings := ComputeStandings(results, participants, events, &repository.ScoringSettings{})

	ambitious := standings[GroupAmbitious]
	assert.Len(t, ambitious, 3)
	assert.Equal(t, "Drei, Cem", ambitious[0].Participant.DisplayName())
	assert.Equal(t, "Eins, Ali", ambitious[1].Participant.DisplayName())
	assert.Equal(t, "Zwei, Ben", ambitious[2].Participant.DisplayName())
}

func TestComputeStandingsSkipsUnfinishedEventsAndAbsentees(t *testing.T) {
	participants := []*repository.Participant{
		{Id: 1, FirstName: "Eva", LastName: "Da", BirthYear: 1990, PerfClass: repository.PerfClassB, Gender: repository.GenderFemale},
		{Id: 2, FirstName: "Ole", LastName: "Weg", BirthYear: 1990, PerfClass: repository.PerfClassB, Gender: repository.GenderMale},
	}
	events := []*repository.Event{
		{Id: 1, Season: 2025, EventType: repository.IndividualTimeTrial, Finished: true},
		{Id: 2, Season: 2025, EventType: repository.HandicapRace, Finished: false},
	}
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 1, Points: 8},
		// only present in the unfinished event: excluded from standings
		{Id: 2, EventId: 2, ParticipantId: 2, Points: 8},
	}

	standings := ComputeStandings(results, participants, events, &repository.ScoringSettings{})

	assert.Len(t, standings[GroupWomen], 1)
	assert.Len(t, standings[GroupWomen][0].Scores, 1)
	assert.Empty(t, standings[GroupHobby])
	assert.Empty(t, standings[GroupAmbitious])
}

func TestComputeStandingsUnknownParticipantIgnored(t *testing.T) {
	events := seasonEvents(1)
	results := []*repository.Result{
		{Id: 1, EventId: 1, ParticipantId: 99, Points: 8},
	}

	standings := ComputeStandings(results, nil, events, nil)

	assert.Empty(t, standings[GroupWomen])
	assert.Empty(t, standings[GroupHobby])
	assert.Empty(t, standings[GroupAmbitious])
}
