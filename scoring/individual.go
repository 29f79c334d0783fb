package scoring

import (
	"sort"

	"clubscore/repository"
)

// ScoreIndividualTimeTrial scores an individual time trial or hill climb by
// handicap-adjusted time. The result set is never grown or shrunk; only Points
// and RankOverall are written. Riders without a usable time (DNF, missing or
// non-positive time, unknown participant) keep the baseline: 1 point for
// starting, 0 for a DNF.
func ScoreIndividualTimeTrial(event *repository.Event, results []*repository.Result, participants []*repository.Participant, settings *repository.ScoringSettings) []*repository.Result {
	byId := participantsById(participants)

	type entry struct {
		result   *repository.Result
		adjusted int
	}
	entries := make([]*entry, 0, len(results))
	for _, result := range results {
		result.RankOverall = nil
		if result.Dnf {
			result.Points = 0
		} else {
			result.Points = 1
		}
		participant := byId[result.ParticipantId]
		if participant == nil || result.Dnf || result.TimeSeconds == nil || *result.TimeSeconds <= 0 {
			continue
		}
		entries = append(entries, &entry{
			result:   result,
			adjusted: *result.TimeSeconds + ComputeHandicap(participant, result, event, settings),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].adjusted < entries[j].adjusted
	})

	// standard competition ranking: equal adjusted times share a rank, the next
	// distinct time resumes at its list position (1,2,2,4)
	for i, e := range entries {
		rank := i + 1
		if i > 0 && entries[i-1].adjusted == e.adjusted {
			rank = *entries[i-1].result.RankOverall
		}
		e.result.RankOverall = &rank
		e.result.Points = placementPoints(rank) + winnerBonus(e.result, settings)
	}
	return results
}
