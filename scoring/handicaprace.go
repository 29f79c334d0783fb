package scoring

import (
	"sort"

	"clubscore/repository"
)

// ScoreHandicapRace scores a handicap race. Time plays no role here: every
// finisher earns the base points of their performance class, minus one point
// for finishing in the second group, with a floor of one point. DNFs and
// results referencing unknown participants score zero.
func ScoreHandicapRace(results []*repository.Result, participants []*repository.Participant, settings *repository.ScoringSettings) []*repository.Result {
	byId := participantsById(participants)
	for _, result := range results {
		result.RankOverall = nil
		participant := byId[result.ParticipantId]
		if result.Dnf || participant == nil {
			result.Points = 0
			continue
		}
		points := settings.BasePoints(participant.PerfClass)
		if result.FinisherGroup == 2 {
			points--
		}
		if points < 1 {
			points = 1
		}
		result.Points = points + winnerBonus(result, settings)
	}
	return results
}

// GroupedResult pairs a scored result with its rider for the per-cohort race
// listing.
type GroupedResult struct {
	Result      *repository.Result
	Participant *repository.Participant
	Rank        int
}

// GroupResults splits scored results into the three cohorts and ranks each
// cohort by points descending, name ascending. This ranking is presentational
// only and never feeds back into the stored points.
func GroupResults(results []*repository.Result, participants []*repository.Participant) map[GroupLabel][]*GroupedResult {
	byId := participantsById(participants)
	grouped := map[GroupLabel][]*GroupedResult{
		GroupWomen:     {},
		GroupHobby:     {},
		GroupAmbitious: {},
	}
	for _, result := range results {
		participant := byId[result.ParticipantId]
		if participant == nil {
			continue
		}
		label := ClassifyGroup(participant)
		grouped[label] = append(grouped[label], &GroupedResult{Result: result, Participant: participant})
	}
	for _, cohort := range grouped {
		sort.Slice(cohort, func(i, j int) bool {
			if cohort[i].Result.Points != cohort[j].Result.Points {
				return cohort[i].Result.Points > cohort[j].Result.Points
			}
			return cohort[i].Participant.DisplayName() < cohort[j].Participant.DisplayName()
		})
		for i, entry := range cohort {
			entry.Rank = i + 1
			if i > 0 && cohort[i-1].Result.Points == entry.Result.Points {
				entry.Rank = cohort[i-1].Rank
			}
		}
	}
	return grouped
}
