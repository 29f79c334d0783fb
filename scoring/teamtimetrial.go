package scoring

import (
	"sort"

	"clubscore/repository"
)

type teamStanding struct {
	team      *repository.Team
	members   []*repository.TeamMember
	qualified bool
	adjusted  int
	rank      int
	points    int
}

// ScoreTeamTimeTrial scores a team time trial. A team's base time is the time
// of its second-slowest valid finisher (the n-1 rule); the aggregated handicap
// of all members, DNFs included, is added on top. Teams with fewer than two
// valid finishers never qualify and rank behind every qualified team. Member
// points derive from the team's placement, with per-membership penalties and a
// one-point consolation for riders who finished on a non-qualifying team.
// Results not referenced by any team membership score zero.
func ScoreTeamTimeTrial(event *repository.Event, results []*repository.Result, teams []*repository.Team, members []*repository.TeamMember, participants []*repository.Participant, settings *repository.ScoringSettings) []*repository.Result {
	byId := participantsById(participants)
	resultByParticipant := make(map[int]*repository.Result)
	for _, result := range results {
		result.RankOverall = nil
		result.Points = 0
		resultByParticipant[result.ParticipantId] = result
	}

	standings := make([]*teamStanding, 0, len(teams))
	for _, team := range teams {
		standing := &teamStanding{team: team}
		handicap := 0
		validTimes := make([]int, 0)
		for _, member := range members {
			if member.TeamId != team.Id {
				continue
			}
			standing.members = append(standing.members, member)
			result := resultByParticipant[member.ParticipantId]
			// DNF members still contribute their handicap to the team aggregate
			handicap += ComputeHandicap(byId[member.ParticipantId], result, event, settings)
			if result != nil && !result.Dnf && result.TimeSeconds != nil && *result.TimeSeconds > 0 {
				validTimes = append(validTimes, *result.TimeSeconds)
			}
		}
		if len(validTimes) >= 2 {
			sort.Ints(validTimes)
			standing.adjusted = validTimes[len(validTimes)-2] + handicap
			standing.qualified = true
		}
		standings = append(standings, standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].qualified != standings[j].qualified {
			return standings[i].qualified
		}
		return standings[i].adjusted < standings[j].adjusted
	})

	for i, standing := range standings {
		if !standing.qualified {
			continue
		}
		standing.rank = i + 1
		if i > 0 && standings[i-1].qualified && standings[i-1].adjusted == standing.adjusted {
			standing.rank = standings[i-1].rank
		}
		standing.points = placementPoints(standing.rank) + settings.WinnerPoints.Get(standing.rank-1)
	}

	for _, standing := range standings {
		for _, member := range standing.members {
			result := resultByParticipant[member.ParticipantId]
			if result == nil || result.Dnf {
				continue
			}
			if !standing.qualified {
				result.Points = 1
				continue
			}
			rank := standing.rank
			result.RankOverall = &rank
			points := standing.points
			if member.PenaltyMinus2 {
				points -= 2
				if points < 0 {
					points = 0
				}
			}
			result.Points = points
		}
	}
	return results
}
