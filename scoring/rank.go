package scoring

import (
	"clubscore/repository"
)

// placementPoints is the shared placement table for time-based events: podium
// spots earn 8, ranks 4-6 earn 7, ranks 7-10 earn 6, everyone else ranked
// earns 5.
func placementPoints(rank int) int {
	switch {
	case rank <= 3:
		return 8
	case rank <= 6:
		return 7
	case rank <= 10:
		return 6
	default:
		return 5
	}
}

// winnerBonus returns the extra points for a manually assigned winner rank.
// The bonus is driven purely by the operator-set field, not by the computed
// rank, so a rider outside the podium can still carry a bonus if the operator
// assigned one.
func winnerBonus(result *repository.Result, settings *repository.ScoringSettings) int {
	if result.WinnerRank == nil {
		return 0
	}
	return settings.WinnerPoints.Get(*result.WinnerRank - 1)
}

func participantsById(participants []*repository.Participant) map[int]*repository.Participant {
	byId := make(map[int]*repository.Participant)
	for _, participant := range participants {
		byId[participant.Id] = participant
	}
	return byId
}
