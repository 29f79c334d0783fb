package scoring

import (
	"clubscore/repository"
)

// ComputeHandicap returns the signed time adjustment in seconds for one rider in
// one race. Negative values are bonuses (the rider is treated as faster),
// positive values are penalties. The four categories are independent and
// additive:
//
//  1. gender bonus for women
//  2. age bonus, first matching enabled bracket only
//  3. performance-class bonus for hobby classes A and B
//  4. equipment penalties for aero bars and TT equipment, both may apply
//
// Disabled or missing settings sections contribute nothing.
func ComputeHandicap(participant *repository.Participant, result *repository.Result, event *repository.Event, settings *repository.ScoringSettings) int {
	if participant == nil || settings == nil {
		return 0
	}
	seconds := 0
	if settings.GenderBonusEnabled && participant.Gender == repository.GenderFemale {
		seconds += settings.GenderBonusSeconds
	}
	if event != nil {
		age := event.Season - participant.BirthYear
		for _, bracket := range settings.AgeBrackets {
			if !bracket.Enabled {
				continue
			}
			if bracket.MinAge <= age && age <= bracket.MaxAge {
				seconds += bracket.Seconds
				break
			}
		}
	}
	if settings.PerfClassBonusEnabled &&
		(participant.PerfClass == repository.PerfClassA || participant.PerfClass == repository.PerfClassB) {
		seconds += settings.PerfClassBonusSeconds
	}
	if result != nil {
		if settings.AeroBarsEnabled && result.HasAeroBars {
			seconds += settings.AeroBarsSeconds
		}
		if settings.TTEquipmentEnabled && result.HasTTEquipment {
			seconds += settings.TTEquipmentSeconds
		}
	}
	return seconds
}
