package scoring

import (
	"clubscore/repository"
)

type GroupLabel string

const (
	GroupWomen     GroupLabel = "Women"
	GroupHobby     GroupLabel = "Hobby"
	GroupAmbitious GroupLabel = "Ambitious"
)

// ClassifyGroup assigns a participant to one of the three overall-ranking
// cohorts. The classification depends only on gender and performance class:
// women form their own cohort regardless of class, male riders in class A or B
// count as hobby riders, the rest as ambitious.
func ClassifyGroup(participant *repository.Participant) GroupLabel {
	if participant.Gender == repository.GenderFemale {
		return GroupWomen
	}
	if participant.PerfClass == repository.PerfClassA || participant.PerfClass == repository.PerfClassB {
		return GroupHobby
	}
	return GroupAmbitious
}
