package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result is one participant's outcome in one event. Points and RankOverall are
// engine output and are overwritten on every rescore; everything else is operator
// input.
type Result struct {
	Id             int  `gorm:"primaryKey"`
	EventId        int  `gorm:"not null;uniqueIndex:idx_event_participant;references events(id)"`
	ParticipantId  int  `gorm:"not null;uniqueIndex:idx_event_participant;references participants(id)"`
	TimeSeconds    *int `gorm:"null"`
	Dnf            bool `gorm:"not null;default:false"`
	WinnerRank     *int `gorm:"null"`
	FinisherGroup  int  `gorm:"not null;default:1"`
	HasAeroBars    bool `gorm:"not null;default:false"`
	HasTTEquipment bool `gorm:"not null;default:false"`
	Points         int  `gorm:"not null;default:0"`
	RankOverall    *int `gorm:"null"`
}

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) GetResultsForEvent(eventId int) ([]*Result, error) {
	results := make([]*Result, 0)
	result := r.DB.Find(&results, "event_id = ?", eventId)
	if result.Error != nil {
		return nil, result.Error
	}
	return results, nil
}

func (r *ResultRepository) GetResultsForEvents(eventIds []int) ([]*Result, error) {
	results := make([]*Result, 0)
	result := r.DB.Find(&results, "event_id in ?", eventIds)
	if result.Error != nil {
		return nil, result.Error
	}
	return results, nil
}

// Upsert keeps the one-result-per-(event, participant) invariant: a second write
// for the same pair updates the existing row instead of inserting.
func (r *ResultRepository) Upsert(res *Result) (*Result, error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "participant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"time_seconds", "dnf", "winner_rank", "finisher_group",
			"has_aero_bars", "has_tt_equipment",
		}),
	}).Create(res)
	if result.Error != nil {
		return nil, result.Error
	}
	return res, nil
}

// SaveScores persists only the engine output columns for a scored result set.
func (r *ResultRepository) SaveScores(results []*Result) error {
	defer observePersist(time.Now())
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, res := range results {
			err := tx.Model(&Result{}).Where("id = ?", res.Id).
				Updates(map[string]interface{}{"points": res.Points, "rank_overall": res.RankOverall}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ResultRepository) Delete(eventId int, participantId int) error {
	result := r.DB.Where("event_id = ? AND participant_id = ?", eventId, participantId).Delete(&Result{})
	return result.Error
}
