package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	IndividualTimeTrial EventType = "IndividualTimeTrial"
	MountainTimeTrial   EventType = "MountainTimeTrial"
	TeamTimeTrial       EventType = "TeamTimeTrial"
	HandicapRace        EventType = "HandicapRace"
)

type Event struct {
	Id        int       `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	EventType EventType `gorm:"not null;type:clubscore.event_type"`
	Season    int       `gorm:"not null;index"`
	Date      time.Time `gorm:"null"`
	Finished  bool      `gorm:"not null;default:false"`
	Results   []*Result `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE"`
	Teams     []*Team   `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE"`
}

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) GetEventById(eventId int, preloads ...string) (*Event, error) {
	var event Event
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&event, eventId)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find event: %w", result.Error)
	}
	return &event, nil
}

func (r *EventRepository) FindAll() ([]*Event, error) {
	events := make([]*Event, 0)
	result := r.DB.Order("date, id").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (r *EventRepository) FindBySeason(season int, preloads ...string) ([]*Event, error) {
	events := make([]*Event, 0)
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Where("season = ?", season).Order("date, id").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (r *EventRepository) Save(event *Event) (*Event, error) {
	result := r.DB.Save(event)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save event: %w", result.Error)
	}
	return event, nil
}

func (r *EventRepository) Delete(eventId int) error {
	result := r.DB.Delete(Event{}, eventId)
	return result.Error
}
