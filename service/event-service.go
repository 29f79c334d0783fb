package service

import (
	"clubscore/repository"

	"gorm.io/gorm"
)

type EventService struct {
	eventRepository *repository.EventRepository
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		eventRepository: repository.NewEventRepository(db),
	}
}

func (s *EventService) GetAllEvents() ([]*repository.Event, error) {
	return s.eventRepository.FindAll()
}

func (s *EventService) GetEventById(eventId int, preloads ...string) (*repository.Event, error) {
	return s.eventRepository.GetEventById(eventId, preloads...)
}

func (s *EventService) GetEventsBySeason(season int, preloads ...string) ([]*repository.Event, error) {
	return s.eventRepository.FindBySeason(season, preloads...)
}

func (s *EventService) CreateEvent(event *repository.Event) (*repository.Event, error) {
	return s.eventRepository.Save(event)
}

// UpdateEvent applies a partial update. Finished is a pointer because false is
// a meaningful value: only an explicit flag may un-finish an event.
func (s *EventService) UpdateEvent(eventId int, update *repository.Event, finished *bool) (*repository.Event, error) {
	event, err := s.eventRepository.GetEventById(eventId)
	if err != nil {
		return nil, err
	}
	applyEventUpdate(event, update, finished)
	return s.eventRepository.Save(event)
}

func applyEventUpdate(event *repository.Event, update *repository.Event, finished *bool) {
	if update.Name != "" {
		event.Name = update.Name
	}
	if update.EventType != "" {
		event.EventType = update.EventType
	}
	if update.Season != 0 {
		event.Season = update.Season
	}
	if !update.Date.IsZero() {
		event.Date = update.Date
	}
	if finished != nil {
		event.Finished = *finished
	}
}

func (s *EventService) DeleteEvent(eventId int) error {
	return s.eventRepository.Delete(eventId)
}
