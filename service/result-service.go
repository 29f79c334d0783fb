package service

import (
	"clubscore/repository"

	"gorm.io/gorm"
)

type ResultService struct {
	resultRepository *repository.ResultRepository
	eventRepository  *repository.EventRepository
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{
		resultRepository: repository.NewResultRepository(db),
		eventRepository:  repository.NewEventRepository(db),
	}
}

func (s *ResultService) GetResultsForEvent(eventId int) ([]*repository.Result, error) {
	return s.resultRepository.GetResultsForEvent(eventId)
}

func (s *ResultService) UpsertResult(result *repository.Result) (*repository.Result, error) {
	if _, err := s.eventRepository.GetEventById(result.EventId); err != nil {
		return nil, err
	}
	return s.resultRepository.Upsert(result)
}

func (s *ResultService) DeleteResult(eventId int, participantId int) error {
	return s.resultRepository.Delete(eventId, participantId)
}
