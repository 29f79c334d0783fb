package service

import (
	"clubscore/repository"

	"gorm.io/gorm"
)

type ParticipantService struct {
	participantRepository *repository.ParticipantRepository
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{
		participantRepository: repository.NewParticipantRepository(db),
	}
}

func (s *ParticipantService) GetAllParticipants() ([]*repository.Participant, error) {
	return s.participantRepository.FindAll()
}

func (s *ParticipantService) GetParticipantById(participantId int) (*repository.Participant, error) {
	return s.participantRepository.GetParticipantById(participantId)
}

func (s *ParticipantService) SaveParticipant(participant *repository.Participant) (*repository.Participant, error) {
	return s.participantRepository.Save(participant)
}

func (s *ParticipantService) UpdateParticipant(participantId int, update *repository.Participant) (*repository.Participant, error) {
	participant, err := s.participantRepository.GetParticipantById(participantId)
	if err != nil {
		return nil, err
	}
	if update.FirstName != "" {
		participant.FirstName = update.FirstName
	}
	if update.LastName != "" {
		participant.LastName = update.LastName
	}
	if update.BirthYear != 0 {
		participant.BirthYear = update.BirthYear
	}
	if update.PerfClass != "" {
		participant.PerfClass = update.PerfClass
	}
	if update.Gender != "" {
		participant.Gender = update.Gender
	}
	return s.participantRepository.Save(participant)
}

func (s *ParticipantService) DeleteParticipant(participantId int) error {
	return s.participantRepository.Delete(participantId)
}
