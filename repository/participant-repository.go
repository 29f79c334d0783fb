package repository

import (
	"gorm.io/gorm"
)

type PerfClass string

const (
	PerfClassA PerfClass = "A"
	PerfClassB PerfClass = "B"
	PerfClassC PerfClass = "C"
	PerfClassD PerfClass = "D"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type Participant struct {
	Id        int       `gorm:"primaryKey"`
	FirstName string    `gorm:"not null"`
	LastName  string    `gorm:"not null"`
	BirthYear int       `gorm:"not null"`
	PerfClass PerfClass `gorm:"not null;type:clubscore.perf_class"`
	Gender    Gender    `gorm:"not null;type:clubscore.gender"`
}

// DisplayName is the "Lastname, Firstname" form used for alphabetical tie-breaks
// and report listings.
func (p *Participant) DisplayName() string {
	return p.LastName + ", " + p.FirstName
}

type ParticipantRepository struct {
	DB *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

func (r *ParticipantRepository) GetParticipantById(participantId int) (*Participant, error) {
	var participant Participant
	result := r.DB.First(&participant, participantId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &participant, nil
}

func (r *ParticipantRepository) FindAll() ([]*Participant, error) {
	participants := make([]*Participant, 0)
	result := r.DB.Order("last_name, first_name").Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}
	return participants, nil
}

func (r *ParticipantRepository) Save(participant *Participant) (*Participant, error) {
	result := r.DB.Save(participant)
	if result.Error != nil {
		return nil, result.Error
	}
	return participant, nil
}

func (r *ParticipantRepository) Delete(participantId int) error {
	result := r.DB.Delete(Participant{}, participantId)
	return result.Error
}
