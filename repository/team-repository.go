package repository

import (
	"clubscore/utils"

	"gorm.io/gorm"
)

type Team struct {
	Id      int           `gorm:"primaryKey"`
	Name    string        `gorm:"not null"`
	EventId int           `gorm:"not null;references events(id)"`
	Members []*TeamMember `gorm:"foreignKey:TeamId;constraint:OnDelete:CASCADE"`
}

// TeamMember links a team to a participant. A participant may be on at most one
// team per event, enforced at the service level since the team id alone does not
// carry the event.
type TeamMember struct {
	TeamId        int  `gorm:"primaryKey"`
	ParticipantId int  `gorm:"primaryKey"`
	PenaltyMinus2 bool `gorm:"not null;default:false"`
}

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) GetTeamById(teamId int) (*Team, error) {
	var team Team
	result := r.DB.Preload("Members").First(&team, teamId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &team, nil
}

func (r *TeamRepository) GetTeamsForEvent(eventId int) ([]*Team, error) {
	teams := make([]*Team, 0)
	result := r.DB.Preload("Members").Find(&teams, "event_id = ?", eventId)
	if result.Error != nil {
		return nil, result.Error
	}
	return teams, nil
}

func (r *TeamRepository) GetMembersForEvent(eventId int) ([]*TeamMember, error) {
	teams, err := r.GetTeamsForEvent(eventId)
	if err != nil {
		return nil, err
	}
	members := make([]*TeamMember, 0)
	result := r.DB.Find(&members, "team_id in ?", utils.Map(teams, func(team *Team) int {
		return team.Id
	}))
	if result.Error != nil {
		return nil, result.Error
	}
	return members, nil
}

func (r *TeamRepository) Save(team *Team) (*Team, error) {
	result := r.DB.Save(team)
	if result.Error != nil {
		return nil, result.Error
	}
	return team, nil
}

func (r *TeamRepository) Delete(teamId int) error {
	result := r.DB.Delete(Team{}, teamId)
	return result.Error
}

func (r *TeamRepository) SaveMember(member *TeamMember) (*TeamMember, error) {
	result := r.DB.Save(member)
	if result.Error != nil {
		return nil, result.Error
	}
	return member, nil
}

func (r *TeamRepository) DeleteMember(teamId int, participantId int) error {
	result := r.DB.Where("team_id = ? AND participant_id = ?", teamId, participantId).Delete(&TeamMember{})
	return result.Error
}
