package service

import (
	"fmt"

	"clubscore/app_error"
	"clubscore/repository"

	"gorm.io/gorm"
)

type TeamService struct {
	teamRepository  *repository.TeamRepository
	eventRepository *repository.EventRepository
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{
		teamRepository:  repository.NewTeamRepository(db),
		eventRepository: repository.NewEventRepository(db),
	}
}

func (s *TeamService) GetTeamsForEvent(eventId int) ([]*repository.Team, error) {
	return s.teamRepository.GetTeamsForEvent(eventId)
}

func (s *TeamService) GetTeamById(teamId int) (*repository.Team, error) {
	return s.teamRepository.GetTeamById(teamId)
}

func (s *TeamService) CreateTeam(team *repository.Team) (*repository.Team, error) {
	event, err := s.eventRepository.GetEventById(team.EventId)
	if err != nil {
		return nil, err
	}
	if event.EventType != repository.TeamTimeTrial {
		return nil, app_error.New(400, fmt.Errorf("teams can only be created for team time trials"))
	}
	return s.teamRepository.Save(team)
}

func (s *TeamService) UpdateTeam(teamId int, update *repository.Team) (*repository.Team, error) {
	team, err := s.teamRepository.GetTeamById(teamId)
	if err != nil {
		return nil, err
	}
	if update.Name != "" {
		team.Name = update.Name
	}
	return s.teamRepository.Save(team)
}

func (s *TeamService) DeleteTeam(teamId int) error {
	return s.teamRepository.Delete(teamId)
}

// AddMember enforces the one-team-per-event rule before saving the membership.
func (s *TeamService) AddMember(teamId int, member *repository.TeamMember) (*repository.TeamMember, error) {
	team, err := s.teamRepository.GetTeamById(teamId)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepository.GetTeamsForEvent(team.EventId)
	if err != nil {
		return nil, err
	}
	for _, other := range teams {
		for _, existing := range other.Members {
			if existing.ParticipantId == member.ParticipantId && other.Id != teamId {
				return nil, app_error.New(409, fmt.Errorf("participant %d is already on team %q", member.ParticipantId, other.Name))
			}
		}
	}
	member.TeamId = teamId
	return s.teamRepository.SaveMember(member)
}

func (s *TeamService) RemoveMember(teamId int, participantId int) error {
	return s.teamRepository.DeleteMember(teamId, participantId)
}

func (s *TeamService) GetMembersForEvent(eventId int) ([]*repository.TeamMember, error) {
	return s.teamRepository.GetMembersForEvent(eventId)
}
