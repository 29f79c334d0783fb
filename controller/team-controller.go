package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clubscore/app_error"
	"clubscore/repository"
	"clubscore/service"
	"clubscore/utils"
)

type TeamController struct {
	teamService  *service.TeamService
	scoreService *service.ScoreService
}

func NewTeamController(db *gorm.DB, scoreService *service.ScoreService) *TeamController {
	return &TeamController{
		teamService:  service.NewTeamService(db),
		scoreService: scoreService,
	}
}

func setupTeamController(db *gorm.DB, scoreService *service.ScoreService) []RouteInfo {
	e := NewTeamController(db, scoreService)
	basePath := "/events/:event_id/teams"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getTeamsHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createTeamHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "PATCH", Path: "/:team_id", HandlerFunc: e.updateTeamHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "DELETE", Path: "/:team_id", HandlerFunc: e.deleteTeamHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "PUT", Path: "/:team_id/members", HandlerFunc: e.addMemberHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "DELETE", Path: "/:team_id/members/:participant_id", HandlerFunc: e.removeMemberHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type TeamCreate struct {
	Name string `json:"name" binding:"required"`
}

type TeamMemberUpsert struct {
	ParticipantId int  `json:"participantId" binding:"required"`
	PenaltyMinus2 bool `json:"penaltyMinus2"`
}

type TeamMemberResponse struct {
	ParticipantId int  `json:"participantId"`
	PenaltyMinus2 bool `json:"penaltyMinus2"`
}

type TeamResponse struct {
	Id      int                   `json:"id"`
	Name    string                `json:"name"`
	EventId int                   `json:"eventId"`
	Members []*TeamMemberResponse `json:"members"`
}

func toTeamMemberResponse(member *repository.TeamMember) *TeamMemberResponse {
	return &TeamMemberResponse{
		ParticipantId: member.ParticipantId,
		PenaltyMinus2: member.PenaltyMinus2,
	}
}

func toTeamResponse(team *repository.Team) *TeamResponse {
	return &TeamResponse{
		Id:      team.Id,
		Name:    team.Name,
		EventId: team.EventId,
		Members: utils.Map(team.Members, toTeamMemberResponse),
	}
}

// @Description Fetches all teams for an event
// @Tags team
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {array} TeamResponse
// @Router /events/{event_id}/teams [get]
func (e *TeamController) getTeamsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		teams, err := e.teamService.GetTeamsForEvent(eventId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(teams, toTeamResponse))
	}
}

// @Description Creates a team for a team time trial event
// @Tags team
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param team body TeamCreate true "Team to create"
// @Success 201 {object} TeamResponse
// @Router /events/{event_id}/teams [post]
func (e *TeamController) createTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var teamCreate TeamCreate
		if err := c.BindJSON(&teamCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.teamService.CreateTeam(&repository.Team{Name: teamCreate.Name, EventId: eventId})
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(201, toTeamResponse(team))
	}
}

// @Description Renames a team
// @Tags team
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param team_id path int true "Team Id"
// @Param team body TeamCreate true "Fields to update"
// @Success 200 {object} TeamResponse
// @Router /events/{event_id}/teams/{team_id} [patch]
func (e *TeamController) updateTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamId, err := strconv.Atoi(c.Param("team_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update TeamCreate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.teamService.UpdateTeam(teamId, &repository.Team{Name: update.Name})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toTeamResponse(team))
	}
}

// @Description Deletes a team and rescores the event
// @Tags team
// @Param event_id path int true "Event Id"
// @Param team_id path int true "Team Id"
// @Success 204
// @Router /events/{event_id}/teams/{team_id} [delete]
func (e *TeamController) deleteTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		teamId, err := strconv.Atoi(c.Param("team_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.teamService.DeleteTeam(teamId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if err := e.scoreService.RescoreEvent(eventId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}

// @Description Adds a participant to a team and rescores the event
// @Tags team
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param team_id path int true "Team Id"
// @Param member body TeamMemberUpsert true "Member to add"
// @Success 200 {object} TeamMemberResponse
// @Router /events/{event_id}/teams/{team_id}/members [put]
func (e *TeamController) addMemberHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		teamId, err := strconv.Atoi(c.Param("team_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var memberUpsert TeamMemberUpsert
		if err := c.BindJSON(&memberUpsert); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		member, err := e.teamService.AddMember(teamId, &repository.TeamMember{
			ParticipantId: memberUpsert.ParticipantId,
			PenaltyMinus2: memberUpsert.PenaltyMinus2,
		})
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		if err := e.scoreService.RescoreEvent(eventId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toTeamMemberResponse(member))
	}
}

// @Description Removes a participant from a team and rescores the event
// @Tags team
// @Param event_id path int true "Event Id"
// @Param team_id path int true "Team Id"
// @Param participant_id path int true "Participant Id"
// @Success 204
// @Router /events/{event_id}/teams/{team_id}/members/{participant_id} [delete]
func (e *TeamController) removeMemberHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		teamId, err := strconv.Atoi(c.Param("team_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participantId, err := strconv.Atoi(c.Param("participant_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.teamService.RemoveMember(teamId, participantId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if err := e.scoreService.RescoreEvent(eventId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}
