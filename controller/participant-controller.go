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

type ParticipantController struct {
	participantService *service.ParticipantService
}

func NewParticipantController(db *gorm.DB) *ParticipantController {
	return &ParticipantController{
		participantService: service.NewParticipantService(db),
	}
}

func setupParticipantController(db *gorm.DB) []RouteInfo {
	e := NewParticipantController(db)
	basePath := "/participants"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getParticipantsHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createParticipantHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "GET", Path: "/:participant_id", HandlerFunc: e.getParticipantHandler()},
		{Method: "PATCH", Path: "/:participant_id", HandlerFunc: e.updateParticipantHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "DELETE", Path: "/:participant_id", HandlerFunc: e.deleteParticipantHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type ParticipantCreate struct {
	FirstName string               `json:"firstName" binding:"required"`
	LastName  string               `json:"lastName" binding:"required"`
	BirthYear int                  `json:"birthYear" binding:"required"`
	PerfClass repository.PerfClass `json:"perfClass" binding:"required,oneof=A B C D"`
	Gender    repository.Gender    `json:"gender" binding:"required,oneof=Male Female"`
}

func (p *ParticipantCreate) toModel() *repository.Participant {
	return &repository.Participant{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthYear: p.BirthYear,
		PerfClass: p.PerfClass,
		Gender:    p.Gender,
	}
}

type ParticipantUpdate struct {
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	BirthYear int                  `json:"birthYear"`
	PerfClass repository.PerfClass `json:"perfClass" binding:"omitempty,oneof=A B C D"`
	Gender    repository.Gender    `json:"gender" binding:"omitempty,oneof=Male Female"`
}

func (p *ParticipantUpdate) toModel() *repository.Participant {
	return &repository.Participant{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthYear: p.BirthYear,
		PerfClass: p.PerfClass,
		Gender:    p.Gender,
	}
}

type ParticipantResponse struct {
	Id        int                  `json:"id"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	BirthYear int                  `json:"birthYear"`
	PerfClass repository.PerfClass `json:"perfClass"`
	Gender    repository.Gender    `json:"gender"`
}

func toParticipantResponse(participant *repository.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		Id:        participant.Id,
		FirstName: participant.FirstName,
		LastName:  participant.LastName,
		BirthYear: participant.BirthYear,
		PerfClass: participant.PerfClass,
		Gender:    participant.Gender,
	}
}

// @Description Fetches all participants
// @Tags participant
// @Produce json
// @Success 200 {array} ParticipantResponse
// @Router /participants [get]
func (e *ParticipantController) getParticipantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		participants, err := e.participantService.GetAllParticipants()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(participants, toParticipantResponse))
	}
}

// @Description Fetches a participant by id
// @Tags participant
// @Produce json
// @Param participant_id path int true "Participant Id"
// @Success 200 {object} ParticipantResponse
// @Router /participants/{participant_id} [get]
func (e *ParticipantController) getParticipantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantId, err := strconv.Atoi(c.Param("participant_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participant, err := e.participantService.GetParticipantById(participantId)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, toParticipantResponse(participant))
	}
}

// @Description Creates a participant
// @Tags participant
// @Accept json
// @Produce json
// @Param participant body ParticipantCreate true "Participant to create"
// @Success 201 {object} ParticipantResponse
// @Router /participants [post]
func (e *ParticipantController) createParticipantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var participantCreate ParticipantCreate
		if err := c.BindJSON(&participantCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participant, err := e.participantService.SaveParticipant(participantCreate.toModel())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toParticipantResponse(participant))
	}
}

// @Description Updates a participant
// @Tags participant
// @Accept json
// @Produce json
// @Param participant_id path int true "Participant Id"
// @Param participant body ParticipantUpdate true "Fields to update"
// @Success 200 {object} ParticipantResponse
// @Router /participants/{participant_id} [patch]
func (e *ParticipantController) updateParticipantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantId, err := strconv.Atoi(c.Param("participant_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update ParticipantUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participant, err := e.participantService.UpdateParticipant(participantId, update.toModel())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toParticipantResponse(participant))
	}
}

// @Description Deletes a participant
// @Tags participant
// @Param participant_id path int true "Participant Id"
// @Success 204
// @Router /participants/{participant_id} [delete]
func (e *ParticipantController) deleteParticipantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantId, err := strconv.Atoi(c.Param("participant_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.participantService.DeleteParticipant(participantId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}
