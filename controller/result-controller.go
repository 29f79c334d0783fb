package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clubscore/repository"
	"clubscore/scoring"
	"clubscore/service"
	"clubscore/utils"
)

type ResultController struct {
	resultService      *service.ResultService
	participantService *service.ParticipantService
	scoreService       *service.ScoreService
}

func NewResultController(db *gorm.DB, scoreService *service.ScoreService) *ResultController {
	return &ResultController{
		resultService:      service.NewResultService(db),
		participantService: service.NewParticipantService(db),
		scoreService:       scoreService,
	}
}

func setupResultController(db *gorm.DB, scoreService *service.ScoreService) []RouteInfo {
	e := NewResultController(db, scoreService)
	basePath := "/events/:event_id/results"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getResultsHandler()},
		{Method: "GET", Path: "/grouped", HandlerFunc: e.getGroupedResultsHandler()},
		{Method: "PUT", Path: "", HandlerFunc: e.upsertResultHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "DELETE", Path: "/:participant_id", HandlerFunc: e.deleteResultHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type ResultUpsert struct {
	ParticipantId  int  `json:"participantId" binding:"required"`
	TimeSeconds    *int `json:"timeSeconds"`
	Dnf            bool `json:"dnf"`
	WinnerRank     *int `json:"winnerRank"`
	FinisherGroup  int  `json:"finisherGroup"`
	HasAeroBars    bool `json:"hasAeroBars"`
	HasTTEquipment bool `json:"hasTTEquipment"`
}

func (r *ResultUpsert) toModel(eventId int) *repository.Result {
	finisherGroup := r.FinisherGroup
	if finisherGroup == 0 {
		finisherGroup = 1
	}
	return &repository.Result{
		EventId:        eventId,
		ParticipantId:  r.ParticipantId,
		TimeSeconds:    r.TimeSeconds,
		Dnf:            r.Dnf,
		WinnerRank:     r.WinnerRank,
		FinisherGroup:  finisherGroup,
		HasAeroBars:    r.HasAeroBars,
		HasTTEquipment: r.HasTTEquipment,
	}
}

type ResultResponse struct {
	Id             int  `json:"id"`
	EventId        int  `json:"eventId"`
	ParticipantId  int  `json:"participantId"`
	TimeSeconds    *int `json:"timeSeconds"`
	Dnf            bool `json:"dnf"`
	WinnerRank     *int `json:"winnerRank"`
	FinisherGroup  int  `json:"finisherGroup"`
	HasAeroBars    bool `json:"hasAeroBars"`
	HasTTEquipment bool `json:"hasTTEquipment"`
	Points         int  `json:"points"`
	RankOverall    *int `json:"rankOverall"`
}

func toResultResponse(result *repository.Result) *ResultResponse {
	return &ResultResponse{
		Id:             result.Id,
		EventId:        result.EventId,
		ParticipantId:  result.ParticipantId,
		TimeSeconds:    result.TimeSeconds,
		Dnf:            result.Dnf,
		WinnerRank:     result.WinnerRank,
		FinisherGroup:  result.FinisherGroup,
		HasAeroBars:    result.HasAeroBars,
		HasTTEquipment: result.HasTTEquipment,
		Points:         result.Points,
		RankOverall:    result.RankOverall,
	}
}

type GroupedResultResponse struct {
	Rank          int    `json:"rank"`
	ParticipantId int    `json:"participantId"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
}

func toGroupedResultResponse(entry *scoring.GroupedResult) *GroupedResultResponse {
	return &GroupedResultResponse{
		Rank:          entry.Rank,
		ParticipantId: entry.Participant.Id,
		Name:          entry.Participant.DisplayName(),
		Points:        entry.Result.Points,
	}
}

// @Description Fetches all results for an event
// @Tags result
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {array} ResultResponse
// @Router /events/{event_id}/results [get]
func (e *ResultController) getResultsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		results, err := e.resultService.GetResultsForEvent(eventId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(results, toResultResponse))
	}
}

// @Description Fetches an event's results split into the Women/Hobby/Ambitious cohorts
// @Tags result
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {object} map[string][]GroupedResultResponse
// @Router /events/{event_id}/results/grouped [get]
func (e *ResultController) getGroupedResultsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		results, err := e.resultService.GetResultsForEvent(eventId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		participants, err := e.participantService.GetAllParticipants()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		response := make(map[scoring.GroupLabel][]*GroupedResultResponse)
		for label, cohort := range scoring.GroupResults(results, participants) {
			response[label] = utils.Map(cohort, toGroupedResultResponse)
		}
		c.JSON(200, response)
	}
}

// @Description Creates or updates a participant's result for an event and rescores it
// @Tags result
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param result body ResultUpsert true "Result to upsert"
// @Success 200 {object} ResultResponse
// @Router /events/{event_id}/results [put]
func (e *ResultController) upsertResultHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var resultUpsert ResultUpsert
		if err := c.BindJSON(&resultUpsert); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		result, err := e.resultService.UpsertResult(resultUpsert.toModel(eventId))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if err := e.scoreService.RescoreEvent(eventId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toResultResponse(result))
	}
}

// @Description Deletes a participant's result for an event and rescores it
// @Tags result
// @Param event_id path int true "Event Id"
// @Param participant_id path int true "Participant Id"
// @Success 204
// @Router /events/{event_id}/results/{participant_id} [delete]
func (e *ResultController) deleteResultHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participantId, err := strconv.Atoi(c.Param("participant_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.resultService.DeleteResult(eventId, participantId); err != nil {
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
