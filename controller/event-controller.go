package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clubscore/repository"
	"clubscore/service"
	"clubscore/utils"
)

type EventController struct {
	eventService *service.EventService
	scoreService *service.ScoreService
}

func NewEventController(db *gorm.DB, scoreService *service.ScoreService) *EventController {
	return &EventController{
		eventService: service.NewEventService(db),
		scoreService: scoreService,
	}
}

func setupEventController(db *gorm.DB, scoreService *service.ScoreService) []RouteInfo {
	e := NewEventController(db, scoreService)
	basePath := "/events"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getEventsHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createEventHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "GET", Path: "/:event_id", HandlerFunc: e.getEventHandler()},
		{Method: "PATCH", Path: "/:event_id", HandlerFunc: e.updateEventHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "DELETE", Path: "/:event_id", HandlerFunc: e.deleteEventHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type EventCreate struct {
	Name      string               `json:"name" binding:"required"`
	EventType repository.EventType `json:"eventType" binding:"required,oneof=IndividualTimeTrial MountainTimeTrial TeamTimeTrial HandicapRace"`
	Season    int                  `json:"season" binding:"required"`
	Date      time.Time            `json:"date"`
}

func (e *EventCreate) toModel() *repository.Event {
	return &repository.Event{
		Name:      e.Name,
		EventType: e.EventType,
		Season:    e.Season,
		Date:      e.Date,
	}
}

type EventUpdate struct {
	Name      string               `json:"name"`
	EventType repository.EventType `json:"eventType" binding:"omitempty,oneof=IndividualTimeTrial MountainTimeTrial TeamTimeTrial HandicapRace"`
	Season    int                  `json:"season"`
	Date      time.Time            `json:"date"`
	Finished  *bool                `json:"finished"`
}

func (e *EventUpdate) toModel() *repository.Event {
	return &repository.Event{
		Name:      e.Name,
		EventType: e.EventType,
		Season:    e.Season,
		Date:      e.Date,
	}
}

type EventResponse struct {
	Id        int                  `json:"id"`
	Name      string               `json:"name"`
	EventType repository.EventType `json:"eventType"`
	Season    int                  `json:"season"`
	Date      time.Time            `json:"date"`
	Finished  bool                 `json:"finished"`
}

func toEventResponse(event *repository.Event) *EventResponse {
	return &EventResponse{
		Id:        event.Id,
		Name:      event.Name,
		EventType: event.EventType,
		Season:    event.Season,
		Date:      event.Date,
		Finished:  event.Finished,
	}
}

// @Description Fetches all events, optionally filtered by season
// @Tags event
// @Produce json
// @Param season query int false "Season"
// @Success 200 {array} EventResponse
// @Router /events [get]
func (e *EventController) getEventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var events []*repository.Event
		var err error
		if seasonParam := c.Query("season"); seasonParam != "" {
			season, convErr := strconv.Atoi(seasonParam)
			if convErr != nil {
				c.JSON(400, gin.H{"error": convErr.Error()})
				return
			}
			events, err = e.eventService.GetEventsBySeason(season)
		} else {
			events, err = e.eventService.GetAllEvents()
		}
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(events, toEventResponse))
	}
}

// @Description Fetches an event by id
// @Tags event
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {object} EventResponse
// @Router /events/{event_id} [get]
func (e *EventController) getEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.GetEventById(eventId)
		if err != nil {
			c.JSON(404, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(200, toEventResponse(event))
	}
}

// @Description Creates an event
// @Tags event
// @Accept json
// @Produce json
// @Param event body EventCreate true "Event to create"
// @Success 201 {object} EventResponse
// @Router /events [post]
func (e *EventController) createEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var eventCreate EventCreate
		if err := c.BindJSON(&eventCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.CreateEvent(eventCreate.toModel())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toEventResponse(event))
	}
}

// @Description Updates an event. Finishing an event scores it and announces the podium.
// @Tags event
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param event body EventUpdate true "Fields to update"
// @Success 200 {object} EventResponse
// @Router /events/{event_id} [patch]
func (e *EventController) updateEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update EventUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		previous, err := e.eventService.GetEventById(eventId)
		if err != nil {
			c.JSON(404, gin.H{"error": "Event not found"})
			return
		}
		wasFinished := previous.Finished
		event, err := e.eventService.UpdateEvent(eventId, update.toModel(), update.Finished)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if err := e.scoreService.RescoreEvent(event.Id); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if event.Finished && !wasFinished {
			e.scoreService.AnnounceEvent(event.Id)
		}
		c.JSON(200, toEventResponse(event))
	}
}

// @Description Deletes an event and all its results
// @Tags event
// @Param event_id path int true "Event Id"
// @Success 204
// @Router /events/{event_id} [delete]
func (e *EventController) deleteEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.eventService.DeleteEvent(eventId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}
