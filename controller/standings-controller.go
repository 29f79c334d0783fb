package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"clubscore/metrics"
	"clubscore/scoring"
	"clubscore/service"
	"clubscore/utils"
)

type StandingsController struct {
	scoreService *service.ScoreService
	mu           sync.Mutex
	connections  map[int]map[*websocket.Conn]bool
}

func NewStandingsController(scoreService *service.ScoreService) *StandingsController {
	controller := &StandingsController{
		scoreService: scoreService,
		connections:  make(map[int]map[*websocket.Conn]bool),
	}
	scoreService.AddListener(controller.broadcastDiff)
	return controller
}

func setupStandingsController(db *gorm.DB, scoreService *service.ScoreService, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewStandingsController(scoreService)
	basePath := "/seasons/:season/standings"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: cache.CachePage(cacheStore, time.Minute, e.getStandingsHandler())},
		{Method: "GET", Path: "/ws", HandlerFunc: e.webSocketHandler},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// allow any host origin to connect to the websocket
		return true
	},
}

type StandingResponse struct {
	Position      int                   `json:"position"`
	ParticipantId int                   `json:"participantId"`
	Name          string                `json:"name"`
	TotalPoints   int                   `json:"totalPoints"`
	FinalPoints   int                   `json:"finalPoints"`
	Scores        []*scoring.EventScore `json:"scores"`
}

func toStandingResponses(cohort []*scoring.Standing) []*StandingResponse {
	responses := make([]*StandingResponse, len(cohort))
	for i, standing := range cohort {
		responses[i] = &StandingResponse{
			Position:      i + 1,
			ParticipantId: standing.Participant.Id,
			Name:          standing.Participant.DisplayName(),
			TotalPoints:   standing.TotalPoints,
			FinalPoints:   standing.FinalPoints,
			Scores:        standing.Scores,
		}
	}
	return responses
}

// @Description Fetches the season standings grouped into the Women/Hobby/Ambitious cohorts
// @Tags standings
// @Produce json
// @Param season path int true "Season"
// @Success 200 {object} map[string][]StandingResponse
// @Router /seasons/{season}/standings [get]
func (e *StandingsController) getStandingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		season, err := strconv.Atoi(c.Param("season"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		standings, err := e.scoreService.ComputeSeasonStandings(season)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		response := make(map[scoring.GroupLabel][]*StandingResponse)
		for label, cohort := range standings {
			response[label] = toStandingResponses(cohort)
		}
		c.JSON(200, response)
	}
}

// @Description Websocket for standings updates. The first message is a full snapshot, every further message a diff.
// @Tags standings
// @Param season path int true "Season"
// @Success 200 {object} service.StandingsMap
// @Router /seasons/{season}/standings/ws [get]
func (e *StandingsController) webSocketHandler(c *gin.Context) {
	season, err := strconv.Atoi(c.Param("season"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	snapshot, err := e.scoreService.LatestFor(season)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.NotFound(c.Writer, c.Request)
		return
	}
	defer utils.Closer(conn)()

	serialized, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, serialized); err != nil {
		return
	}

	e.mu.Lock()
	if _, ok := e.connections[season]; !ok {
		e.connections[season] = make(map[*websocket.Conn]bool)
	}
	e.connections[season][conn] = true
	e.mu.Unlock()
	metrics.StandingsSubscriberGauge.Inc()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			e.mu.Lock()
			delete(e.connections[season], conn)
			if len(e.connections[season]) == 0 {
				delete(e.connections, season)
			}
			e.mu.Unlock()
			metrics.StandingsSubscriberGauge.Dec()
			return
		}
	}
}

func (e *StandingsController) broadcastDiff(season int, diff service.StandingsMap) {
	serialized, err := json.Marshal(diff)
	if err != nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for conn := range e.connections[season] {
		if err := conn.WriteMessage(websocket.TextMessage, serialized); err != nil {
			delete(e.connections[season], conn)
		}
	}
}
