package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clubscore/repository"
	"clubscore/service"
)

type SettingsController struct {
	settingsService *service.SettingsService
	scoreService    *service.ScoreService
}

func NewSettingsController(db *gorm.DB, scoreService *service.ScoreService) *SettingsController {
	return &SettingsController{
		settingsService: service.NewSettingsService(db),
		scoreService:    scoreService,
	}
}

func setupSettingsController(db *gorm.DB, scoreService *service.ScoreService) []RouteInfo {
	e := NewSettingsController(db, scoreService)
	basePath := "/seasons/:season/settings"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getSettingsHandler()},
		{Method: "PUT", Path: "", HandlerFunc: e.saveSettingsHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Fetches the scoring settings for a season. Returns zeroed settings if none were saved yet.
// @Tags settings
// @Produce json
// @Param season path int true "Season"
// @Success 200 {object} repository.ScoringSettings
// @Router /seasons/{season}/settings [get]
func (e *SettingsController) getSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		season, err := strconv.Atoi(c.Param("season"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		settings, err := e.settingsService.GetForSeason(season)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, settings)
	}
}

// @Description Saves the scoring settings for a season and rescores all its events
// @Tags settings
// @Accept json
// @Produce json
// @Param season path int true "Season"
// @Param settings body repository.ScoringSettings true "Settings to save"
// @Success 200 {object} repository.ScoringSettings
// @Router /seasons/{season}/settings [put]
func (e *SettingsController) saveSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		season, err := strconv.Atoi(c.Param("season"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var settings repository.ScoringSettings
		if err := c.BindJSON(&settings); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		saved, err := e.settingsService.SaveForSeason(season, &settings)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if err := e.scoreService.RescoreSeason(season); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, saved)
	}
}
