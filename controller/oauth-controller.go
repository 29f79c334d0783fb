package controller

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clubscore/auth"
	"clubscore/service"
)

type OauthController struct {
	oauthService *service.OauthService
}

func NewOauthController(db *gorm.DB) *OauthController {
	return &OauthController{
		oauthService: service.NewOauthService(db),
	}
}

func setupOauthController(db *gorm.DB) []RouteInfo {
	e := NewOauthController(db)
	basePath := "/oauth2"
	routes := []RouteInfo{
		{Method: "GET", Path: "/discord", HandlerFunc: e.discordOauthHandler()},
		{Method: "GET", Path: "/discord/redirect", HandlerFunc: e.discordRedirectHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Redirects to discord oauth
// @Tags oauth
// @Produce json
// @Success 302
// @Router /oauth2/discord [get]
func (e *OauthController) discordOauthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, e.oauthService.GetRedirectUrl())
	}
}

// @Description Redirect handler for discord oauth. Sets the auth cookie on success.
// @Tags oauth
// @Produce json
// @Success 200 {object} UserResponse
// @Router /oauth2/discord/redirect [get]
func (e *OauthController) discordRedirectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if errorString := c.Request.URL.Query().Get("error"); errorString != "" {
			c.JSON(400, gin.H{"error": errorString + ": " + c.Request.URL.Query().Get("error_description")})
			return
		}
		code := c.Request.URL.Query().Get("code")
		state := c.Request.URL.Query().Get("state")
		user, err := e.oauthService.VerifyDiscord(state, code)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		authToken, err := auth.CreateToken(user)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("auth", authToken, int(auth.TokenLifetime.Seconds()), "/", os.Getenv("PUBLIC_DOMAIN"), false, true)
		c.JSON(200, toUserResponse(user))
	}
}
