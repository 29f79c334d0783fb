package controller

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clubscore/repository"
	"clubscore/service"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService: service.NewUserService(db),
	}
}

func setupUserController(db *gorm.DB) []RouteInfo {
	e := NewUserController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/users/self", HandlerFunc: e.getUserHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/users/:user_id", HandlerFunc: e.changePermissionsHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "POST", Path: "/users/remove-auth", HandlerFunc: e.removeAuthHandler(), Authenticated: true},
	}
	return routes
}

type UserResponse struct {
	Id          int      `json:"id"`
	DiscordName string   `json:"discordName"`
	Permissions []string `json:"permissions"`
}

func toUserResponse(user *repository.User) *UserResponse {
	return &UserResponse{
		Id:          user.Id,
		DiscordName: user.DiscordName,
		Permissions: user.Permissions,
	}
}

type PermissionUpdate struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// @Description Fetches the authenticated user
// @Tags user
// @Produce json
// @Success 200 {object} UserResponse
// @Router /users/self [get]
func (e *UserController) getUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromAuthCookie(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @Description Changes a user's permissions
// @Tags user
// @Accept json
// @Produce json
// @Param user_id path int true "User Id"
// @Param permissions body PermissionUpdate true "Permissions to set"
// @Success 200 {object} UserResponse
// @Router /users/{user_id} [patch]
func (e *UserController) changePermissionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update PermissionUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.ChangePermissions(userId, update.Permissions)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @Description Logs the user out by expiring the auth cookie
// @Tags user
// @Success 200
// @Router /users/remove-auth [post]
func (e *UserController) removeAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("auth", "", -1, "/", os.Getenv("PUBLIC_DOMAIN"), false, true)
		c.JSON(200, gin.H{})
	}
}
