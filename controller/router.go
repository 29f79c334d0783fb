package controller

import (
	"clubscore/auth"
	"clubscore/service"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []string
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore persistence.CacheStore) {
	// A single ScoreService is shared between the mutating controllers and
	// the standings controller so that websocket subscribers see the diffs
	// produced by rescores.
	scoreService := service.NewScoreService(db)
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupParticipantController(db)...)
	routes = append(routes, setupEventController(db, scoreService)...)
	routes = append(routes, setupResultController(db, scoreService)...)
	routes = append(routes, setupTeamController(db, scoreService)...)
	routes = append(routes, setupSettingsController(db, scoreService)...)
	routes = append(routes, setupStandingsController(db, scoreService, cacheStore)...)
	routes = append(routes, setupOauthController(db)...)
	routes = append(routes, setupUserController(db)...)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(db, route.RequiredRoles))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		r.Handle(route.Method, "/api"+route.Path, handlerfuncs...)
	}
}

func AuthMiddleware(db *gorm.DB, roles []string) gin.HandlerFunc {
	return func(r *gin.Context) {
		authCookie, err := r.Cookie("auth")
		if err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		token, err := auth.ParseToken(authCookie)
		if err != nil || !token.Valid {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		claims := &auth.Claims{}
		claims.FromJWTClaims(token.Claims)
		if err := claims.Valid(); err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		r.Set("claims", claims)
		if len(roles) == 0 {
			r.Next()
			return
		}
		for _, requiredRole := range roles {
			for _, userRole := range claims.Permissions {
				if requiredRole == userRole {
					r.Next()
					return
				}
			}
		}
		r.JSON(403, gin.H{"error": "Unauthorized"})
		r.Abort()
	}
}
