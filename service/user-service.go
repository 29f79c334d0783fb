package service

import (
	"fmt"

	"clubscore/auth"
	"clubscore/config"
	"clubscore/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type UserService struct {
	userRepository *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository: repository.NewUserRepository(db),
	}
}

func (s *UserService) GetUserById(userId int) (*repository.User, error) {
	return s.userRepository.GetUserById(userId)
}

// GetOrCreateDiscordUser looks up the club member behind a Discord account and
// creates one on first login. The very first user and the configured admin
// account get the admin permission.
func (s *UserService) GetOrCreateDiscordUser(discordId int64, discordName string) (*repository.User, error) {
	user, err := s.userRepository.GetUserByDiscordId(discordId)
	if err == nil {
		if user.DiscordName != discordName {
			user.DiscordName = discordName
			return s.userRepository.SaveUser(user)
		}
		return user, nil
	}
	permissions := []string{}
	count, err := s.userRepository.CountUsers()
	if err != nil {
		return nil, err
	}
	if count == 0 || discordId == config.Env().DiscordAdminID {
		permissions = append(permissions, string(repository.PermissionAdmin))
	}
	return s.userRepository.SaveUser(&repository.User{
		DiscordId:   discordId,
		DiscordName: discordName,
		Permissions: permissions,
	})
}

func (s *UserService) GetUserFromAuthCookie(c *gin.Context) (*repository.User, error) {
	authCookie, err := c.Cookie("auth")
	if err != nil {
		return nil, fmt.Errorf("no auth cookie set")
	}
	return s.GetUserFromToken(authCookie)
}

func (s *UserService) GetUserFromToken(tokenString string) (*repository.User, error) {
	token, err := auth.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims := &auth.Claims{}
	if token.Valid {
		claims.FromJWTClaims(token.Claims)
		if err := claims.Valid(); err != nil {
			return nil, err
		}
		return s.GetUserById(claims.UserId)
	}
	return nil, jwt.ErrInvalidKey
}

func (s *UserService) ChangePermissions(userId int, permissions []string) (*repository.User, error) {
	user, err := s.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	user.Permissions = permissions
	return s.userRepository.SaveUser(user)
}
