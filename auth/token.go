package auth

import (
	"time"

	"clubscore/config"
	"clubscore/repository"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime matches the auth cookie set by the oauth controller.
const TokenLifetime = 7 * 24 * time.Hour

type Claims struct {
	UserId      int      `json:"user_id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Exp         int64    `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) {
	mapClaims, ok := jwtClaims.(jwt.MapClaims)
	if !ok {
		return
	}
	permissions := []string{}
	if raw, ok := mapClaims["permissions"].([]interface{}); ok {
		for _, perm := range raw {
			if p, ok := perm.(string); ok {
				permissions = append(permissions, p)
			}
		}
	}
	claims.Permissions = permissions
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	if userId, ok := mapClaims["user_id"].(float64); ok {
		claims.UserId = int(userId)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.Exp = int64(exp)
	}
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

func CreateToken(user *repository.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"user_id":     user.Id,
			"name":        user.DiscordName,
			"permissions": user.Permissions,
			"exp":         time.Now().Add(TokenLifetime).Unix(),
		})
	return token.SignedString([]byte(config.Env().JWTSecret))
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Env().JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}
