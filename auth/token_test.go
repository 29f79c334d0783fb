package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubscore/repository"
)

func TestTokenRoundTripCarriesUserClaims(t *testing.T) {
	user := &repository.User{
		Id:          7,
		DiscordId:   123456789,
		DiscordName: "clubadmin",
		Permissions: []string{string(repository.PermissionAdmin)},
	}

	tokenString, err := CreateToken(user)
	require.Nil(t, err)

	token, err := ParseToken(tokenString)
	require.Nil(t, err)
	require.True(t, token.Valid)

	claims := &Claims{}
	claims.FromJWTClaims(token.Claims)
	require.Nil(t, claims.Valid())
	assert.Equal(t, 7, claims.UserId)
	assert.Equal(t, "clubadmin", claims.Name)
	assert.Equal(t, []string{"admin"}, claims.Permissions)
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

func TestExpiredClaimsAreRejected(t *testing.T) {
	claims := &Claims{UserId: 1, Exp: time.Now().Add(-time.Minute).Unix()}
	assert.NotNil(t, claims.Valid())
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.NotNil(t, err)
}
