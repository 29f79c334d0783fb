package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"clubscore/config"
	"clubscore/repository"
)

type OauthState struct {
	Verifier string
	Timeout  int64
}

type OauthService struct {
	oauthConfig *oauth2.Config
	stateMap    map[string]OauthState
	userService *UserService
}

type DiscordUserResponse struct {
	Id            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"global_name"`
}

func NewOauthService(db *gorm.DB) *OauthService {
	cfg := config.Env()
	return &OauthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			Scopes:       []string{"identify"},
			RedirectURL:  cfg.DiscordRedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://discord.com/oauth2/authorize",
				TokenURL: "https://discord.com/api/oauth2/token",
			},
		},
		stateMap:    make(map[string]OauthState),
		userService: NewUserService(db),
	}
}

func (s *OauthService) newVerifier() (string, string) {
	// clean up old verifiers
	for state, v := range s.stateMap {
		if v.Timeout < time.Now().Unix() {
			delete(s.stateMap, state)
		}
	}
	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()
	s.stateMap[state] = OauthState{
		Verifier: verifier,
		Timeout:  time.Now().Add(1 * time.Minute).Unix(),
	}
	return state, verifier
}

func (s *OauthService) GetRedirectUrl() string {
	state, verifier := s.newVerifier()
	return s.oauthConfig.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("code_challenge", oauth2.S256ChallengeFromVerifier(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

func (s *OauthService) VerifyDiscord(state string, code string) (*repository.User, error) {
	authState, ok := s.stateMap[state]
	if !ok {
		return nil, fmt.Errorf("state is unknown")
	}
	delete(s.stateMap, state)
	token, err := s.oauthConfig.Exchange(context.Background(), code, oauth2.SetAuthURLParam("code_verifier", authState.Verifier))
	if err != nil {
		return nil, err
	}
	client := s.oauthConfig.Client(context.Background(), token)
	response, err := client.Get("https://discord.com/api/users/@me")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	var discordUser DiscordUserResponse
	if err := json.Unmarshal(body, &discordUser); err != nil {
		return nil, err
	}
	discordId, err := strconv.ParseInt(discordUser.Id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("unexpected discord user id %q", discordUser.Id)
	}
	name := discordUser.GlobalName
	if name == "" {
		name = discordUser.Username
	}
	return s.userService.GetOrCreateDiscordUser(discordId, name)
}
