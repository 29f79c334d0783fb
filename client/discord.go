package client

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"clubscore/config"
)

// DiscordAnnouncer posts race summaries to the club's Discord channel. It is
// optional infrastructure: when no bot token or channel is configured the
// constructor fails and callers simply skip announcements.
type DiscordAnnouncer struct {
	session   *discordgo.Session
	channelId string
}

type PodiumEntry struct {
	Rank   int
	Name   string
	Points int
}

func NewDiscordAnnouncer() (*DiscordAnnouncer, error) {
	cfg := config.Env()
	if cfg.DiscordBotToken == "" || cfg.DiscordChannelID == "" {
		return nil, fmt.Errorf("discord announcements not configured")
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, err
	}
	return &DiscordAnnouncer{
		session:   session,
		channelId: cfg.DiscordChannelID,
	}, nil
}

func (a *DiscordAnnouncer) AnnouncePodium(eventName string, podium []PodiumEntry) error {
	if len(podium) == 0 {
		return nil
	}
	medals := []string{":first_place:", ":second_place:", ":third_place:"}
	lines := []string{fmt.Sprintf("**%s** is in the books!", eventName)}
	for _, entry := range podium {
		medal := ":checkered_flag:"
		if entry.Rank-1 < len(medals) {
			medal = medals[entry.Rank-1]
		}
		lines = append(lines, fmt.Sprintf("%s %s — %d points", medal, entry.Name, entry.Points))
	}
	_, err := a.session.ChannelMessageSend(a.channelId, strings.Join(lines, "\n"))
	return err
}
