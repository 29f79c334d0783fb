package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	"clubscore/client"
	"clubscore/config"
	"clubscore/metrics"
	"clubscore/repository"
	"clubscore/scoring"
	"clubscore/utils"
)

// StandingEntry is the flattened broadcast form of one participant's season
// standing: cohort, position within the cohort and the point totals.
type StandingEntry struct {
	ParticipantId int                   `json:"participantId"`
	Name          string                `json:"name"`
	Group         scoring.GroupLabel    `json:"group"`
	Position      int                   `json:"position"`
	TotalPoints   int                   `json:"totalPoints"`
	FinalPoints   int                   `json:"finalPoints"`
	Scores        []*scoring.EventScore `json:"scores"`
}

func (e *StandingEntry) Identifier() string {
	return strconv.Itoa(e.ParticipantId)
}

type Difftype string

const (
	Added     Difftype = "Added"
	Removed   Difftype = "Removed"
	Changed   Difftype = "Changed"
	Unchanged Difftype = "Unchanged"
)

type StandingDiff struct {
	Entry     *StandingEntry
	FieldDiff []string
	DiffType  Difftype
}

type StandingsMap map[string]*StandingDiff

func GetStandingDifference(prevDiff *StandingDiff, entry *StandingEntry) *StandingDiff {
	if prevDiff == nil {
		return &StandingDiff{Entry: entry, DiffType: Added}
	}
	prev := prevDiff.Entry
	fieldDiff := make([]string, 0)
	if prev.Group != entry.Group {
		fieldDiff = append(fieldDiff, "Group")
	}
	if prev.Position != entry.Position {
		fieldDiff = append(fieldDiff, "Position")
	}
	if prev.TotalPoints != entry.TotalPoints {
		fieldDiff = append(fieldDiff, "TotalPoints")
	}
	if prev.FinalPoints != entry.FinalPoints {
		fieldDiff = append(fieldDiff, "FinalPoints")
	}
	if len(prev.Scores) != len(entry.Scores) {
		fieldDiff = append(fieldDiff, "Scores")
	}
	if len(fieldDiff) == 0 {
		return &StandingDiff{Entry: entry, DiffType: Unchanged}
	}
	return &StandingDiff{Entry: entry, FieldDiff: fieldDiff, DiffType: Changed}
}

func Diff(oldMap StandingsMap, entries []*StandingEntry) (StandingsMap, StandingsMap) {
	newMap := make(StandingsMap)
	diffMap := make(StandingsMap)
	for _, entry := range entries {
		id := entry.Identifier()
		diff := GetStandingDifference(oldMap[id], entry)
		newMap[id] = diff
		if diff.DiffType != Unchanged {
			diffMap[id] = diff
		}
	}
	for id, oldDiff := range oldMap {
		if _, ok := newMap[id]; !ok {
			diffMap[id] = &StandingDiff{Entry: oldDiff.Entry, DiffType: Removed}
		}
	}
	return newMap, diffMap
}

// ScoreService drives every recomputation: it loads an event's inputs, runs the
// scoring engine, persists the output and rebuilds the season standings. The
// mutex enforces the engine's single-writer assumption; callers may invoke it
// from any goroutine.
type ScoreService struct {
	mu              sync.Mutex
	LatestStandings map[int]StandingsMap

	eventService       *EventService
	participantService *ParticipantService
	teamService        *TeamService
	settingsService    *SettingsService
	resultRepository   *repository.ResultRepository

	announcer *client.DiscordAnnouncer
	writers   map[int]*kafka.Writer
	listeners []func(season int, diff StandingsMap)
}

func NewScoreService(db *gorm.DB) *ScoreService {
	announcer, err := client.NewDiscordAnnouncer()
	if err != nil {
		log.Printf("Discord announcements disabled: %v", err)
	}
	return &ScoreService{
		LatestStandings:    make(map[int]StandingsMap),
		eventService:       NewEventService(db),
		participantService: NewParticipantService(db),
		teamService:        NewTeamService(db),
		settingsService:    NewSettingsService(db),
		resultRepository:   repository.NewResultRepository(db),
		announcer:          announcer,
		writers:            make(map[int]*kafka.Writer),
	}
}

// AddListener registers a callback invoked with every non-empty standings diff.
// Listeners must not block.
func (s *ScoreService) AddListener(listener func(season int, diff StandingsMap)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *ScoreService) RescoreEvent(eventId int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, err := s.scoreOne(eventId)
	if err != nil {
		return err
	}
	return s.refreshStandings(event.Season)
}

// RescoreSeason recomputes every event of a season. Used after settings edits,
// which can shift every handicap and drop decision at once.
func (s *ScoreService) RescoreSeason(season int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	events, err := s.eventService.GetEventsBySeason(season)
	if err != nil {
		return err
	}
	for _, event := range events {
		if _, err := s.scoreOne(event.Id); err != nil {
			return err
		}
	}
	return s.refreshStandings(season)
}

func (s *ScoreService) scoreOne(eventId int) (*repository.Event, error) {
	t := time.Now()
	event, err := s.eventService.GetEventById(eventId)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepository.GetResultsForEvent(eventId)
	if err != nil {
		return nil, err
	}
	participants, err := s.participantService.GetAllParticipants()
	if err != nil {
		return nil, err
	}
	teams, err := s.teamService.GetTeamsForEvent(eventId)
	if err != nil {
		return nil, err
	}
	members, err := s.teamService.GetMembersForEvent(eventId)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsService.GetForSeason(event.Season)
	if err != nil {
		return nil, err
	}
	metrics.RescoreCounter.WithLabelValues(string(event.EventType)).Inc()
	scored := scoring.ScoreEvent(event, results, participants, teams, members, settings)
	if err := s.resultRepository.SaveScores(scored); err != nil {
		return nil, err
	}
	log.Printf("Scored event %d (%s) in %d ms", event.Id, event.EventType, time.Since(t).Milliseconds())
	return event, nil
}

// ComputeSeasonStandings recomputes the grouped season standings from the
// stored results without touching the diff state.
func (s *ScoreService) ComputeSeasonStandings(season int) (map[scoring.GroupLabel][]*scoring.Standing, error) {
	events, err := s.eventService.GetEventsBySeason(season)
	if err != nil {
		return nil, err
	}
	eventIds := utils.Map(events, func(event *repository.Event) int {
		return event.Id
	})
	results, err := s.resultRepository.GetResultsForEvents(eventIds)
	if err != nil {
		return nil, err
	}
	participants, err := s.participantService.GetAllParticipants()
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsService.GetForSeason(season)
	if err != nil {
		return nil, err
	}
	return scoring.ComputeStandings(results, participants, events, settings), nil
}

// LatestFor returns the last broadcast standings state for a season, building
// it on first access so new websocket subscribers get a full snapshot.
func (s *ScoreService) LatestFor(season int) (StandingsMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.LatestStandings[season]; !ok {
		if err := s.refreshStandings(season); err != nil {
			return nil, err
		}
	}
	return s.LatestStandings[season], nil
}

func (s *ScoreService) refreshStandings(season int) error {
	standings, err := s.ComputeSeasonStandings(season)
	if err != nil {
		return err
	}
	entries := make([]*StandingEntry, 0)
	for group, cohort := range standings {
		for i, standing := range cohort {
			entries = append(entries, &StandingEntry{
				ParticipantId: standing.Participant.Id,
				Name:          standing.Participant.DisplayName(),
				Group:         group,
				Position:      i + 1,
				TotalPoints:   standing.TotalPoints,
				FinalPoints:   standing.FinalPoints,
				Scores:        standing.Scores,
			})
		}
	}
	newMap, diff := Diff(s.LatestStandings[season], entries)
	s.LatestStandings[season] = newMap
	if len(diff) == 0 {
		return nil
	}
	metrics.StandingsDiffCounter.Inc()
	for _, listener := range s.listeners {
		listener(season, diff)
	}
	s.publishDiff(season, diff)
	return nil
}

func (s *ScoreService) publishDiff(season int, diff StandingsMap) {
	if config.Env().KafkaBroker == "" {
		return
	}
	writer, ok := s.writers[season]
	if !ok {
		var err error
		writer, err = config.GetStandingsWriter(season)
		if err != nil {
			metrics.KafkaPublishErrorCounter.Inc()
			log.Printf("Failed to create standings writer for season %d: %v", season, err)
			return
		}
		s.writers[season] = writer
	}
	payload, err := json.Marshal(diff)
	if err != nil {
		metrics.KafkaPublishErrorCounter.Inc()
		log.Printf("Failed to serialize standings diff: %v", err)
		return
	}
	err = writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(strconv.Itoa(season)),
		Value: payload,
	})
	if err != nil {
		metrics.KafkaPublishErrorCounter.Inc()
		log.Printf("Failed to publish standings diff: %v", err)
	}
}

// AnnounceEvent posts the event podium to the club Discord channel. Called by
// the event controller when an event transitions to finished; failures only
// log, the scoring pass is never rolled back for a missed announcement.
func (s *ScoreService) AnnounceEvent(eventId int) {
	if s.announcer == nil {
		return
	}
	event, err := s.eventService.GetEventById(eventId)
	if err != nil {
		return
	}
	results, err := s.resultRepository.GetResultsForEvent(eventId)
	if err != nil {
		return
	}
	participants, err := s.participantService.GetAllParticipants()
	if err != nil {
		return
	}
	byId := make(map[int]*repository.Participant)
	for _, participant := range participants {
		byId[participant.Id] = participant
	}
	ranked := make([]*repository.Result, 0)
	for _, result := range results {
		if result.RankOverall != nil && byId[result.ParticipantId] != nil {
			ranked = append(ranked, result)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return *ranked[i].RankOverall < *ranked[j].RankOverall
	})
	podium := make([]client.PodiumEntry, 0, 3)
	for _, result := range ranked {
		if *result.RankOverall > 3 {
			break
		}
		podium = append(podium, client.PodiumEntry{
			Rank:   *result.RankOverall,
			Name:   byId[result.ParticipantId].DisplayName(),
			Points: result.Points,
		})
	}
	if err := s.announcer.AnnouncePodium(event.Name, podium); err != nil {
		metrics.DiscordAnnounceErrorCounter.Inc()
		log.Printf("Failed to announce event %d: %v", eventId, err)
	}
}
