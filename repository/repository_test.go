package repository

import (
	"fmt"
	"log"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubscore/utils"
)

var db *gorm.DB
var enumQueries = []string{
	`CREATE TYPE clubscore.event_type AS ENUM ('IndividualTimeTrial', 'MountainTimeTrial', 'TeamTimeTrial', 'HandicapRace')`,
	`CREATE TYPE clubscore.perf_class AS ENUM ('A', 'B', 'C', 'D')`,
	`CREATE TYPE clubscore.gender AS ENUM ('Male', 'Female')`,
}

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // Tell docker to hard kill the container in 10 minutes
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=clubscore",
		resource.GetPort("5432/tcp"))

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), &gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				TablePrefix:   "clubscore.",
				SingularTable: false,
			},
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		db.Exec(`CREATE SCHEMA IF NOT EXISTS clubscore`)
		for _, query := range enumQueries {
			x := db.Exec(query)
			if x.Error != nil {
				if strings.Contains(x.Error.Error(), "already exists") {
					continue
				}
			}
		}
		return AutoMigrate(db)
	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}
	}()
	m.Run()
}

func TearDown() {
	db.Exec("DELETE FROM clubscore.team_members")
	db.Exec("DELETE FROM clubscore.teams")
	db.Exec("DELETE FROM clubscore.results")
	db.Exec("DELETE FROM clubscore.events")
	db.Exec("DELETE FROM clubscore.participants")
	db.Exec("DELETE FROM clubscore.age_brackets")
	db.Exec("DELETE FROM clubscore.scoring_settings")
	db.Exec("DELETE FROM clubscore.users")
}

func SetUp(t *testing.T) (*Event, *Participant) {
	participant := &Participant{
		FirstName: "Erika",
		LastName:  "Beispiel",
		BirthYear: 1980,
		PerfClass: PerfClassB,
		Gender:    GenderFemale,
	}
	require.Nil(t, db.Create(participant).Error)
	event := &Event{
		Name:      "Spring Time Trial",
		EventType: IndividualTimeTrial,
		Season:    2026,
	}
	require.Nil(t, db.Create(event).Error)
	return event, participant
}

func TestResultUpsertKeepsOneRowPerParticipant(t *testing.T) {
	event, participant := SetUp(t)
	defer TearDown()
	repo := NewResultRepository(db)

	first, err := repo.Upsert(&Result{
		EventId:       event.Id,
		ParticipantId: participant.Id,
		TimeSeconds:   utils.Ptr(1800),
		FinisherGroup: 1,
	})
	require.Nil(t, err)

	second, err := repo.Upsert(&Result{
		EventId:       event.Id,
		ParticipantId: participant.Id,
		TimeSeconds:   utils.Ptr(1750),
		Dnf:           false,
		FinisherGroup: 2,
	})
	require.Nil(t, err)

	results, err := repo.GetResultsForEvent(event.Id)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, 1750, *results[0].TimeSeconds)
	assert.Equal(t, 2, results[0].FinisherGroup)
}

func TestSaveScoresPersistsPointsAndRank(t *testing.T) {
	event, participant := SetUp(t)
	defer TearDown()
	repo := NewResultRepository(db)

	result, err := repo.Upsert(&Result{
		EventId:       event.Id,
		ParticipantId: participant.Id,
		TimeSeconds:   utils.Ptr(1800),
		FinisherGroup: 1,
	})
	require.Nil(t, err)

	result.Points = 8
	result.RankOverall = utils.Ptr(1)
	require.Nil(t, repo.SaveScores([]*Result{result}))

	results, err := repo.GetResultsForEvent(event.Id)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 8, results[0].Points)
	assert.Equal(t, 1, *results[0].RankOverall)
}

func TestDeletingEventCascadesToResults(t *testing.T) {
	event, participant := SetUp(t)
	defer TearDown()
	resultRepo := NewResultRepository(db)
	eventRepo := NewEventRepository(db)

	_, err := resultRepo.Upsert(&Result{
		EventId:       event.Id,
		ParticipantId: participant.Id,
		TimeSeconds:   utils.Ptr(1800),
		FinisherGroup: 1,
	})
	require.Nil(t, err)

	require.Nil(t, eventRepo.Delete(event.Id))

	results, err := resultRepo.GetResultsForEvent(event.Id)
	require.Nil(t, err)
	assert.Empty(t, results)
}

func TestSettingsRoundTripWithBrackets(t *testing.T) {
	defer TearDown()
	repo := NewSettingsRepository(db)

	settings := &ScoringSettings{
		Season:             2026,
		GenderBonusEnabled: true,
		GenderBonusSeconds: -90,
		DropScores:         2,
		WinnerPoints:       PointsTable{3, 2, 1},
		BasePointsA:        2,
		BasePointsB:        3,
		BasePointsC:        4,
		BasePointsD:        5,
		AgeBrackets: []*AgeBracket{
			{SortOrder: 0, Enabled: true, MinAge: 40, MaxAge: 49, Seconds: -30},
			{SortOrder: 1, Enabled: true, MinAge: 50, MaxAge: 59, Seconds: -60},
		},
	}
	_, err := repo.Save(settings)
	require.Nil(t, err)

	loaded, err := repo.GetForSeason(2026)
	require.Nil(t, err)
	assert.Equal(t, PointsTable{3, 2, 1}, loaded.WinnerPoints)
	assert.Equal(t, -90, loaded.GenderBonusSeconds)
	require.Len(t, loaded.AgeBrackets, 2)
	assert.Equal(t, -60, loaded.AgeBrackets[1].Seconds)
}

func TestSettingsForUnknownSeasonAreZeroed(t *testing.T) {
	defer TearDown()
	repo := NewSettingsRepository(db)

	settings, err := repo.GetForSeason(1999)
	require.Nil(t, err)
	assert.Equal(t, 1999, settings.Season)
	assert.Equal(t, 0, settings.DropScores)
	assert.Empty(t, settings.AgeBrackets)
}
