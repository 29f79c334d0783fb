package service

import (
	"clubscore/repository"

	"gorm.io/gorm"
)

type SettingsService struct {
	settingsRepository *repository.SettingsRepository
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{
		settingsRepository: repository.NewSettingsRepository(db),
	}
}

func (s *SettingsService) GetForSeason(season int) (*repository.ScoringSettings, error) {
	return s.settingsRepository.GetForSeason(season)
}

// SaveForSeason replaces the season's settings wholesale. Bracket order follows
// the submitted list order.
func (s *SettingsService) SaveForSeason(season int, settings *repository.ScoringSettings) (*repository.ScoringSettings, error) {
	existing, err := s.settingsRepository.GetForSeason(season)
	if err != nil {
		return nil, err
	}
	settings.Id = existing.Id
	settings.Season = season
	for i, bracket := range settings.AgeBrackets {
		bracket.Id = 0
		bracket.SortOrder = i
	}
	return s.settingsRepository.Save(settings)
}
