package repository

import (
	"database/sql/driver"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// PointsTable is an ordered bonus table stored as a postgres numeric array.
// Index 0 holds the bonus for 1st place. Unlike a plain slice lookup, Get
// returns 0 for any position outside the table, so callers never bounds-check.
type PointsTable []int

func (p PointsTable) Get(i int) int {
	if i < 0 || i >= len(p) {
		return 0
	}
	return p[i]
}

func (p *PointsTable) Scan(value interface{}) error {
	var str string
	switch v := value.(type) {
	case nil:
		*p = PointsTable{}
		return nil
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return errors.New("unsupported data type for PointsTable")
	}
	str = strings.Trim(str, "{}")
	if str == "" {
		*p = PointsTable{}
		return nil
	}
	var points []int
	for _, s := range strings.Split(str, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		points = append(points, num)
	}
	*p = PointsTable(points)
	return nil
}

func (p PointsTable) Value() (driver.Value, error) {
	parts := make([]string, len(p))
	for i, num := range p {
		parts[i] = strconv.Itoa(num)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// AgeBracket is one row of the age handicap table. Brackets are scanned in
// SortOrder and only the first enabled bracket matching the rider's age applies.
type AgeBracket struct {
	Id         int  `gorm:"primaryKey"`
	SettingsId int  `gorm:"not null;references scoring_settings(id)"`
	SortOrder  int  `gorm:"not null"`
	Enabled    bool `gorm:"not null;default:true"`
	MinAge     int  `gorm:"not null"`
	MaxAge     int  `gorm:"not null"`
	Seconds    int  `gorm:"not null"`
}

// ScoringSettings holds the per-season scoring configuration. Handicap seconds
// follow the engine's sign convention: negative values are bonuses (deducted
// from the finish time), positive values are penalties.
type ScoringSettings struct {
	Id     int `gorm:"primaryKey"`
	Season int `gorm:"not null;uniqueIndex"`

	GenderBonusEnabled    bool `gorm:"not null;default:false"`
	GenderBonusSeconds    int  `gorm:"not null;default:0"`
	PerfClassBonusEnabled bool `gorm:"not null;default:false"`
	PerfClassBonusSeconds int  `gorm:"not null;default:0"`

	AeroBarsEnabled    bool `gorm:"not null;default:false"`
	AeroBarsSeconds    int  `gorm:"not null;default:0"`
	TTEquipmentEnabled bool `gorm:"not null;default:false"`
	TTEquipmentSeconds int  `gorm:"not null;default:0"`

	DropScores   int         `gorm:"not null;default:0"`
	WinnerPoints PointsTable `gorm:"type:numeric[]"`

	BasePointsA int `gorm:"not null;default:0"`
	BasePointsB int `gorm:"not null;default:0"`
	BasePointsC int `gorm:"not null;default:0"`
	BasePointsD int `gorm:"not null;default:0"`

	AgeBrackets []*AgeBracket `gorm:"foreignKey:SettingsId;constraint:OnDelete:CASCADE"`
}

// BasePoints returns the handicap-race base points for a performance class.
func (s *ScoringSettings) BasePoints(class PerfClass) int {
	switch class {
	case PerfClassA:
		return s.BasePointsA
	case PerfClassB:
		return s.BasePointsB
	case PerfClassC:
		return s.BasePointsC
	case PerfClassD:
		return s.BasePointsD
	}
	return 0
}

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// GetForSeason returns the season's settings, or a zeroed settings object when
// none are configured yet. The engine treats zeroed settings as "everything
// disabled", so a missing row never blocks scoring.
func (r *SettingsRepository) GetForSeason(season int) (*ScoringSettings, error) {
	var settings ScoringSettings
	result := r.DB.Preload("AgeBrackets", func(db *gorm.DB) *gorm.DB {
		return db.Order("age_brackets.sort_order")
	}).Where("season = ?", season).First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return &ScoringSettings{Season: season}, nil
		}
		return nil, result.Error
	}
	return &settings, nil
}

func (r *SettingsRepository) Save(settings *ScoringSettings) (*ScoringSettings, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if settings.Id != 0 {
			if err := tx.Where("settings_id = ?", settings.Id).Delete(&AgeBracket{}).Error; err != nil {
				return err
			}
		}
		return tx.Save(settings).Error
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}
