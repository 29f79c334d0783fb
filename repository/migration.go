package repository

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Participant{},
		&Event{},
		&Result{},
		&Team{},
		&TeamMember{},
		&ScoringSettings{},
		&AgeBracket{},
		&User{},
	)
}
