// Package database opens the embedded SQLite store and migrates the
// schema for the local backend. The per-entity repositories live in the
// subpackages; each one implements its backend store interface against
// this database.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/reeflog/reeflog/internal/entities"
)

// LocalUserID is the constant principal owning every row in local
// mode. A single-device install has exactly one user; threading the id
// explicitly keeps the repositories multi-principal-ready.
const LocalUserID = "00000000-0000-4000-8000-000000000001"

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Tank{},
		&entities.TankEvent{},
		&entities.Note{},
		&entities.Livestock{},
		&entities.Equipment{},
		&entities.Consumable{},
		&entities.ConsumableUsage{},
		&entities.ICPTest{},
		&entities.LightingSchedule{},
		&entities.MaintenanceReminder{},
		&entities.ParameterReading{},
		&entities.FeedingSchedule{},
		&entities.FeedingLog{},
		&entities.Expense{},
		&entities.Budget{},
		&entities.Photo{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedLocalUser(); err != nil {
		return nil, fmt.Errorf("failed to seed local user: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedLocalUser() error {
	var existing entities.User
	result := d.DB.Where("id = ?", LocalUserID).First(&existing)
	if result.Error == gorm.ErrRecordNotFound {
		user := entities.User{ID: LocalUserID, Username: "local"}
		if err := d.DB.Create(&user).Error; err != nil {
			return err
		}
	} else if result.Error != nil {
		return result.Error
	}
	return nil
}
