package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"eventlist/internal/helpers"
	"eventlist/internal/models"
	"eventlist/internal/scheduler"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	TimeZone   string
	MediaRoot  string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		TimeZone:   os.Getenv("TIME_ZONE"),
		MediaRoot:  os.Getenv("MEDIA_ROOT"),
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = "UTC"
	}
	if cfg.MediaRoot == "" {
		cfg.MediaRoot = "./media"
	}
	return cfg, nil
}

// Location resolves the configured IANA time zone. Event date+time pairs are
// combined in this zone when calendar entries are projected.
func (cfg *Config) Location() (*time.Location, error) {
	return time.LoadLocation(cfg.TimeZone)
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.City{},
		&models.Tag{},
		&models.Event{},
		&models.Comment{},
		&models.Review{},
		&models.ReviewComment{},
		&models.ReviewRating{},
		&scheduler.Entry{},
	)
	if err != nil {
		return nil, err
	}

	seedTaxonomies(db)

	return db, nil
}

func seedTaxonomies(db *gorm.DB) {
	categories := []string{"Music", "Sports", "Theatre", "Food", "Technology"}
	for _, name := range categories {
		var existing models.Category
		result := db.Where("name = ?", name).First(&existing)
		if result.Error != nil {
			db.Create(&models.Category{Name: name, Slug: helpers.Slugify(name)})
		}
	}

	cities := []string{"Amsterdam", "Berlin", "London"}
	for _, name := range cities {
		var existing models.City
		result := db.Where("name = ?", name).First(&existing)
		if result.Error != nil {
			db.Create(&models.City{Name: name, Slug: helpers.Slugify(name)})
		}
	}
}
