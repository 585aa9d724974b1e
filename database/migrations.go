package database

import (
	"cardhub/logging"
	"cardhub/models"

	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	logging.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.BusinessCard{},
		&models.AnalyticsEvent{},
		&models.ContactShare{},
		&models.TelegramSettings{},
	)

	if err != nil {
		logging.Error().Err(err).Msg("migrations failed")
		return err
	}

	logging.Info().Msg("migrations completed")
	return nil
}
