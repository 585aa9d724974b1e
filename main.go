package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"cardhub/common"
	"cardhub/config"
	"cardhub/database"
	"cardhub/logging"
)

func main() {
	app := &cli.App{
		Name:  "cardhub",
		Usage: "Digital business cards",
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logging.Fatal().Err(err).Msg("cardhub exited")
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema and exit",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := common.ConnectDb(cfg.Database)
			if err != nil {
				return err
			}
			if err := database.RunMigrations(db); err != nil {
				return err
			}
			logging.Info().Msg("migrations applied")
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	return cfg, nil
}
