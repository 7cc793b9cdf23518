// cmd/dbtools/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/auth"
	"github.com/codr1/courtslots/internal/config"
	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

var (
	seedGenders = []string{"M", "F"}
	seedLevels  = []string{"1", "2", "3", "4", "5", "6", "7", "PA", "PB"}
	seedKinds   = []string{"competitive", "training"}
)

const seedCourtCount = 6

func main() {
	var (
		configPath    = flag.String("config", "config.yaml", "Path to the YAML configuration file")
		command       = flag.String("command", "", "Command to run (up, down, version, seed)")
		adminUser     = flag.String("admin-user", "admin", "Admin username created by seed")
		adminPassword = flag.String("admin-password", os.Getenv("ADMIN_PASSWORD"), "Admin password for seed (defaults to $ADMIN_PASSWORD)")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *command == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Opening the database applies pending migrations.
	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	switch *command {
	case "up":
		log.Info().Str("file", cfg.Database.Filename).Msg("Migrations applied")
	case "down", "version":
		if err := runMigrator(database, *command); err != nil {
			log.Fatal().Err(err).Str("command", *command).Msg("Migration command failed")
		}
	case "seed":
		if *adminPassword == "" {
			log.Fatal().Msg("seed requires -admin-password or ADMIN_PASSWORD")
		}
		if err := seed(context.Background(), database.Queries, *adminUser, *adminPassword); err != nil {
			log.Fatal().Err(err).Msg("Seed failed")
		}
		log.Info().Str("admin", *adminUser).Msg("Seed complete")
	default:
		log.Fatal().Str("command", *command).Msg("Unknown command")
	}
}

func runMigrator(database *db.DB, command string) error {
	m, err := db.NewMigrator(database.DB)
	if err != nil {
		return err
	}

	switch command {
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Info().Msg("Migrations rolled back")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("get version failed: %w", err)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
	}
	return nil
}

// seed is idempotent: courts, the category matrix and the admin are upserted.
func seed(ctx context.Context, q *dbgen.Queries, adminUser, adminPassword string) error {
	for number := int64(1); number <= seedCourtCount; number++ {
		if err := q.UpsertCourt(ctx, number); err != nil {
			return fmt.Errorf("seed court %d: %w", number, err)
		}
	}

	for _, gender := range seedGenders {
		for _, level := range seedLevels {
			for _, kind := range seedKinds {
				if err := q.UpsertCategory(ctx, dbgen.UpsertCategoryParams{Gender: gender, Level: level, Kind: kind}); err != nil {
					return fmt.Errorf("seed category %s%s/%s: %w", gender, level, kind, err)
				}
			}
		}
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := q.UpsertAdmin(ctx, dbgen.UpsertAdminParams{Username: adminUser, PasswordHash: hash}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
