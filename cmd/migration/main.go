package main

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/m04kA/SMC-WashRequestService/internal/config"
	"github.com/m04kA/SMC-WashRequestService/pkg/logger"
)

const (
	migrationPath = "migrations"
	migrationDB   = "postgres"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	db, err := sql.Open(migrationDB, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: migrationPath,
	}

	switch direction {
	case "up":
		n, err := migrate.Exec(db, migrationDB, migrations, migrate.Up)
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Applied %d migrations", n)

	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				log.Fatal("Invalid step count %q: %v", os.Args[2], err)
			}
		}
		n, err := migrate.ExecMax(db, migrationDB, migrations, migrate.Down, steps)
		if err != nil {
			log.Fatal("Failed to roll back migrations: %v", err)
		}
		log.Info("Rolled back %d migrations", n)

	default:
		log.Fatal("Unknown migration direction %q, expected up or down", direction)
	}
}
