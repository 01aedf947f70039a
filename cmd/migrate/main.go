// Command migrate applies schema migrations and seed data without starting
// the API server. Intended for deploy pipelines and local setup.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"starbank/internal/config"
	"starbank/internal/database"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [up|status|seed]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	// A missing .env is fine, variables may come from the environment
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	migrator := database.NewMigrator(db)
	if err := migrator.WaitForDatabase(); err != nil {
		log.Fatalf("Database not reachable: %v", err)
	}

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	case "status":
		version, dirty, err := migrator.Status()
		if err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
		log.Printf("Migration status - version: %d, dirty: %v", version, dirty)
	case "seed":
		if err := migrator.LoadSeeds(); err != nil {
			log.Fatalf("Seed loading failed: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}
