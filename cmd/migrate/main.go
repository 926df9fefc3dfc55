// This file is used to run database migrations
// How to run:
// go run cmd/migrate/main.go            # Apply the schema migrations
// go run cmd/migrate/main.go -retries 5 # Retry the connection before giving up
package main

import (
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/studyhub-dev/studyhub/config"
	"github.com/studyhub-dev/studyhub/internal/db"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	var (
		retries   = flag.Int("retries", 5, "Number of connection retries")
		retryWait = flag.Duration("retry-wait", 3*time.Second, "Wait time between retries")
	)
	flag.Parse()

	opts := db.Options{
		Host:     config.GetEnv("DB_HOST", db.DefaultHost),
		User:     config.GetEnv("DB_USER", db.DefaultUser),
		Password: config.GetEnv("DB_PASSWORD", db.DefaultPassword),
		DBName:   config.GetEnv("DB_NAME", db.DefaultDBName),
		Port:     config.GetEnvInt("DB_PORT", db.DefaultPort),
	}

	var lastErr error
	for attempt := 0; attempt <= *retries; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying database connection (%d/%d)", attempt, *retries)
			time.Sleep(*retryWait)
		}

		gormDB, err := db.New(opts)
		if err != nil {
			lastErr = err
			continue
		}

		if err := db.Migrate(gormDB); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
		return
	}
	log.Fatalf("Could not connect to database: %v", lastErr)
}
