package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cronmon-dev/cronmon/db"
	"github.com/cronmon-dev/cronmon/internal/handlers"
	"github.com/cronmon-dev/cronmon/internal/metrics"
	"github.com/cronmon-dev/cronmon/internal/models"
	"github.com/cronmon-dev/cronmon/internal/notify"
	"github.com/cronmon-dev/cronmon/internal/router"
	"github.com/cronmon-dev/cronmon/internal/store"
	"github.com/cronmon-dev/cronmon/internal/sweep"
	"github.com/cronmon-dev/cronmon/internal/ws"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		dsn = "cronmon.db"
		log.Println("DATABASE_URL not set, defaulting to local sqlite file cronmon.db")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	st := store.NewGormStore(db.DB)
	m := metrics.New()
	notifier := notify.NewDispatcher(notify.SMTPFromEnv())

	sweeper := sweep.New(st, notifier, m, sweep.Options{
		Interval:     envSeconds("SWEEP_INTERVAL", 60*time.Second),
		AlertTimeout: envSeconds("ALERT_TIMEOUT", 10*time.Second),
	})
	sweeper.OnTransition = func(monitor models.Monitor) {
		ws.BroadcastStatus(ws.StatusEvent{
			MonitorID:    monitor.ID,
			Name:         monitor.Name,
			Status:       monitor.Status,
			FailureCount: monitor.FailureCount,
		})
	}
	sweeper.Start()
	defer sweeper.Stop()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	baseURL := os.Getenv("BASE_URL")

	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	h := handlers.New(st, m, baseURL)
	r := router.NewRouter(h, m)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		log.Printf("Invalid %s=%q, using %v", key, value, fallback)
		return fallback
	}

	return time.Duration(seconds) * time.Second
}
