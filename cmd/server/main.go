package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"health-triage/internal/auth"
	"health-triage/internal/config"
	"health-triage/internal/health"
	"health-triage/internal/medical"
	"health-triage/internal/oracle"
	"health-triage/internal/platform/logger"
	"health-triage/internal/platform/telegram"
	"health-triage/internal/report"
	"health-triage/internal/triage"
	"health-triage/internal/user"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "health-triage")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 1. Infrastructure
	db, err := connectDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()

	runMigrations(cfg.DatabaseURL, log)

	// 2. Clients
	oracleClient := oracle.NewClient(cfg.Oracle.BaseURL, cfg.Oracle.Timeout, log)

	// 3. Services
	reportSvc := report.NewService(nil, 0, log)
	if cfg.Telegram.BotToken != "" {
		reportSvc = report.NewService(telegram.NewClient(cfg.Telegram.BotToken), cfg.Telegram.ClinicianChatID, log)
	} else {
		log.Warn("TELEGRAM_BOT_TOKEN is not set, emergency alerts are disabled")
	}

	triageRepo := triage.NewRepository(db)
	triageSvc := triage.NewService(triageRepo, oracleClient, triage.DefaultTables(), reportSvc, log)
	triageHandler := triage.NewHandler(triageSvc)

	authHandler := auth.NewHandler(auth.NewService(auth.NewRepository(db)))
	userHandler := user.NewHandler(user.NewService(user.NewRepository(db)))
	healthHandler := health.NewHandler(health.NewRepository(db))
	medicalHandler := medical.NewHandler(medical.NewRepository(db))
	reportHandler := report.NewHandler(reportSvc, triageSvc)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		auth.RegisterRoutes(r, authHandler)
		user.RegisterRoutes(r, userHandler)
		health.RegisterRoutes(r, healthHandler)
		medical.RegisterRoutes(r, medicalHandler)
		triage.RegisterRoutes(r, triageHandler)
		report.RegisterRoutes(r, reportHandler)
	})

	log.Info("Server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

func connectDB(connStr string, log *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			log.Info("Connected to database")
			return db, nil
		}
		log.Info("Waiting for database", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	return nil, err
}

func runMigrations(connStr string, log *zap.Logger) {
	m, err := migrate.New("file://migrations", connStr)
	if err != nil {
		log.Warn("Migration init failed", zap.Error(err))
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Warn("Migration up failed", zap.Error(err))
		return
	}
	log.Info("Migrations applied")
}
