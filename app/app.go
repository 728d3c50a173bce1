package app

import (
	"context"
	"os"

	"car_rental_manager/db"
	"car_rental_manager/logger"
	"car_rental_manager/viewmodel"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// App aggregates the explicitly owned dependencies: the store handle, the
// gateway over it, and the view model the front end drives. Nothing here
// is global; the handle is torn down through Close.
type App struct {
	Conn   *gorm.DB
	Repo   *db.Repo
	VM     *viewmodel.MainViewModel
	Log    logger.Logger
	Config Config
}

// Config is read from the environment (.env honored when present).
type Config struct {
	DatabasePath string
	LogBackend   string
	LogLevel     string
	LogFormat    string
	SeedOnEmpty  bool
}

func MustNew() *App {
	cfg := loadConfig()
	log := logger.New(cfg.LogBackend, cfg.LogLevel, cfg.LogFormat)

	conn, err := db.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("connect store: %v", err)
	}

	repo := db.NewRepo(conn)
	if cfg.SeedOnEmpty {
		if err := repo.Seed(context.Background()); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	return &App{
		Conn:   conn,
		Repo:   repo,
		VM:     viewmodel.NewMainViewModel(repo, log),
		Log:    log,
		Config: cfg,
	}
}

func (a *App) Close() { _ = db.Close(a.Conn) }

func loadConfig() Config {
	_ = godotenv.Load()

	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}

	return Config{
		DatabasePath: get("CAR_RENTAL_DB", ":memory:"),
		LogBackend:   get("LOG_BACKEND", "zap"),
		LogLevel:     get("LOG_LEVEL", "info"),
		LogFormat:    get("LOG_FORMAT", "console"),
		SeedOnEmpty:  get("SEED_ON_EMPTY", "true") == "true",
	}
}
