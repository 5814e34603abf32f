package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"rpsboard/internal/models"
)

const (
	DriverFirestore = "firestore"
	DriverPostgres  = "postgres"
)

var ErrRankingNotFound = errors.New("ranking not found")

// EventLog reads the game and coin event streams.
type EventLog interface {
	// FindByStudentPrefix returns the events whose studentIdOnly starts with
	// prefix, ordered by studentIdOnly then time descending.
	FindByStudentPrefix(ctx context.Context, stream models.Stream, prefix string) ([]models.Event, error)
	// FindBetween returns the events with from <= time < to, unordered.
	FindBetween(ctx context.Context, stream models.Stream, from, to time.Time) ([]models.Event, error)
}

// RankingStore remembers the latest ranking per conversation scope.
type RankingStore interface {
	Save(ctx context.Context, scope string, ranking *models.Ranking) error
	Load(ctx context.Context, scope string) (*models.Ranking, error)
	Delete(ctx context.Context, scope string) error
}

type Config struct {
	Driver string `env:"STORE_DRIVER" envDefault:"firestore"`

	FirestoreProjectID string `env:"FIRESTORE_PROJECT_ID"`
	CredentialsFile    string `env:"GOOGLE_CREDENTIALS_FILE"`

	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT"`
	Username string `env:"DB_USERNAME"`
	Password string `env:"DB_PASSWORD"`
	DBName   string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	Redis RedisConfig `envPrefix:"REDIS_"`
}

type Repository struct {
	EventLog
	Rankings RankingStore
	closers  []func() error
}

func NewRepository(ctx context.Context, cfg *Config, migrationFS fs.FS) (*Repository, error) {
	repo := &Repository{}

	switch cfg.Driver {
	case DriverFirestore:
		store, err := NewFirestoreEventLog(ctx, cfg.FirestoreProjectID, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		repo.EventLog = store
		repo.closers = append(repo.closers, store.Close)
	case DriverPostgres:
		db, err := NewPostgresDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}
		if err := RunMigrations(db, migrationFS); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		repo.EventLog = NewEventPostgres(db)
		repo.closers = append(repo.closers, db.Close)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if cfg.Redis.Addr != "" {
		rs, err := NewRedisRankingStore(ctx, cfg.Redis)
		if err != nil {
			repo.Close()
			return nil, err
		}
		repo.Rankings = rs
		repo.closers = append(repo.closers, rs.Close)
	} else {
		repo.Rankings = NewRankingCache()
	}

	return repo, nil
}

func (r *Repository) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

func NewPostgresDB(cfg *Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.DBName, cfg.Password, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
