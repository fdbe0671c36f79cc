package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

// Storages aggregates every repository the services depend on together with
// the connections behind them.
type Storages struct {
	UserRepository UserRepository
	TodoRepository TodoRepository
	SessionStorage SessionStorage

	db    *DB
	redis *redis.Client
}

// NewStorages connects to the configured database, applies migrations, and
// builds the repositories. Sessions go to Redis when
// cfg.Sessions.RedisURL is set and to the SQL "sessions" table otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	storages := NewStoragesFromDB(db, log)

	if cfg.Sessions.RedisURL != "" {
		client, err := newRedisClient(ctx, cfg.Sessions.RedisURL)
		if err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("error connecting to redis")
			_ = db.Close()
			return nil, err
		}
		storages.redis = client
		storages.SessionStorage = NewRedisSessionStorage(client, log)
	}

	return storages, nil
}

// NewStoragesFromDB builds SQL-backed repositories on an already migrated db.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
		TodoRepository: NewTodoRepository(db, log),
		SessionStorage: NewSessionRepository(db, log),
		db:             db,
	}
}

func newRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error pinging redis: %w", err)
	}

	return client, nil
}

// SessionsInDB reports whether sessions live in the SQL database and thus
// need periodic cleanup.
func (s *Storages) SessionsInDB() bool {
	return s.redis == nil
}

// Ping checks every backing connection.
func (s *Storages) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}

	return nil
}

// Close releases every backing connection.
func (s *Storages) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	errs = append(errs, s.db.Close())

	return errors.Join(errs...)
}
