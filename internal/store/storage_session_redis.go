// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

const sessionKeyPrefix = "session:"

// redisSessionStorage keeps every session as a JSON value under
// "session:<id>" with a TTL equal to its remaining lifetime, so Redis drops
// expired sessions itself.
type redisSessionStorage struct {
	client redis.UniversalClient
	logger *logger.Logger
	now    func() time.Time
}

// NewRedisSessionStorage constructs a [SessionStorage] on top of client.
func NewRedisSessionStorage(client redis.UniversalClient, logger *logger.Logger) SessionStorage {
	logger.Debug().Msg("creating redis session storage")
	return &redisSessionStorage{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (r *redisSessionStorage) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("%w: session already expired", ErrEncodingSession)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		log.Err(err).Str("func", "*redisSessionStorage.SaveSession").Msg("failed to marshal session")
		return fmt.Errorf("%w: %w", ErrEncodingSession, err)
	}

	if err = r.client.Set(ctx, sessionKey(session.SessionID), payload, ttl).Err(); err != nil {
		log.Err(err).
			Str("func", "*redisSessionStorage.SaveSession").
			Int64("user_id", session.UserID).
			Msg("failed to store session")
		return fmt.Errorf("%w: %w", ErrSessionStorage, err)
	}

	return nil
}

func (r *redisSessionStorage) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	payload, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).Str("func", "*redisSessionStorage.GetSession").Msg("failed to read session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionStorage, err)
	}

	var session models.Session
	if err = json.Unmarshal(payload, &session); err != nil {
		log.Err(err).Str("func", "*redisSessionStorage.GetSession").Msg("failed to unmarshal session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrEncodingSession, err)
	}

	// TTL granularity can leave a key alive for a moment past ExpiresAt
	if session.IsExpired(r.now()) {
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

func (r *redisSessionStorage) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStorage.DeleteSession").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrSessionStorage, err)
	}

	return nil
}

// DeleteExpiredSessions is a no-op: Redis evicts expired keys by TTL.
func (r *redisSessionStorage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
