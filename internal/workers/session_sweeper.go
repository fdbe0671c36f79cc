// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

const defaultSweepInterval = 10 * time.Minute

// expiredSessionDeleter is the part of store.SessionStorage the sweeper needs.
type expiredSessionDeleter interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// SessionSweeper periodically removes expired sessions from storages that do
// not expire them by themselves.
type SessionSweeper struct {
	sessions expiredSessionDeleter
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewSessionSweeper(sessions expiredSessionDeleter, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *SessionSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	removed, err := s.sessions.DeleteExpiredSessions(ctx, s.now().UTC())
	if err != nil {
		s.logger.Err(err).Str("func", "*SessionSweeper.sweep").Msg("error deleting expired sessions")
		return
	}

	if removed > 0 {
		s.logger.Debug().Int64("removed", removed).Msg("expired sessions deleted")
	}
}
