package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// sessionRepository keeps sessions in the "sessions" table. Expired rows
// stay in the table until [sessionRepository.DeleteExpiredSessions] runs but
// are never returned by GetSession.
type sessionRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionStorage {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (s *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveSessionQuery(s.builder, session)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.SaveSession").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.SaveSession").
			Int64("user_id", session.UserID).
			Msg("failed to insert session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionRepository) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetSessionQuery(s.builder, sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.GetSession").Msg("failed to create query")
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var session models.Session
	err = s.QueryRowContext(ctx, query, args...).Scan(
		&session.SessionID,
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).Str("func", "*sessionRepository.GetSession").Msg("failed to scan session row")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if session.IsExpired(s.now()) {
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

func (s *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSessionQuery(s.builder, sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredSessionsQuery(s.builder, now.UTC())
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("failed to delete expired sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRowsAffected, err)
	}

	return deleted, nil
}
