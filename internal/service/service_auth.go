package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// idGenerator produces session identifiers.
type idGenerator interface {
	Generate() string
}

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the login
// session lifecycle using a UserRepository and a SessionStorage for
// persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionStorage keeps the server-side half of every login session.
	sessionStorage store.SessionStorage

	// validator checks username and password presence.
	validator validators.Validator

	// idGenerator produces session ids (UUIDv7).
	idGenerator idGenerator

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// sessionDuration controls how long a new session remains valid.
	sessionDuration time.Duration

	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with session parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, sessionStorage store.SessionStorage, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		sessionStorage:  sessionStorage,
		validator:       validators.NewUserValidator(),
		idGenerator:     utils.NewUUIDGenerator(),
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		sessionDuration: cfg.SessionDuration,
		bcryptCost:      bcrypt.DefaultCost,
		now:             time.Now,
		logger:          logger,
	}
}

// Register creates a new user account.
//
// The password confirmation is compared before anything is stored, then the
// password is hashed with bcrypt and the user persisted.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if the username or password is empty or malformed.
//   - ErrPasswordMismatch if the two passwords differ.
//   - a wrapped store.ErrUsernameTaken if the username already exists.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Str("username", request.Username).Msg("invalid signup data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if request.Password != request.PasswordConfirmation {
		log.Debug().Str("username", request.Username).Msg("passwords do not match")
		return models.User{}, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.User{}, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     request.Username,
		PasswordHash: string(hash),
		CreatedAt:    a.now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", request.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
// Any other repository failure is returned wrapped.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Debug().Err(err).Msg("invalid login data provided")
		return models.User{}, ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Str("username", credentials.Username).Msg("login for unknown username")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("func", "*authService.Login").Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(credentials.Password)); err != nil {
		log.Debug().
			Int64("id", foundUser.UserID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// StartSession opens a new session for user and returns the signed token
// that identifies it.
//
// The token expires together with the session: "exp" equals the session's
// ExpiresAt, "jti" carries the session id and "sub" the user id.
func (a *authService) StartSession(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	if user.UserID <= 0 {
		return models.Token{}, fmt.Errorf("%w: user has no id", ErrSessionCreationFailed)
	}

	now := a.now().UTC()
	session := models.Session{
		SessionID: a.idGenerator.Generate(),
		UserID:    user.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionDuration),
	}

	token, err := utils.GenerateSessionToken(a.tokenIssuer, session, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*authService.StartSession").Msg("error generating session token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	if err = a.sessionStorage.SaveSession(ctx, session); err != nil {
		log.Err(err).Str("func", "*authService.StartSession").Int64("user_id", user.UserID).Msg("error saving session")
		return models.Token{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	return token, nil
}

// ParseSession validates a raw session token and confirms that its session
// is still alive.
//
// Signature, issuer and expiry are checked first, then the session is looked
// up and its owner compared with the token subject. Every failure is
// reported as ErrSessionIsExpiredOrInvalid so that callers treat it as
// "not logged in".
func (a *authService) ParseSession(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("session token rejected")
		return models.Token{}, ErrSessionIsExpiredOrInvalid
	}

	session, err := a.sessionStorage.GetSession(ctx, token.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Token{}, ErrSessionIsExpiredOrInvalid
		}

		log.Err(err).Str("func", "*authService.ParseSession").Msg("error reading session")
		return models.Token{}, fmt.Errorf("%w: %w", ErrSessionIsExpiredOrInvalid, err)
	}

	if session.UserID != token.UserID {
		log.Warn().
			Int64("token_user_id", token.UserID).
			Int64("session_user_id", session.UserID).
			Msg("session owner does not match token subject")
		return models.Token{}, ErrSessionIsExpiredOrInvalid
	}

	return token, nil
}

// EndSession removes the session. An empty or unknown id is not an error.
func (a *authService) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := a.sessionStorage.DeleteSession(ctx, sessionID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.EndSession").Msg("error deleting session")
		return fmt.Errorf("error ending session: %w", err)
	}

	return nil
}
