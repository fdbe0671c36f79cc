package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-todo-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT token for the given
// login session.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the session owner's user ID encoded as a string
//   - ID        (jti): the session ID
//   - IssuedAt  (iat): the session creation time
//   - ExpiresAt (exp): the session expiry time
//
// Returns an error if issuer, signKey or the session ID is empty, or if the
// session has no positive lifetime.
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken("go-todo-keeper", session, "secret")
func GenerateSessionToken(issuer string, session models.Session, signKey string) (models.Token, error) {
	if issuer == "" || signKey == "" || session.SessionID == "" || !session.ExpiresAt.After(session.CreatedAt) {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(session.UserID, 10),
		ID:        session.SessionID,
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing session token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: *claims,
		SignedString:     tokenString,
		UserID:           session.UserID,
		SessionID:        session.SessionID,
	}, nil
}

// ValidateAndParseSessionToken validates the given JWT token string and
// extracts its claims.
//
// Validation includes:
//   - Signature verification (HS256 only) using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) claim presence and conversion to int64 UserID
//   - Session ID (jti) claim presence
//
// The returned token is not checked against the session storage; that is
// the caller's job.
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	claims, ok := token.Claims.(*models.Token)
	if !ok {
		return models.Token{}, errors.New("unexpected claims type")
	}

	userID, err := claims.GetUserID()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}

	if claims.ID == "" {
		return models.Token{}, errors.New("empty session id error")
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims.RegisteredClaims,
		SignedString:     tokenString,
		UserID:           userID,
		SessionID:        claims.ID,
	}, nil
}
