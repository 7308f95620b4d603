package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	"github.com/streetcare/pointpay/internal/domain/port/core"
)

const tokenIssuer = "pointpay-api"

// JWTManager implements the TokenManager port with HS256-signed tokens
type JWTManager struct {
	secret       []byte
	expiry       time.Duration
	timeProvider core.TimeProvider
}

// NewJWTManager creates a token manager. A non-positive expiry falls back to
// 24 hours.
func NewJWTManager(secret string, expiry time.Duration, timeProvider core.TimeProvider) *JWTManager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &JWTManager{
		secret:       []byte(secret),
		expiry:       expiry,
		timeProvider: timeProvider,
	}
}

// Issue signs an access token for the user and returns it with its expiry
func (m *JWTManager) Issue(user *entity.User) (string, time.Time, error) {
	now := m.timeProvider.Now()
	expiresAt := now.Add(m.expiry)

	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"unm": user.Username,
		"rol": string(user.Role),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"iss": tokenIssuer,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify parses a token string and returns its claims. Any parse or
// validation failure maps to ErrInvalidCredentials.
func (m *JWTManager) Verify(tokenString string) (*core.AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errs.ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errs.ErrInvalidCredentials
	}
	username, _ := claims["unm"].(string)
	role, _ := claims["rol"].(string)

	return &core.AuthClaims{
		UserID:   userID,
		Username: username,
		Role:     entity.Role(role),
	}, nil
}
