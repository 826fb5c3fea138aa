package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"shop-service/internal/entity"
	"shop-service/internal/repository"
)

type JwtCustomClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues, verifies and refreshes signed tokens.
type AuthService struct {
	users  repository.UserRepository
	tokens TokenStore
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users repository.UserRepository, tokens TokenStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// ObtainToken checks the credentials and returns a signed token for the user.
func (s *AuthService) ObtainToken(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: bad credentials", ErrUnauthorized)
		}
		logger.Error().Err(err).Msgf("Error getting user %q", username)
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}

	return s.issue(ctx, user)
}

// VerifyToken validates signature and expiry and checks the token against the
// stored one for its username, so a revoked or superseded token is rejected
// even before its expiry. Returns the claims.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*JwtCustomClaims, error) {
	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	stored, err := s.tokens.Get(ctx, claims.Username)
	if err != nil {
		logger.Error().Err(err).Msgf("Error loading stored token for user %q", claims.Username)
		return nil, err
	}
	if stored != tokenString {
		return nil, fmt.Errorf("%w: token revoked", ErrUnauthorized)
	}

	return claims, nil
}

// RefreshToken exchanges a still-valid token for a new one with a fresh
// expiry.
func (s *AuthService) RefreshToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.VerifyToken(ctx, tokenString)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}
		return "", err
	}

	return s.issue(ctx, user)
}

func (s *AuthService) issue(ctx context.Context, user *entity.User) (string, error) {
	claims := &JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tkn.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	if err := s.tokens.Save(ctx, user.Username, signed, s.ttl); err != nil {
		logger.Error().Err(err).Msgf("Error storing token for user %q", user.Username)
		return "", err
	}

	return signed, nil
}
