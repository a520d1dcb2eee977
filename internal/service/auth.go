package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an account
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login fails
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidToken is returned when a bearer token cannot be validated
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrInactiveAccount is returned when a token resolves to a disabled account
	ErrInactiveAccount = errors.New("inactive user")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// AuthConfig holds token signing settings
type AuthConfig struct {
	Secret    string
	Algorithm string
	TokenTTL  time.Duration
}

// Registration carries the fields needed to open an account
type Registration struct {
	Email    string
	Password string
	FullName string
	Role     models.Role
	Phone    *string
}

// Token is an issued bearer credential
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Register stores a new account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, reg Registration) (*models.User, error) {
	email := strings.TrimSpace(reg.Email)
	if len(reg.Password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	_, err := s.Users.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to lookup user %q: %w", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.Users.Create(ctx, &models.User{
		Email:          email,
		HashedPassword: string(hash),
		FullName:       strings.TrimSpace(reg.FullName),
		Role:           reg.Role,
		Phone:          reg.Phone,
		IsActive:       true,
	})
	if err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Infof("Registered new account: %s (%s)", user.Email, user.Role)
	return user, nil
}

// Login checks the password against the stored hash and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.IssueToken(user.Email)
}

// IssueToken signs a token whose subject is the account email.
func (s *Service) IssueToken(email string) (*Token, error) {
	method := jwt.GetSigningMethod(s.auth.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm %q", s.auth.Algorithm)
	}

	now := s.now()
	expiresAt := now.Add(s.auth.TokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(s.auth.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to an active account.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return []byte(s.auth.Secret), nil
		},
		jwt.WithValidMethods([]string{s.auth.Algorithm}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.Users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	return user, nil
}
