package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"garage-api/internal/domain"
	"garage-api/internal/repository"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.AdministratorSummary
}

// AuthService verifies administrator credentials and session tokens.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*Session, error)
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

type authService struct {
	admins    repository.AdministratorRepository
	hasher    PasswordHasher
	tokens    *TokenIssuer
	logger    logrus.FieldLogger
	dummyHash string
}

func NewAuthService(admins repository.AdministratorRepository, hasher PasswordHasher, tokens *TokenIssuer, logger logrus.FieldLogger) (AuthService, error) {
	// unknown emails are checked against this hash so both failure paths
	// cost one verification
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &authService{
		admins:    admins,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummyHash,
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("lookup administrator: %w", err)
		}
		s.hasher.Verify(password, s.dummyHash)
		s.logger.WithField("email", email).Warn("login rejected")
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, admin.PasswordHash) {
		s.logger.WithField("email", email).Warn("login rejected")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(admin)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"administrator_id": admin.ID,
		"role":             admin.Role,
	}).Info("session issued")

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      admin.Summary(),
	}, nil
}

func (s *authService) VerifyToken(_ context.Context, token string) (*Claims, error) {
	return s.tokens.Parse(token)
}
