package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/competitions/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/competitions/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/observability/attr"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultTokenTTL applies when neither the request nor the config set a lifetime.
const DefaultTokenTTL = 24 * time.Hour

// service implements the Service interface.
type service struct {
	repo        userdb.Repository
	jwtProvider authjwt.Provider
	defaultTTL  time.Duration
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	repo userdb.Repository,
	defaultTTL time.Duration,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("auth")
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	return &service{
		repo:        repo,
		jwtProvider: jwtProvider,
		defaultTTL:  defaultTTL,
		logger:      logger,
		tracer:      tracer,
	}
}

// IssueToken signs a token for an existing user.
func (s *service) IssueToken(ctx context.Context, req IssueTokenRequest) (*IssueTokenResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.IssueToken")
	defer span.End()

	if !req.Capability.IsValid() {
		s.logger.WarnContext(ctx, "Invalid capability specified", attr.String("capability", req.Capability.String()))
		return nil, ErrInvalidCapability
	}

	user, err := s.repo.GetByID(ctx, nil, req.UserID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	ttl := req.TTL
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	identity := authdomain.Identity{UserID: user.ID, Name: user.Name, Capability: req.Capability}
	token, err := s.jwtProvider.GenerateToken(&identity, ttl)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "Token issued",
		attr.Int64("user_id", user.ID),
		attr.String("capability", req.Capability.String()),
	)

	return &IssueTokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
		Identity:  identity,
	}, nil
}

// Authenticate validates a token and returns the caller identity.
func (s *service) Authenticate(ctx context.Context, tokenString string) (*authdomain.Identity, error) {
	_, span := s.tracer.Start(ctx, "AuthService.Authenticate")
	defer span.End()

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	identity, err := s.jwtProvider.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return identity, nil
}
