package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sixlab/storefront/internal/discord"
)

// Distinct failure modes so the callback can redirect with the right
// query-string flag.
var (
	ErrTokenExchange = errors.New("token exchange failed")
	ErrProfileFetch  = errors.New("profile fetch failed")
)

type OAuthGateway interface {
	AuthorizeURL() string
	ExchangeCode(ctx context.Context, code string) (discord.Token, error)
	Identity(ctx context.Context, token discord.Token) (discord.User, error)
}

type authService struct {
	logger  *slog.Logger
	gateway OAuthGateway
}

func NewAuthService(logger *slog.Logger, gateway OAuthGateway) *authService {
	return &authService{
		logger:  logger.With(slog.String("service", "auth")),
		gateway: gateway,
	}
}

func (s *authService) LoginURL() string {
	return s.gateway.AuthorizeURL()
}

// Authenticate exchanges the OAuth code and fetches the Discord profile.
func (s *authService) Authenticate(ctx context.Context, code string) (discord.User, error) {
	token, err := s.gateway.ExchangeCode(ctx, code)
	if err != nil {
		return discord.User{}, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}

	user, err := s.gateway.Identity(ctx, token)
	if err != nil {
		return discord.User{}, fmt.Errorf("%w: %w", ErrProfileFetch, err)
	}

	s.logger.DebugContext(ctx, "user authenticated", slog.String("user_id", user.ID))
	return user, nil
}
