package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sixlab/storefront/internal/discord"
	"github.com/sixlab/storefront/internal/entities"
)

type MemberLookup interface {
	GuildMember(ctx context.Context, userID string) (discord.Member, bool, error)
}

type membershipService struct {
	logger  *slog.Logger
	gateway MemberLookup
}

func NewMembershipService(logger *slog.Logger, gateway MemberLookup) *membershipService {
	return &membershipService{
		logger:  logger.With(slog.String("service", "membership")),
		gateway: gateway,
	}
}

// Check resolves the tri-state gate from a fresh round trip. The result
// is deliberately never cached: it must reflect a rules acceptance the
// user just performed inside Discord.
func (s *membershipService) Check(ctx context.Context, userID string) (entities.Membership, error) {
	member, found, err := s.gateway.GuildMember(ctx, userID)
	if err != nil {
		return entities.Membership{}, fmt.Errorf("%w: %w", entities.ErrUpstreamFailed, err)
	}
	if !found {
		return entities.NewMembership(false, false), nil
	}
	return entities.NewMembership(true, member.Pending), nil
}
