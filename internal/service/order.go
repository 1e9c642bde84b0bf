package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sixlab/storefront/internal/config"
	"github.com/sixlab/storefront/internal/discord"
	"github.com/sixlab/storefront/internal/entities"
	"github.com/sixlab/storefront/internal/orderid"
)

const closingMessage = "✅ This order is closed. Thank you for shopping with 6IXLAB."

type OrderGateway interface {
	CreateOrderChannel(ctx context.Context, name, topic string, overwrites []discord.Overwrite) (discord.Channel, error)
	PostMessage(ctx context.Context, channelID, content string, embeds ...discord.Embed) error
	CreateInvite(ctx context.Context, channelID string) (string, error)
	SendDM(ctx context.Context, userID, content string) error
	RenameChannel(ctx context.Context, channelID, name string) error
	ReplaceOverwrites(ctx context.Context, channelID string, overwrites []discord.Overwrite) error
	DeleteChannel(ctx context.Context, channelID string) error
	ChannelURL(channelID string) string
}

type EventPublisher interface {
	OrderCreated(ctx context.Context, receipt entities.OrderReceipt, itemCount int) error
}

type orderService struct {
	logger  *slog.Logger
	gateway OrderGateway
	ids     orderid.Generator
	events  EventPublisher

	guildID     string
	staffRoleID string
}

// NewOrderService wires order intake and lifecycle. events may be nil
// when no brokers are configured; the publish step is then skipped.
func NewOrderService(logger *slog.Logger, gateway OrderGateway, ids orderid.Generator, events EventPublisher, cfg config.Discord) *orderService {
	return &orderService{
		logger:      logger.With(slog.String("service", "order")),
		gateway:     gateway,
		ids:         ids,
		events:      events,
		guildID:     cfg.GuildID,
		staffRoleID: cfg.StaffRoleID,
	}
}

// PlaceOrder runs the intake pipeline. Channel creation is the anchor
// resource and the only fatal step; everything after it is a side effect
// whose failure lands in the receipt diagnostics.
func (s *orderService) PlaceOrder(ctx context.Context, sub entities.OrderSubmission) (entities.OrderReceipt, error) {
	orderID := sub.OrderID
	if orderID == "" {
		var err error
		if orderID, err = s.ids.Next(ctx); err != nil {
			return entities.OrderReceipt{}, fmt.Errorf("generate order id: %w", err)
		}
	}

	overwrites := discord.OrderOverwrites(s.guildID, s.staffRoleID, sub.Customer.DiscordUserID)
	channel, err := s.gateway.CreateOrderChannel(ctx,
		NormalizeChannelName("order-"+orderID),
		channelTopic(orderID, sub.Customer),
		overwrites,
	)
	if err != nil {
		return entities.OrderReceipt{}, fmt.Errorf("%w: %w", entities.ErrChannelCreateFailed, err)
	}

	receipt := entities.OrderReceipt{
		OrderID:   orderID,
		ChannelID: channel.ID,
		Total:     sub.Total(),
	}

	links := ExtractLinks(sub.Customer.Brief, maxBriefLinks)
	embed := s.summaryEmbed(orderID, sub, receipt.Total, links)

	for _, effect := range s.postCreationEffects(sub, &receipt, embed) {
		if err := effect.run(ctx); err != nil {
			receipt.Diagnostics = append(receipt.Diagnostics, entities.Diagnostic{Step: effect.name, Err: err})
			sideEffectFailures.WithLabelValues(effect.name).Inc()
			s.logger.WarnContext(ctx, "order side effect failed",
				slog.String("step", effect.name),
				slog.String("order_id", orderID),
				slog.Any("error", err),
			)
		}
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", orderID),
		slog.String("channel_id", channel.ID),
		slog.Int("total", receipt.Total),
		slog.Int("failed_steps", len(receipt.Diagnostics)),
	)
	return receipt, nil
}

type sideEffect struct {
	name string
	run  func(ctx context.Context) error
}

// postCreationEffects is the ordered list of best-effort steps after the
// channel exists. Each runs sequentially; none aborts the order.
func (s *orderService) postCreationEffects(sub entities.OrderSubmission, receipt *entities.OrderReceipt, embed discord.Embed) []sideEffect {
	effects := []sideEffect{
		{
			name: "post_summary",
			run: func(ctx context.Context) error {
				content := fmt.Sprintf("🛒 **Order #%s**", receipt.OrderID)
				return s.gateway.PostMessage(ctx, receipt.ChannelID, content, embed)
			},
		},
		{
			name: "create_invite",
			run: func(ctx context.Context) error {
				inviteURL, err := s.gateway.CreateInvite(ctx, receipt.ChannelID)
				if err != nil {
					return err
				}
				receipt.InviteURL = inviteURL
				return nil
			},
		},
	}

	if sub.Customer.DiscordUserID != "" {
		effects = append(effects, sideEffect{
			name: "dm_customer",
			run: func(ctx context.Context) error {
				content := "We opened a channel for your order: " + s.gateway.ChannelURL(receipt.ChannelID)
				return s.gateway.SendDM(ctx, sub.Customer.DiscordUserID, content)
			},
		})
	}

	if s.events != nil {
		effects = append(effects, sideEffect{
			name: "publish_event",
			run: func(ctx context.Context) error {
				return s.events.OrderCreated(ctx, *receipt, len(sub.Items))
			},
		})
	}

	return effects
}

// CloseOrder soft-closes a channel: the rename is the close marker and
// is non-fatal, the closing message failure is ignored entirely.
func (s *orderService) CloseOrder(ctx context.Context, channelID string) error {
	name := fmt.Sprintf("closed-%d", time.Now().Unix())
	if err := s.gateway.RenameChannel(ctx, channelID, name); err != nil {
		s.logger.WarnContext(ctx, "close rename failed",
			slog.String("channel_id", channelID), slog.Any("error", err))
	}

	if err := s.gateway.PostMessage(ctx, channelID, closingMessage); err != nil {
		s.logger.WarnContext(ctx, "closing message failed",
			slog.String("channel_id", channelID), slog.Any("error", err))
	}
	return nil
}

func (s *orderService) DeleteOrder(ctx context.Context, channelID string) error {
	if err := s.gateway.DeleteChannel(ctx, channelID); err != nil {
		return fmt.Errorf("%w: %w", entities.ErrUpstreamFailed, err)
	}
	return nil
}

// GrantAccess re-applies the full overwrite list for a channel/customer
// pair. Safe to repeat: the gateway replaces overwrites, never appends.
func (s *orderService) GrantAccess(ctx context.Context, channelID, customerID string) error {
	overwrites := discord.OrderOverwrites(s.guildID, s.staffRoleID, customerID)
	if err := s.gateway.ReplaceOverwrites(ctx, channelID, overwrites); err != nil {
		return fmt.Errorf("%w: %w", entities.ErrUpstreamFailed, err)
	}
	return nil
}
