package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sixlab/storefront/internal/config"
	"github.com/sixlab/storefront/internal/discord"
	"github.com/sixlab/storefront/internal/entities"
	"github.com/sixlab/storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	channel   discord.Channel
	inviteURL string

	createErr error
	postErr   error
	inviteErr error
	dmErr     error
	renameErr error
	patchErr  error
	deleteErr error

	createdName  string
	createdTopic string
	overwrites   []discord.Overwrite
	posted       []string
	dmContent    string
	renamedTo    string
}

func (g *stubGateway) CreateOrderChannel(_ context.Context, name, topic string, overwrites []discord.Overwrite) (discord.Channel, error) {
	g.createdName = name
	g.createdTopic = topic
	g.overwrites = overwrites
	if g.createErr != nil {
		return discord.Channel{}, g.createErr
	}
	return g.channel, nil
}

func (g *stubGateway) PostMessage(_ context.Context, _ string, content string, _ ...discord.Embed) error {
	g.posted = append(g.posted, content)
	return g.postErr
}

func (g *stubGateway) CreateInvite(_ context.Context, _ string) (string, error) {
	if g.inviteErr != nil {
		return "", g.inviteErr
	}
	return g.inviteURL, nil
}

func (g *stubGateway) SendDM(_ context.Context, _ string, content string) error {
	g.dmContent = content
	return g.dmErr
}

func (g *stubGateway) RenameChannel(_ context.Context, _ string, name string) error {
	g.renamedTo = name
	return g.renameErr
}

func (g *stubGateway) ReplaceOverwrites(_ context.Context, _ string, overwrites []discord.Overwrite) error {
	g.overwrites = overwrites
	return g.patchErr
}

func (g *stubGateway) DeleteChannel(_ context.Context, _ string) error {
	return g.deleteErr
}

func (g *stubGateway) ChannelURL(channelID string) string {
	return "https://discord.com/channels/1000000000000000001/" + channelID
}

type stubIDs struct {
	id  string
	err error
}

func (s stubIDs) Next(context.Context) (string, error) {
	return s.id, s.err
}

type stubPublisher struct {
	published bool
	err       error
}

func (p *stubPublisher) OrderCreated(context.Context, entities.OrderReceipt, int) error {
	p.published = true
	return p.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var discordConf = config.Discord{
	GuildID:     "1000000000000000001",
	StaffRoleID: "1000000000000000002",
}

func TestOrderService_PlaceOrder(t *testing.T) {
	submission := entities.OrderSubmission{
		Items: []entities.CartItem{
			{ID: "item-01", Name: "Classic Tee", Qty: 2, Price: 450},
			{ID: "item-04", Name: "Wool Coat", Qty: 1, Price: 3450},
		},
		Customer: entities.Customer{
			Brief:         "Two tees and a coat, size M",
			Name:          "Dana",
			Contact:       "dana@example.com",
			DiscordUserID: "200000000000000001",
		},
	}

	testCases := []struct {
		name         string
		sub          entities.OrderSubmission
		gateway      *stubGateway
		ids          stubIDs
		wantErr      error
		wantInvite   string
		failedSteps  []string
		checkGateway func(t *testing.T, g *stubGateway)
	}{
		{
			name: "success with all side effects",
			sub:  submission,
			gateway: &stubGateway{
				channel:   discord.Channel{ID: "300000000000000001"},
				inviteURL: "https://discord.gg/abc",
			},
			ids:        stubIDs{id: "ORD-202608-000042"},
			wantInvite: "https://discord.gg/abc",
			checkGateway: func(t *testing.T, g *stubGateway) {
				assert.Equal(t, "order-ord-202608-000042", g.createdName)
				assert.Contains(t, g.createdTopic, "ORD-202608-000042")
				assert.Len(t, g.overwrites, 3)
				assert.Contains(t, g.dmContent, "300000000000000001")
			},
		},
		{
			name:    "channel creation is fatal",
			sub:     submission,
			gateway: &stubGateway{createErr: errors.New("403 missing permissions")},
			ids:     stubIDs{id: "ORD-202608-000043"},
			wantErr: entities.ErrChannelCreateFailed,
		},
		{
			name: "invite failure lands in diagnostics",
			sub:  submission,
			gateway: &stubGateway{
				channel:   discord.Channel{ID: "300000000000000002"},
				inviteErr: errors.New("rate limited"),
			},
			ids:         stubIDs{id: "ORD-202608-000044"},
			failedSteps: []string{"create_invite"},
		},
		{
			name: "dm failure lands in diagnostics",
			sub:  submission,
			gateway: &stubGateway{
				channel:   discord.Channel{ID: "300000000000000003"},
				inviteURL: "https://discord.gg/abc",
				dmErr:     errors.New("cannot send messages to this user"),
			},
			ids:         stubIDs{id: "ORD-202608-000045"},
			wantInvite:  "https://discord.gg/abc",
			failedSteps: []string{"dm_customer"},
		},
		{
			name:    "id generation failure is fatal",
			sub:     submission,
			gateway: &stubGateway{channel: discord.Channel{ID: "300000000000000004"}},
			ids:     stubIDs{err: errors.New("redis down")},
			wantErr: errors.New("redis down"),
		},
		{
			name: "no dm without a discord user",
			sub: entities.OrderSubmission{
				Items:    submission.Items,
				Customer: entities.Customer{Brief: "Anonymous order"},
			},
			gateway: &stubGateway{
				channel:   discord.Channel{ID: "300000000000000005"},
				inviteURL: "https://discord.gg/abc",
			},
			ids:        stubIDs{id: "ORD-202608-000046"},
			wantInvite: "https://discord.gg/abc",
			checkGateway: func(t *testing.T, g *stubGateway) {
				assert.Empty(t, g.dmContent)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			events := &stubPublisher{}
			svc := service.NewOrderService(testLogger(), tc.gateway, tc.ids, events, discordConf)

			receipt, err := svc.PlaceOrder(context.Background(), tc.sub)

			if tc.wantErr != nil {
				if errors.Is(tc.wantErr, entities.ErrChannelCreateFailed) {
					assert.ErrorIs(t, err, entities.ErrChannelCreateFailed)
				} else {
					assert.ErrorContains(t, err, tc.wantErr.Error())
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.ids.id, receipt.OrderID)
			assert.Equal(t, tc.gateway.channel.ID, receipt.ChannelID)
			assert.Equal(t, tc.sub.Total(), receipt.Total)
			assert.Equal(t, tc.wantInvite, receipt.InviteURL)
			assert.True(t, events.published)

			var steps []string
			for _, d := range receipt.Diagnostics {
				steps = append(steps, d.Step)
			}
			assert.Equal(t, tc.failedSteps, steps)

			if tc.checkGateway != nil {
				tc.checkGateway(t, tc.gateway)
			}
		})
	}
}

func TestOrderService_PlaceOrder_KeepsProvidedID(t *testing.T) {
	gateway := &stubGateway{channel: discord.Channel{ID: "300000000000000009"}}
	svc := service.NewOrderService(testLogger(), gateway, stubIDs{err: errors.New("must not be called")}, nil, discordConf)

	receipt, err := svc.PlaceOrder(context.Background(), entities.OrderSubmission{
		OrderID:  "ORD-202608-000777",
		Items:    []entities.CartItem{{ID: "item-01", Name: "Classic Tee", Qty: 1, Price: 450}},
		Customer: entities.Customer{Brief: "One tee"},
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-202608-000777", receipt.OrderID)
	assert.True(t, strings.HasPrefix(gateway.createdName, "order-ord-202608-000777"))
}

func TestOrderService_CloseOrder(t *testing.T) {
	t.Run("rename failure is swallowed", func(t *testing.T) {
		gateway := &stubGateway{renameErr: errors.New("404 unknown channel")}
		svc := service.NewOrderService(testLogger(), gateway, stubIDs{}, nil, discordConf)

		err := svc.CloseOrder(context.Background(), "300000000000000001")
		assert.NoError(t, err)
	})

	t.Run("renames with a closed marker and posts", func(t *testing.T) {
		gateway := &stubGateway{}
		svc := service.NewOrderService(testLogger(), gateway, stubIDs{}, nil, discordConf)

		err := svc.CloseOrder(context.Background(), "300000000000000001")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(gateway.renamedTo, "closed-"))
		require.Len(t, gateway.posted, 1)
		assert.Contains(t, gateway.posted[0], "closed")
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	gateway := &stubGateway{deleteErr: errors.New("403")}
	svc := service.NewOrderService(testLogger(), gateway, stubIDs{}, nil, discordConf)

	err := svc.DeleteOrder(context.Background(), "300000000000000001")
	assert.ErrorIs(t, err, entities.ErrUpstreamFailed)
}

func TestOrderService_GrantAccess(t *testing.T) {
	t.Run("replaces the full overwrite set", func(t *testing.T) {
		gateway := &stubGateway{}
		svc := service.NewOrderService(testLogger(), gateway, stubIDs{}, nil, discordConf)

		err := svc.GrantAccess(context.Background(), "300000000000000001", "200000000000000001")
		require.NoError(t, err)
		assert.Len(t, gateway.overwrites, 3)
	})

	t.Run("upstream failure is wrapped", func(t *testing.T) {
		gateway := &stubGateway{patchErr: errors.New("500")}
		svc := service.NewOrderService(testLogger(), gateway, stubIDs{}, nil, discordConf)

		err := svc.GrantAccess(context.Background(), "300000000000000001", "200000000000000001")
		assert.ErrorIs(t, err, entities.ErrUpstreamFailed)
	})
}
