package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sixlab/storefront/internal/config"
)

const authorizeURL = "https://discord.com/oauth2/authorize"

// Client talks to the Discord REST API with a bot credential.
// Every call is bounded by a per-request timeout from the config and
// cancelled on expiry.
type Client struct {
	logger *slog.Logger
	http   *http.Client
	cfg    config.Discord
}

func NewClient(logger *slog.Logger, cfg config.Discord) *Client {
	return &Client{
		logger: logger.With(slog.String("client", "discord")),
		http:   &http.Client{},
		cfg:    cfg,
	}
}

// CreateOrderChannel creates a private text channel under the configured
// category. This is the anchor resource of an order: failure here is fatal.
func (c *Client) CreateOrderChannel(ctx context.Context, name, topic string, overwrites []Overwrite) (Channel, error) {
	body := map[string]any{
		"name":                  name,
		"type":                  channelTypeGuildText,
		"parent_id":             c.cfg.CategoryID,
		"topic":                 topic,
		"permission_overwrites": overwrites,
	}

	var channel Channel
	path := fmt.Sprintf("/guilds/%s/channels", c.cfg.GuildID)
	if err := c.do(ctx, http.MethodPost, path, body, c.cfg.Timeout, &channel); err != nil {
		return Channel{}, fmt.Errorf("create channel: %w", err)
	}
	return channel, nil
}

func (c *Client) PostMessage(ctx context.Context, channelID, content string, embeds ...Embed) error {
	body := map[string]any{"content": content}
	if len(embeds) > 0 {
		body["embeds"] = embeds
	}

	path := fmt.Sprintf("/channels/%s/messages", channelID)
	if err := c.do(ctx, http.MethodPost, path, body, c.cfg.Timeout, nil); err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	return nil
}

// CreateInvite issues a single-use invite valid for one day and returns
// the shareable URL.
func (c *Client) CreateInvite(ctx context.Context, channelID string) (string, error) {
	body := map[string]any{
		"max_age":   86400,
		"max_uses":  1,
		"temporary": false,
	}

	var invite invite
	path := fmt.Sprintf("/channels/%s/invites", channelID)
	if err := c.do(ctx, http.MethodPost, path, body, c.cfg.ShortTimeout, &invite); err != nil {
		return "", fmt.Errorf("create invite: %w", err)
	}
	return "https://discord.gg/" + invite.Code, nil
}

// SendDM opens (or reuses) the DM channel with the user and sends content.
// Users may have DMs disabled; callers treat failures as non-fatal.
func (c *Client) SendDM(ctx context.Context, userID, content string) error {
	var dm Channel
	if err := c.do(ctx, http.MethodPost, "/users/@me/channels",
		map[string]any{"recipient_id": userID}, c.cfg.ShortTimeout, &dm); err != nil {
		return fmt.Errorf("open dm: %w", err)
	}

	path := fmt.Sprintf("/channels/%s/messages", dm.ID)
	if err := c.do(ctx, http.MethodPost, path, map[string]any{"content": content}, c.cfg.ShortTimeout, nil); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}

// GuildMember looks up the user in the configured guild. found is false
// on 404; any other non-2xx status is an upstream error.
func (c *Client) GuildMember(ctx context.Context, userID string) (member Member, found bool, err error) {
	path := fmt.Sprintf("/guilds/%s/members/%s", c.cfg.GuildID, userID)
	err = c.do(ctx, http.MethodGet, path, nil, c.cfg.Timeout, &member)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return Member{}, false, nil
	}
	if err != nil {
		return Member{}, false, fmt.Errorf("guild member: %w", err)
	}
	return member, true, nil
}

func (c *Client) RenameChannel(ctx context.Context, channelID, name string) error {
	path := fmt.Sprintf("/channels/%s", channelID)
	if err := c.do(ctx, http.MethodPatch, path, map[string]any{"name": name}, c.cfg.Timeout, nil); err != nil {
		return fmt.Errorf("rename channel: %w", err)
	}
	return nil
}

// ReplaceOverwrites swaps the full permission-overwrite list of a channel.
// PATCH replaces rather than appends, which makes grants idempotent.
func (c *Client) ReplaceOverwrites(ctx context.Context, channelID string, overwrites []Overwrite) error {
	path := fmt.Sprintf("/channels/%s", channelID)
	body := map[string]any{"permission_overwrites": overwrites}
	if err := c.do(ctx, http.MethodPatch, path, body, c.cfg.Timeout, nil); err != nil {
		return fmt.Errorf("replace overwrites: %w", err)
	}
	return nil
}

func (c *Client) DeleteChannel(ctx context.Context, channelID string) error {
	path := fmt.Sprintf("/channels/%s", channelID)
	if err := c.do(ctx, http.MethodDelete, path, nil, c.cfg.Timeout, nil); err != nil {
		return fmt.Errorf("delete channel: %w", err)
	}
	return nil
}

// ChannelURL is the deep link to a guild channel, used in customer DMs.
func (c *Client) ChannelURL(channelID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s", c.cfg.GuildID, channelID)
}

// AuthorizeURL is the OAuth entry point with the fixed identify scope.
func (c *Client) AuthorizeURL() string {
	params := url.Values{
		"client_id":     {c.cfg.ClientID},
		"response_type": {"code"},
		"scope":         {"identify"},
		"redirect_uri":  {c.cfg.RedirectURI},
		"prompt":        {"consent"},
	}
	return authorizeURL + "?" + params.Encode()
}

// ExchangeCode trades an authorization code for a bearer token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Token, error) {
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.cfg.RedirectURI},
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.APIBaseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token Token
	if err := c.send(req, &token); err != nil {
		return Token{}, fmt.Errorf("exchange code: %w", err)
	}
	return token, nil
}

// Identity fetches the profile of the token owner.
func (c *Client) Identity(ctx context.Context, token Token) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+"/users/@me", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", token.TokenType+" "+token.AccessToken)

	var user User
	if err := c.send(req, &user); err != nil {
		return User{}, fmt.Errorf("identity: %w", err)
	}
	return user, nil
}

// do issues a bot-authorized JSON request and decodes the response into
// out when it is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp)
		// Raw upstream bodies stay in server logs only.
		c.logger.Error("discord api error",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", apiErr.Status),
			slog.String("body", apiErr.Body),
		)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
