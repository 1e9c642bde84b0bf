package discord

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

const channelTypeGuildText = 0

// Channel permission bits, serialized as decimal strings per the API.
const (
	// PermViewChannel is denied to @everyone on order channels.
	PermViewChannel = "1024"
	// PermOrderAccess = VIEW + SEND + READ_HISTORY + ATTACH + EMBED,
	// granted to staff and the customer.
	PermOrderAccess = "93184"
)

const (
	overwriteTypeRole   = 0
	overwriteTypeMember = 1
)

type Overwrite struct {
	ID    string `json:"id"`
	Type  int    `json:"type"`
	Allow string `json:"allow,omitempty"`
	Deny  string `json:"deny,omitempty"`
}

// OrderOverwrites is the access-control list for an order channel:
// hidden from @everyone, visible to staff and, when known, the customer.
// Replaying the same list is idempotent because channel PATCH replaces
// overwrites instead of appending.
func OrderOverwrites(guildID, staffRoleID, customerID string) []Overwrite {
	overwrites := []Overwrite{
		{ID: guildID, Type: overwriteTypeRole, Deny: PermViewChannel},
	}
	if staffRoleID != "" {
		overwrites = append(overwrites, Overwrite{ID: staffRoleID, Type: overwriteTypeRole, Allow: PermOrderAccess})
	}
	if customerID != "" {
		overwrites = append(overwrites, Overwrite{ID: customerID, Type: overwriteTypeMember, Allow: PermOrderAccess})
	}
	return overwrites
}

type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Member struct {
	Pending bool `json:"pending"`
}

type invite struct {
	Code string `json:"code"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Image       *EmbedImage  `json:"image,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedImage struct {
	URL string `json:"url"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

const maxErrorBody = 500

// APIError is a non-2xx response from Discord. The body is truncated and
// never forwarded to API callers.
type APIError struct {
	Status int
	Body   string
}

func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord api: status %d", e.Status)
}
