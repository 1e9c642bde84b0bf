package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sixlab/storefront/internal/discord"
	"github.com/sixlab/storefront/internal/entities"
)

const (
	embedColor      = 0x111827
	embedFooter     = "6IXLAB Orders"
	maxBriefInEmbed = 2000
)

func channelTopic(orderID string, customer entities.Customer) string {
	parts := []string{"Order #" + orderID}
	if customer.Name != "" {
		parts = append(parts, customer.Name)
	}
	if customer.Contact != "" {
		parts = append(parts, customer.Contact)
	}
	return strings.Join(parts, " • ")
}

// summaryEmbed renders the order summary posted into the channel:
// customer info, itemized list, total, extracted links and an optional
// preview image.
func (s *orderService) summaryEmbed(orderID string, sub entities.OrderSubmission, total int, links []string) discord.Embed {
	embed := discord.Embed{
		Title:       fmt.Sprintf("Order #%s", orderID),
		Description: truncate(sub.Customer.Brief, maxBriefInEmbed),
		Color:       embedColor,
		Footer:      &discord.EmbedFooter{Text: embedFooter},
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	if sub.Customer.Name != "" {
		embed.Fields = append(embed.Fields, discord.EmbedField{Name: "Customer", Value: sub.Customer.Name, Inline: true})
	}
	if sub.Customer.Contact != "" {
		embed.Fields = append(embed.Fields, discord.EmbedField{Name: "Contact", Value: sub.Customer.Contact, Inline: true})
	}
	if sub.Customer.DiscordUserID != "" {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:   "Discord",
			Value:  fmt.Sprintf("<@%s>", sub.Customer.DiscordUserID),
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields,
		discord.EmbedField{Name: "Items", Value: itemLines(sub.Items)},
		discord.EmbedField{Name: "Total", Value: fmt.Sprintf("**%d**", total), Inline: true},
	)

	if len(links) > 0 {
		embed.Fields = append(embed.Fields, discord.EmbedField{Name: "Links", Value: strings.Join(links, "\n")})
	}

	if image := previewImage(sub.Customer, links); image != "" {
		embed.Image = &discord.EmbedImage{URL: image}
	}

	return embed
}

func itemLines(items []entities.CartItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("• %s × %d — %d", item.Name, item.Qty, item.Price))
	}
	return strings.Join(lines, "\n")
}

// previewImage prefers the explicitly attached file, then the first
// image-looking link from the brief.
func previewImage(customer entities.Customer, links []string) string {
	if customer.FileURL != "" && IsImageURL(customer.FileURL) {
		return customer.FileURL
	}
	for _, link := range links {
		if IsImageURL(link) {
			return link
		}
	}
	return ""
}

// truncate counts runes, matching the payload limits, so multi-byte
// briefs are never cut mid-character.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
