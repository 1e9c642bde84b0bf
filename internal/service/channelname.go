package service

import "strings"

const maxChannelNameLen = 90

// NormalizeChannelName maps an order id to a valid Discord channel name:
// lowercase, [a-z0-9-] only, no consecutive hyphens, at most 90 chars.
// Idempotent: normalizing a normalized name is a no-op.
func NormalizeChannelName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	normalized := b.String()
	if len(normalized) > maxChannelNameLen {
		normalized = normalized[:maxChannelNameLen]
	}
	return strings.Trim(normalized, "-")
}
