package discord_test

import (
	"testing"

	"github.com/sixlab/storefront/internal/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderOverwrites(t *testing.T) {
	const (
		guild    = "1000000000000000001"
		staff    = "1000000000000000002"
		customer = "200000000000000001"
	)

	t.Run("full list", func(t *testing.T) {
		got := discord.OrderOverwrites(guild, staff, customer)
		require.Len(t, got, 3)

		assert.Equal(t, guild, got[0].ID)
		assert.Equal(t, discord.PermViewChannel, got[0].Deny)
		assert.Empty(t, got[0].Allow)

		assert.Equal(t, staff, got[1].ID)
		assert.Equal(t, discord.PermOrderAccess, got[1].Allow)

		assert.Equal(t, customer, got[2].ID)
		assert.Equal(t, discord.PermOrderAccess, got[2].Allow)
	})

	t.Run("no staff role configured", func(t *testing.T) {
		got := discord.OrderOverwrites(guild, "", customer)
		require.Len(t, got, 2)
		assert.Equal(t, customer, got[1].ID)
	})

	t.Run("anonymous customer", func(t *testing.T) {
		got := discord.OrderOverwrites(guild, staff, "")
		require.Len(t, got, 2)
		assert.Equal(t, staff, got[1].ID)
	})
}
