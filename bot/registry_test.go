package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopRun(*Context) error { return nil }

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(&Command{
		Name:    "Coinflip",
		Aliases: []string{"cf", "flip"},
		Run:     noopRun,
	}))

	assert.NotNil(t, reg.Lookup("coinflip"))
	assert.NotNil(t, reg.Lookup("COINFLIP"))
	assert.NotNil(t, reg.Lookup("cf"))
	assert.NotNil(t, reg.Lookup("flip"))
	assert.Nil(t, reg.Lookup("slots"))

	// Name and alias resolve to the same descriptor
	assert.Same(t, reg.Lookup("coinflip"), reg.Lookup("cf"))
}

func TestRegistry_RejectsBadDescriptors(t *testing.T) {
	reg := NewRegistry()

	assert.Error(t, reg.Register(nil))
	assert.Error(t, reg.Register(&Command{Name: "x"}))
	assert.Error(t, reg.Register(&Command{Name: "", Run: noopRun}))
	assert.Error(t, reg.Register(&Command{Name: "two words", Run: noopRun}))
	assert.Error(t, reg.Register(&Command{Name: "ok", Cooldown: -1, Run: noopRun}))
}

func TestRegistry_RejectsCollisions(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(&Command{Name: "slots", Aliases: []string{"slot"}, Run: noopRun}))

	assert.Error(t, reg.Register(&Command{Name: "slots", Run: noopRun}), "duplicate name")
	assert.Error(t, reg.Register(&Command{Name: "slot", Run: noopRun}), "name colliding with alias")
	assert.Error(t, reg.Register(&Command{Name: "other", Aliases: []string{"slots"}, Run: noopRun}), "alias colliding with name")
	assert.Error(t, reg.Register(&Command{Name: "another", Aliases: []string{"slot"}, Run: noopRun}), "duplicate alias")
}

func TestRegistry_ComponentRoutes(t *testing.T) {
	reg := NewRegistry()

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate) {}
	require.NoError(t, reg.RegisterComponent("shop_buy_", handler))

	assert.NotNil(t, reg.ResolveComponent("shop_buy_42"))
	assert.Nil(t, reg.ResolveComponent("duel_accept_42"))
	assert.Error(t, reg.RegisterComponent("shop_buy_", nil))
	assert.Error(t, reg.RegisterComponent("", nil))
}
