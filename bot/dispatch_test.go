package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Hiroshi025/Nebura-sub000/service"
)

func TestResolvePrefix(t *testing.T) {
	botID := "999999999999999999"

	cases := []struct {
		content  string
		prefix   string
		wantRest string
		wantOK   bool
	}{
		{"!balance", "!", "balance", true},
		{"!coinflip 50 heads", "!", "coinflip 50 heads", true},
		{"?balance", "!", "", false},
		{"just chatting", "!", "", false},
		{"<@999999999999999999> balance", "!", "balance", true},
		{"<@!999999999999999999> balance", "!", "balance", true},
		{"<@999999999999999999>balance", "!", "balance", true},
		{"<@111111111111111111> balance", "!", "", false},
		{"??slots 10", "??", "slots 10", true},
	}

	for _, tc := range cases {
		rest, ok := ResolvePrefix(tc.content, tc.prefix, botID)
		assert.Equal(t, tc.wantOK, ok, "content %q", tc.content)
		if tc.wantOK {
			assert.Equal(t, tc.wantRest, rest, "content %q", tc.content)
		}
	}
}

func TestCheckGates_FixedOrder(t *testing.T) {
	now := time.Now()

	// Owner-only wins over maintenance for a non-owner
	cmd := &Command{Name: "admin", OwnerOnly: true, Maintenance: true, Run: noopRun}
	err := checkGates(cmd, gateInput{IsOwner: false}, time.Time{}, now)
	assert.ErrorIs(t, err, errOwnerOnly)

	// An owner passes both owner and maintenance gates
	err = checkGates(cmd, gateInput{IsOwner: true}, time.Time{}, now)
	assert.NoError(t, err)

	// Maintenance alone rejects non-owners
	cmd = &Command{Name: "wip", Maintenance: true, Run: noopRun}
	err = checkGates(cmd, gateInput{}, time.Time{}, now)
	assert.ErrorIs(t, err, errMaintenance)
}

func TestCheckGates_NSFWAndPermissions(t *testing.T) {
	now := time.Now()

	cmd := &Command{Name: "lewd", NSFW: true, Run: noopRun}
	assert.ErrorIs(t, checkGates(cmd, gateInput{ChannelNSFW: false}, time.Time{}, now), errNSFWChannel)
	assert.NoError(t, checkGates(cmd, gateInput{ChannelNSFW: true}, time.Time{}, now))

	cmd = &Command{Name: "prune", UserPermissions: 0x8, Run: noopRun}
	assert.ErrorIs(t, checkGates(cmd, gateInput{UserPerms: 0x4}, time.Time{}, now), errUserPermission)
	assert.NoError(t, checkGates(cmd, gateInput{UserPerms: 0xC}, time.Time{}, now))

	cmd = &Command{Name: "announce", BotPermissions: 0x10, Run: noopRun}
	assert.ErrorIs(t, checkGates(cmd, gateInput{BotPerms: 0}, time.Time{}, now), errBotPermission)

	// NSFW gate outranks permission gates
	cmd = &Command{Name: "both", NSFW: true, UserPermissions: 0x8, Run: noopRun}
	assert.ErrorIs(t, checkGates(cmd, gateInput{ChannelNSFW: false, UserPerms: 0}, time.Time{}, now), errNSFWChannel)
}

func TestCheckGates_Cooldown(t *testing.T) {
	now := time.Now()
	cmd := &Command{Name: "daily", Cooldown: time.Minute, Run: noopRun}

	// Never used: passes
	assert.NoError(t, checkGates(cmd, gateInput{}, time.Time{}, now))

	// Used 10s ago: rejected with the retry time
	err := checkGates(cmd, gateInput{}, now.Add(-10*time.Second), now)
	var cooldown *service.CooldownError
	assert.ErrorAs(t, err, &cooldown)
	assert.Equal(t, now.Add(50*time.Second).Unix(), cooldown.Until.Unix())

	// Window elapsed: passes
	assert.NoError(t, checkGates(cmd, gateInput{}, now.Add(-2*time.Minute), now))

	// Zero cooldown never rejects
	cmd = &Command{Name: "free", Run: noopRun}
	assert.NoError(t, checkGates(cmd, gateInput{}, now.Add(-time.Millisecond), now))
}
