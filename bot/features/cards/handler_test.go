package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromCustomID(t *testing.T) {
	n, ok := cardFromCustomID("card_pick_3")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	for _, id := range []string{"card_pick_0", "card_pick_5", "card_pick_x", "duel_accept", ""} {
		_, ok := cardFromCustomID(id)
		assert.False(t, ok, "custom id %q", id)
	}
}
