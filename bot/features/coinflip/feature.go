package coinflip

import (
	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/games"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	gamesSvc service.GameService
	sessions *bot.SessionManager
	rng      games.Rand
}

// New creates the coinflip feature. A nil rng uses a time-seeded source;
// tests pass a scripted one.
func New(gamesSvc service.GameService, sessions *bot.SessionManager, rng games.Rand) *Feature {
	if rng == nil {
		rng = games.NewRand()
	}
	return &Feature{gamesSvc: gamesSvc, sessions: sessions, rng: rng}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:        "coinflip",
		Aliases:     []string{"cf", "flip"},
		Description: "Flip a coin against the house",
		Run:         f.handleCoinflip,
	})
}
