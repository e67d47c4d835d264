package slots

import (
	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	gamesSvc service.GameService
}

func New(gamesSvc service.GameService) *Feature {
	return &Feature{gamesSvc: gamesSvc}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:        "slots",
		Aliases:     []string{"slot", "spin"},
		Description: "Spin the 3x3 slot machine",
		Run:         f.handleSlots,
	})
}
