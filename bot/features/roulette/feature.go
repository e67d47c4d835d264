package roulette

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
		Name:        "roulette",
		Aliases:     []string{"rl"},
		Description: "Bet on a number (35:1) or a color (1:1)",
		Run:         f.handleRoulette,
	})
}
