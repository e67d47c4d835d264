package duel

import (
	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	gamesSvc service.GameService
	sessions *bot.SessionManager
}

func New(gamesSvc service.GameService, sessions *bot.SessionManager) *Feature {
	return &Feature{gamesSvc: gamesSvc, sessions: sessions}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:        "duel",
		Description: "Challenge another member to a winner-takes-stake duel",
		Run:         f.handleDuel,
	})
}
