package transfer

import (
	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	transfers service.TransferService
}

func New(transfers service.TransferService) *Feature {
	return &Feature{transfers: transfers}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:        "pay",
		Aliases:     []string{"give", "transfer"},
		Description: "Send money to another member",
		Run:         f.handlePay,
	})
}
