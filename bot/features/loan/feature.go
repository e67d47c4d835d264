package loan

import (
	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	loans service.LoanService
}

func New(loans service.LoanService) *Feature {
	return &Feature{loans: loans}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:        "loan",
		Description: "Borrow from the bank, check or repay your loan",
		Run:         f.handleLoan,
	})
}
