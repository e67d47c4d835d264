package balance

import (
	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	ledger service.LedgerService
}

func New(ledger service.LedgerService) *Feature {
	return &Feature{ledger: ledger}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:        "balance",
		Aliases:     []string{"bal", "money"},
		Description: "Show your wallet, or someone else's",
		Run:         f.handleBalance,
	})
	reg.MustRegister(&bot.Command{
		Name:        "leaderboard",
		Aliases:     []string{"top", "rich"},
		Description: "Top balances in this server",
		Run:         f.handleLeaderboard,
	})
	reg.MustRegister(&bot.Command{
		Name:        "history",
		Description: "Your recent balance changes",
		Run:         f.handleHistory,
	})
}
