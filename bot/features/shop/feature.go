package shop

import (
	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	shop service.ShopService
}

func New(shop service.ShopService) *Feature {
	return &Feature{shop: shop}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:        "shop",
		Aliases:     []string{"store"},
		Description: "Browse the item catalog",
		Run:         f.handleShop,
	})
	reg.MustRegister(&bot.Command{
		Name:        "buy",
		Description: "Buy an item from the shop",
		Run:         f.handleBuy,
	})
	reg.MustRegister(&bot.Command{
		Name:        "inventory",
		Aliases:     []string{"inv", "items"},
		Description: "Show what you own",
		Run:         f.handleInventory,
	})
	reg.MustRegister(&bot.Command{
		Name:        "use",
		Aliases:     []string{"redeem"},
		Description: "Redeem an item from your inventory",
		Run:         f.handleUse,
	})
}
