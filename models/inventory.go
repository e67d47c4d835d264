package models

import (
	"time"
)

// ShopItem is a purchasable catalog entry. The catalog is static and
// loaded once at startup; purchases copy the item into the buyer's
// inventory.
type ShopItem struct {
	Identifier  string
	Name        string
	Description string
	Price       float64
	RoleID      string   // optional: Discord role granted on redemption
	Money       *float64 // optional: amount credited to balance on redemption
}

// InventoryItem is an owned copy of a shop item. Created by a purchase,
// destroyed on redemption.
type InventoryItem struct {
	ID              int64     `db:"id"`
	UserID          string    `db:"user_id"`
	GuildID         string    `db:"guild_id"`
	ItemIdentifier  string    `db:"item_identifier"`
	ItemName        string    `db:"item_name"`
	ItemDescription string    `db:"item_description"`
	ItemPrice       float64   `db:"item_price"`
	RoleID          *string   `db:"role_id"`
	Money           *float64  `db:"money"`
	CreatedAt       time.Time `db:"created_at"`
}
