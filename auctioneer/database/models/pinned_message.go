package models

import (
	"github.com/uptrace/bun"
)

// PinnedListMessage caches the live "Active Auctions" summary message per
// channel. Purely a lookup shortcut; rebuilt by scanning channel pins if lost.
type PinnedListMessage struct {
	bun.BaseModel `bun:"table:pinned_list_messages,alias:plm"`

	ChannelID int64 `bun:"channel_id,pk"`
	MessageID int64 `bun:"message_id,notnull"`
}

// PinnedBalancesMessage caches the live "POM Balances" summary message per
// channel.
type PinnedBalancesMessage struct {
	bun.BaseModel `bun:"table:pinned_balances_messages,alias:pbm"`

	ChannelID int64 `bun:"channel_id,pk"`
	MessageID int64 `bun:"message_id,notnull"`
}
