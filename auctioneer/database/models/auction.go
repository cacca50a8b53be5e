package models

import (
	"github.com/uptrace/bun"
)

type AuctionStatus string

const (
	AuctionStatusActive    AuctionStatus = "active"
	AuctionStatusCompleted AuctionStatus = "completed"
)

// Auction is one tracked auction. A thread hosts at most one auction ever,
// so the thread ID doubles as the primary key. Timestamps are epoch seconds;
// LastBidAt drives the expiry clock and is reset on every accepted bid.
type Auction struct {
	bun.BaseModel `bun:"table:auctions,alias:a"`

	ThreadID          int64         `bun:"thread_id,pk"`
	ChannelID         int64         `bun:"channel_id,notnull"`
	GuildID           int64         `bun:"guild_id,notnull"`
	PlayerName        string        `bun:"player_name,notnull"`
	CurrentBid        int64         `bun:"current_bid,notnull"`
	CurrentBidderID   int64         `bun:"current_bidder_id,nullzero"`
	CurrentBidderName string        `bun:"current_bidder_name,nullzero"`
	CreatedAt         int64         `bun:"created_at,notnull"`
	LastBidAt         int64         `bun:"last_bid_at,notnull"`
	Status            AuctionStatus `bun:"status,notnull,default:'active'"`
}

func (a *Auction) IsActive() bool {
	return a.Status == AuctionStatusActive
}

func (a *Auction) IsCompleted() bool {
	return a.Status == AuctionStatusCompleted
}
