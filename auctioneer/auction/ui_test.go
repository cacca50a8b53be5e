package auction

import (
	"strings"
	"testing"
	"time"

	"github.com/pomleague/auctioneer/auctioneer/config"
	"github.com/pomleague/auctioneer/auctioneer/database/models"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
)

func TestFormatTimeLeft(t *testing.T) {
	tests := []struct {
		name string
		left time.Duration
		want string
	}{
		{name: "hours and minutes", left: 3*time.Hour + 12*time.Minute, want: "3h 12m"},
		{name: "exact hours", left: 5 * time.Hour, want: "5h 0m"},
		{name: "under an hour", left: 45 * time.Minute, want: "45m"},
		{name: "under a minute", left: 30 * time.Second, want: "0m"},
		{name: "zero", left: 0, want: "Expired"},
		{name: "negative", left: -time.Minute, want: "Expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimeLeft(tt.left); got != tt.want {
				t.Errorf("FormatTimeLeft(%v) = %q, want %q", tt.left, got, tt.want)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name      string
		lastBidAt int64
		want      time.Duration
	}{
		{name: "fresh bid", lastBidAt: now.Unix(), want: 24 * time.Hour},
		{name: "halfway", lastBidAt: now.Add(-12 * time.Hour).Unix(), want: 12 * time.Hour},
		{name: "expired", lastBidAt: now.Add(-25 * time.Hour).Unix(), want: 0},
		{name: "expiry boundary", lastBidAt: now.Add(-24 * time.Hour).Unix(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remaining(tt.lastBidAt, 24*time.Hour, now); got != tt.want {
				t.Errorf("Remaining() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountdownColor(t *testing.T) {
	tests := []struct {
		name string
		left time.Duration
		want int
	}{
		{name: "ample", left: 20 * time.Hour, want: config.CountdownAmpleColor},
		{name: "ample boundary", left: 12 * time.Hour, want: config.CountdownAmpleColor},
		{name: "closing", left: 6 * time.Hour, want: config.CountdownClosingColor},
		{name: "closing boundary", left: 3 * time.Hour, want: config.CountdownClosingColor},
		{name: "critical", left: 30 * time.Minute, want: config.CountdownCriticalColor},
		{name: "expired", left: 0, want: config.CountdownCriticalColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countdownColor(tt.left); got != tt.want {
				t.Errorf("countdownColor(%v) = %#x, want %#x", tt.left, got, tt.want)
			}
		})
	}
}

func TestAuctionEmbed(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := activeAuction()
	a.LastBidAt = now.Add(-4 * time.Hour).Unix()

	embed := AuctionEmbed(a, "Current bid", 24*time.Hour, now)

	if embed.Title != "Current bid" {
		t.Errorf("embed title = %q, want %q", embed.Title, "Current bid")
	}
	if embed.Description != "**Jax**" {
		t.Errorf("embed description = %q, want %q", embed.Description, "**Jax**")
	}
	if len(embed.Fields) != 3 {
		t.Fatalf("embed has %d fields, want 3", len(embed.Fields))
	}
	if embed.Fields[0].Value != "**100**" {
		t.Errorf("current bid field = %q, want %q", embed.Fields[0].Value, "**100**")
	}
	if embed.Fields[1].Value != "Alice" {
		t.Errorf("high bidder field = %q, want %q", embed.Fields[1].Value, "Alice")
	}
	if embed.Fields[2].Value != "20h 0m" {
		t.Errorf("time left field = %q, want %q", embed.Fields[2].Value, "20h 0m")
	}
	if embed.Color != config.CountdownAmpleColor {
		t.Errorf("embed color = %#x, want %#x", embed.Color, config.CountdownAmpleColor)
	}
	if embed.Footer == nil || embed.Footer.Text != "Bid with /bid <amount> • 24h with no new bid wins" {
		t.Errorf("embed footer = %+v, want the 24h bid hint", embed.Footer)
	}
}

func TestAuctionEmbedNoBidder(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := activeAuction()
	a.CurrentBidderID = 0
	a.CurrentBidderName = ""
	a.LastBidAt = now.Unix()

	embed := AuctionEmbed(a, "Auction: Jax", 24*time.Hour, now)

	if embed.Fields[1].Value != "—" {
		t.Errorf("high bidder field = %q, want placeholder dash", embed.Fields[1].Value)
	}
}

func TestActiveAuctionsEmbed(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := activeAuction()
	a.LastBidAt = now.Add(-21 * time.Hour).Unix()
	b := activeAuction()
	b.ThreadID = 1002
	b.PlayerName = "Rio"
	b.CurrentBid = 250
	b.CurrentBidderName = "Bob"
	b.LastBidAt = now.Unix()

	embed := ActiveAuctionsEmbed([]*models.Auction{a, b}, 24*time.Hour, now)

	if embed.Title != "📌 Active Auctions" {
		t.Errorf("embed title = %q, want %q", embed.Title, "📌 Active Auctions")
	}
	if len(embed.Fields) != 1 {
		t.Fatalf("embed has %d fields, want 1", len(embed.Fields))
	}
	lines := strings.Split(embed.Fields[0].Value, "\n")
	if len(lines) != 2 {
		t.Fatalf("list has %d lines, want 2", len(lines))
	}
	if lines[0] != "• <#1001> (bid: **100** by Alice) 3h 0m left" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "• <#1002> (bid: **250** by Bob) 24h 0m left" {
		t.Errorf("second line = %q", lines[1])
	}
	if embed.Footer == nil || !strings.Contains(embed.Footer.Text, "/auction start") {
		t.Errorf("embed footer = %+v, want the /auction start hint", embed.Footer)
	}
}

func TestActiveAuctionsEmbedEmpty(t *testing.T) {
	embed := ActiveAuctionsEmbed(nil, 24*time.Hour, time.Now())

	if len(embed.Fields) != 1 {
		t.Fatalf("embed has %d fields, want 1", len(embed.Fields))
	}
	if embed.Fields[0].Value != "No active auctions in this channel." {
		t.Errorf("empty field = %q", embed.Fields[0].Value)
	}
	if embed.Footer != nil {
		t.Errorf("empty list embed footer = %+v, want none", embed.Footer)
	}
}

func TestBalancesEmbed(t *testing.T) {
	rows := []sheets.BalanceRow{
		{UserID: 42, Name: "Alice", Balance: 5000},
		{UserID: 7, Name: "Bob", Balance: 300},
	}

	embed := BalancesEmbed(rows)

	if embed.Title != "📌 POM Balances" {
		t.Errorf("embed title = %q, want %q", embed.Title, "📌 POM Balances")
	}
	lines := strings.Split(embed.Fields[0].Value, "\n")
	if lines[0] != "• <@42> **Alice** — 5000 POM" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "• <@7> **Bob** — 300 POM" {
		t.Errorf("second line = %q", lines[1])
	}
	if embed.Footer == nil || embed.Footer.Text != "Use /balances to refresh this list" {
		t.Errorf("embed footer = %+v, want the refresh hint", embed.Footer)
	}
}

func TestBalancesEmbedEmpty(t *testing.T) {
	embed := BalancesEmbed(nil)

	if embed.Fields[0].Value != "No rows in POM Balance sheet." {
		t.Errorf("empty field = %q", embed.Fields[0].Value)
	}
	if embed.Footer == nil {
		t.Error("empty balances embed should keep its footer")
	}
}
