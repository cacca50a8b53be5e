package auction

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"

	"github.com/pomleague/auctioneer/auctioneer/config"
	"github.com/pomleague/auctioneer/auctioneer/database/models"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
)

// Embed titles double as lookup keys when rescanning channel pins after a
// restart, so they must stay stable.
const (
	activeAuctionsTitle = "📌 Active Auctions"
	balancesTitle       = "📌 POM Balances"
)

// Remaining is the time left on the bid clock, floored at zero.
func Remaining(lastBidAt int64, expiry time.Duration, now time.Time) time.Duration {
	deadline := time.Unix(lastBidAt, 0).Add(expiry)
	left := deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// FormatTimeLeft renders a countdown as "3h 12m", "45m", or "Expired".
func FormatTimeLeft(left time.Duration) string {
	if left <= 0 {
		return "Expired"
	}
	total := int(left.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func countdownColor(left time.Duration) int {
	hours := left.Hours()
	switch {
	case hours >= config.CountdownAmpleHours:
		return config.CountdownAmpleColor
	case hours >= config.CountdownClosingHours:
		return config.CountdownClosingColor
	default:
		return config.CountdownCriticalColor
	}
}

// AuctionEmbed is the auction status card posted in the thread and refreshed
// as the clock runs down.
func AuctionEmbed(a *models.Auction, title string, expiry time.Duration, now time.Time) discord.Embed {
	left := Remaining(a.LastBidAt, expiry, now)
	bidder := a.CurrentBidderName
	if bidder == "" {
		bidder = "—"
	}

	return discord.NewEmbedBuilder().
		SetTitle(title).
		SetDescription(fmt.Sprintf("**%s**", a.PlayerName)).
		SetColor(countdownColor(left)).
		AddField("Current bid", fmt.Sprintf("**%d**", a.CurrentBid), true).
		AddField("High bidder", bidder, true).
		AddField("Time left", FormatTimeLeft(left), true).
		SetFooter(fmt.Sprintf("Bid with /bid <amount> • %dh with no new bid wins", int(expiry.Hours())), "").
		Build()
}

// ActiveAuctionsEmbed lists a channel's running auctions as thread links for
// the pinned overview message.
func ActiveAuctionsEmbed(auctions []*models.Auction, expiry time.Duration, now time.Time) discord.Embed {
	builder := discord.NewEmbedBuilder().
		SetTitle(activeAuctionsTitle).
		SetDescription("Click a link to open the thread and bid with `/bid <amount>`.").
		SetColor(config.InfoColor)

	if len(auctions) == 0 {
		builder.AddField("—", "No active auctions in this channel.", false)
		return builder.Build()
	}

	lines := make([]string, 0, len(auctions))
	for _, a := range auctions {
		left := Remaining(a.LastBidAt, expiry, now)
		lines = append(lines, fmt.Sprintf("• <#%d> (bid: **%d** by %s) %s left",
			a.ThreadID, a.CurrentBid, a.CurrentBidderName, FormatTimeLeft(left)))
	}
	builder.AddField("Prospects", strings.Join(lines, "\n"), false)
	builder.SetFooter("Use /auctions to refresh this list • For a new auction: /auction start", "")
	return builder.Build()
}

// BalancesEmbed lists sheet balances for the pinned overview message.
func BalancesEmbed(rows []sheets.BalanceRow) discord.Embed {
	builder := discord.NewEmbedBuilder().
		SetTitle(balancesTitle).
		SetDescription("From POM Balance sheet (source of truth)").
		SetColor(config.InfoColor)

	if len(rows) == 0 {
		builder.AddField("—", "No rows in POM Balance sheet.", false)
	} else {
		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, fmt.Sprintf("• <@%d> **%s** — %d POM", r.UserID, r.Name, r.Balance))
		}
		builder.AddField("Balances", strings.Join(lines, "\n"), false)
	}
	builder.SetFooter("Use /balances to refresh this list", "")
	return builder.Build()
}
