// Package commands defines the slash commands and their handlers. Handlers
// validate placement and wording here; the auction package owns the rules.
package commands

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/pomleague/auctioneer/auctioneer"
)

var Commands = []discord.ApplicationCommandCreate{
	Auction,
	Bid,
	Auctions,
	Balances,
	DiscordIDs,
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

// displayName is the invoker's server nickname when set, otherwise their
// account display name.
func displayName(e *handler.CommandEvent) string {
	if member := e.Member(); member != nil {
		return memberDisplayName(member.Member)
	}
	return e.User().EffectiveName()
}

func memberDisplayName(m discord.Member) string {
	if m.Nick != nil && *m.Nick != "" {
		return *m.Nick
	}
	return m.User.EffectiveName()
}

// requireMainChannel rejects invocations outside a server channel or inside
// a thread. When ok is false the rejection has already been sent and the
// handler returns the accompanying error.
func requireMainChannel(b *auctioneer.Bot, e *handler.CommandEvent) (bool, error) {
	if e.GuildID() == nil {
		return false, e.CreateMessage(discord.MessageCreate{
			Content: "This command can only be used in a server channel.",
			Flags:   discord.MessageFlagEphemeral,
		})
	}
	isThread, err := b.Chat.IsThread(e.ChannelID())
	if err != nil {
		return false, e.CreateMessage(discord.MessageCreate{
			Content: "Could not inspect this channel. Try again.",
			Flags:   discord.MessageFlagEphemeral,
		})
	}
	if isThread {
		return false, e.CreateMessage(discord.MessageCreate{
			Content: "Use this command in the main channel (where auction threads live), not inside a thread.",
			Flags:   discord.MessageFlagEphemeral,
		})
	}
	return true, nil
}

// requireAuctionChannel rejects invocations outside the configured auction
// channels. No channels configured means every channel passes.
func requireAuctionChannel(b *auctioneer.Bot, e *handler.CommandEvent) (bool, error) {
	if allowedAuctionChannel(b.Cfg.Bot.AuctionChannels, e.ChannelID()) {
		return true, nil
	}
	return false, e.CreateMessage(discord.MessageCreate{
		Content: fmt.Sprintf("Use this command in the designated auction channel %s.", channelMentions(b.Cfg.Bot.AuctionChannels)),
		Flags:   discord.MessageFlagEphemeral,
	})
}

// allowedAuctionChannel reports whether id is one of the configured auction
// channels. An empty list allows every channel.
func allowedAuctionChannel(channels []snowflake.ID, id snowflake.ID) bool {
	if len(channels) == 0 {
		return true
	}
	for _, c := range channels {
		if c == id {
			return true
		}
	}
	return false
}

// channelMentions renders the configured auction channels as linked mentions.
func channelMentions(channels []snowflake.ID) string {
	mentions := make([]string, len(channels))
	for i, c := range channels {
		mentions[i] = fmt.Sprintf("<#%d>", c)
	}
	return strings.Join(mentions, ", ")
}

// truncateRunes clips s to at most max runes.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
