package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/pomleague/auctioneer/auctioneer"
	"github.com/pomleague/auctioneer/auctioneer/auction"
	"github.com/pomleague/auctioneer/auctioneer/config"
)

var Bid = discord.SlashCommandCreate{
	Name:        "bid",
	Description: "Place a bid (use in an auction thread)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "Bid amount",
			Required:    true,
			MinValue:    intPtr(config.MinBidAmount),
			MaxValue:    intPtr(config.MaxBidAmount),
		},
	},
}

// BidHandler places a bid in the invoking thread. Placement checks run
// against a fresh read so the reply can name the standing bid; the write
// itself re-validates, so two bidders racing each other cannot both win.
func BidHandler(b *auctioneer.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		amount := int64(data.Int("amount"))

		if e.GuildID() == nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "This command can only be used in a server.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		threadID := int64(e.ChannelID())
		a, err := b.AuctionRepo.GetByThread(ctx, threadID)
		if err != nil {
			slog.Error("Failed to look up thread auction",
				slog.String("type", "cmd"),
				slog.String("name", "bid"),
				slog.Int64("thread_id", threadID),
				slog.Any("error", err))
			return e.CreateMessage(discord.MessageCreate{
				Content: "Something went wrong. Please try again.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if a == nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "This thread is not an active auction. Use `/bid` only inside a thread created by `/auction start`.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if a.IsCompleted() {
			return e.CreateMessage(discord.MessageCreate{
				Content: fmt.Sprintf("This auction is completed and was won by %s for %d. Use `/bid` only inside an active auction thread.", a.CurrentBidderName, a.CurrentBid),
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if !allowedAuctionChannel(b.Cfg.Bot.AuctionChannels, snowflake.ID(a.ChannelID)) {
			return e.CreateMessage(discord.MessageCreate{
				Content: fmt.Sprintf("This auction is not in the designated auction channel %s. Bidding is only allowed in threads under that channel.", channelMentions(b.Cfg.Bot.AuctionChannels)),
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		updated, err := b.Manager.PlaceBid(ctx, threadID, amount, int64(e.User().ID), displayName(e))
		if err != nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: bidErrorText(err, amount),
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		if err := b.Chat.AddThreadMember(e.ChannelID(), e.User().ID); err != nil {
			slog.Debug("Could not add bidder to thread",
				slog.Int64("thread_id", threadID),
				slog.Any("error", err))
		}

		// Mention in the content so thread members get a notification.
		embed := auction.AuctionEmbed(updated, fmt.Sprintf("New high bid: %d", amount), b.Manager.Expiry(), time.Now())
		return e.CreateMessage(discord.MessageCreate{
			Content: fmt.Sprintf("New bid from %s!", e.User().Mention()),
			Embeds:  []discord.Embed{embed},
		})
	}
}

// bidErrorText maps a rejected bid onto the reply the bidder sees.
func bidErrorText(err error, amount int64) string {
	var completed *auction.CompletedError
	var tooLow *auction.BidTooLowError
	var overBudget *auction.OverBudgetError

	switch {
	case errors.Is(err, auction.ErrNoAuction):
		return "This thread is not an active auction. Use `/bid` only inside a thread created by `/auction start`."
	case errors.As(err, &completed):
		return fmt.Sprintf("This auction is completed and was won by %s for %d. Use `/bid` only inside an active auction thread.",
			completed.Auction.CurrentBidderName, completed.Auction.CurrentBid)
	case errors.As(err, &tooLow):
		return fmt.Sprintf("Your bid **%d** must be **higher** than the current bid of **%d**.", tooLow.Amount, tooLow.CurrentBid)
	case errors.Is(err, auction.ErrSelfOutbid):
		return "You can't raise your own bid. Wait for someone else to outbid you."
	case errors.Is(err, auction.ErrNotEnrolled):
		return "You're not in the POM Balance sheet. Contact an admin to add you."
	case errors.As(err, &overBudget):
		return fmt.Sprintf("You don't have enough POM. Available: **%d** (balance: %d, committed to other bids: %d).",
			overBudget.Available, overBudget.Balance, overBudget.Committed)
	case errors.Is(err, auction.ErrBidRace):
		return "Could not update bid. Try again."
	default:
		slog.Error("POM balance check failed",
			slog.String("type", "cmd"),
			slog.String("name", "bid"),
			slog.Int64("amount", amount),
			slog.Any("error", err))
		return "Could not verify your POM balance. Try again or contact an admin."
	}
}
