package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/pomleague/auctioneer/auctioneer"
	"github.com/pomleague/auctioneer/auctioneer/auction"
	"github.com/pomleague/auctioneer/auctioneer/config"
)

var Auction = discord.SlashCommandCreate{
	Name:        "auction",
	Description: "Auction commands",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "start",
			Description: "Start an auction thread for a player with an initial bid",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "player_name",
					Description: "Name of the prospect/player",
					Required:    true,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "initial_bid",
					Description: "First bid amount (stored as current bid)",
					Required:    true,
					MinValue:    intPtr(config.MinBidAmount),
					MaxValue:    intPtr(config.MaxBidAmount),
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "register",
			Description: "Register this thread as an existing auction so the bot tracks it (reminders, completion, /bid).",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "player_name",
					Description: "Name of the prospect/player",
					Required:    true,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "current_bid",
					Description: "Current high bid amount",
					Required:    true,
					MinValue:    intPtr(config.MinBidAmount),
					MaxValue:    intPtr(config.MaxBidAmount),
				},
				discord.ApplicationCommandOptionUser{
					Name:        "high_bidder",
					Description: "Discord user who has the current high bid (must be in this server)",
					Required:    true,
				},
				discord.ApplicationCommandOptionFloat{
					Name:        "hours_remaining",
					Description: "Hours until this bid expires (0–24)",
					Required:    true,
					MinValue:    floatPtr(0),
					MaxValue:    floatPtr(config.MaxRegisterHours),
				},
			},
		},
	},
}

// AuctionStartHandler opens a new auction: seed message in the main channel,
// a thread hanging off it, the database row, and the countdown embed. The
// starter's POM budget is checked before anything is created.
func AuctionStartHandler(b *auctioneer.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		playerName := data.String("player_name")
		initialBid := int64(data.Int("initial_bid"))

		if e.GuildID() == nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "This command can only be used in a server channel.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		isThread, err := b.Chat.IsThread(e.ChannelID())
		if err != nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "Could not inspect this channel. Try again.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if isThread {
			return e.CreateMessage(discord.MessageCreate{
				Content: "Start the auction in the main channel, not inside a thread. I'll create a thread for this player.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if ok, err := requireAuctionChannel(b, e); !ok {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		// The starter becomes the initial bidder, so their budget must
		// cover the opening bid.
		av, err := b.Manager.Availability(ctx, int64(e.User().ID))
		if err != nil {
			if errors.Is(err, auction.ErrNotEnrolled) {
				return e.CreateMessage(discord.MessageCreate{
					Content: "You're not in the POM Balance sheet. Contact an admin to add you.",
					Flags:   discord.MessageFlagEphemeral,
				})
			}
			slog.Error("POM balance check failed",
				slog.String("type", "cmd"),
				slog.String("name", "auction start"),
				slog.Any("error", err))
			return e.CreateMessage(discord.MessageCreate{
				Content: "Could not verify your POM balance. Try again or contact an admin.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if initialBid > av.Available() {
			return e.CreateMessage(discord.MessageCreate{
				Content: fmt.Sprintf("You don't have enough POM to start at %d. Available: **%d**. (balance: %d, committed: %d)",
					initialBid, av.Available(), av.Balance, av.Committed),
				Flags: discord.MessageFlagEphemeral,
			})
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		// Thread from a message: send the seed message, then open the
		// thread on it.
		msg, err := b.Chat.SendMessage(e.ChannelID(), discord.MessageCreate{
			Content: fmt.Sprintf("Auction started for **%s** — current bid: **%d**. Bid in the thread below with `/bid <amount>`.", playerName, initialBid),
		})
		if err != nil {
			_, ferr := e.CreateFollowupMessage(discord.MessageCreate{
				Content: fmt.Sprintf("Could not create thread: %s", err),
				Flags:   discord.MessageFlagEphemeral,
			})
			return ferr
		}
		thread, err := b.Chat.CreateThread(e.ChannelID(), msg.ID, truncateRunes(playerName, config.ThreadNameMaxLen))
		if err != nil {
			_, ferr := e.CreateFollowupMessage(discord.MessageCreate{
				Content: fmt.Sprintf("Could not create thread: %s", err),
				Flags:   discord.MessageFlagEphemeral,
			})
			return ferr
		}

		a, err := b.Manager.Create(ctx, auction.StartParams{
			ThreadID:    int64(thread.ID()),
			ChannelID:   int64(e.ChannelID()),
			GuildID:     int64(*e.GuildID()),
			PlayerName:  playerName,
			OpeningBid:  initialBid,
			StarterID:   int64(e.User().ID),
			StarterName: displayName(e),
		})
		if err != nil {
			slog.Error("Failed to record new auction",
				slog.String("type", "cmd"),
				slog.String("name", "auction start"),
				slog.Int64("thread_id", int64(thread.ID())),
				slog.Any("error", err))
			_, ferr := e.CreateFollowupMessage(discord.MessageCreate{
				Content: "Thread was created but something went wrong registering the auction. Please try again or contact an admin.",
				Flags:   discord.MessageFlagEphemeral,
			})
			return ferr
		}

		embed := auction.AuctionEmbed(a, fmt.Sprintf("Auction: %s", playerName), b.Manager.Expiry(), time.Now())
		if _, err := b.Chat.SendMessage(thread.ID(), discord.MessageCreate{Embeds: []discord.Embed{embed}}); err != nil {
			slog.Warn("Failed to post countdown embed in new thread",
				slog.String("type", "cmd"),
				slog.Int64("thread_id", int64(thread.ID())),
				slog.Any("error", err))
		}
		if err := b.Chat.AddThreadMember(thread.ID(), e.User().ID); err != nil {
			slog.Debug("Could not add starter to thread",
				slog.Int64("thread_id", int64(thread.ID())),
				slog.Any("error", err))
		}
		if _, err := b.Pinned.RefreshAuctions(ctx, e.ChannelID()); err != nil {
			slog.Warn("Failed to refresh pinned auctions list",
				slog.String("type", "cmd"),
				slog.Int64("channel_id", int64(e.ChannelID())),
				slog.Any("error", err))
		}

		_, err = e.CreateFollowupMessage(discord.MessageCreate{
			Content: fmt.Sprintf("Created auction thread for **%s** — <#%d>", playerName, thread.ID()),
			Flags:   discord.MessageFlagEphemeral,
		})
		return err
	}
}

// AuctionRegisterHandler adopts a thread whose auction predates the bot. The
// caller supplies the standing bid and how many hours it has left; the stored
// clock is backdated so expiry lands at now plus those hours.
func AuctionRegisterHandler(b *auctioneer.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		playerName := data.String("player_name")
		currentBid := int64(data.Int("current_bid"))
		hoursRemaining := data.Float("hours_remaining")

		if e.GuildID() == nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "This command can only be used in a server.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		thread, err := b.Chat.Thread(e.ChannelID())
		if err != nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "Could not inspect this channel. Try again.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if thread == nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "Run `/auction register` **inside the auction thread** you want the bot to track.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if len(b.Cfg.Bot.AuctionChannels) > 0 {
			parentID := thread.ParentID()
			if parentID == nil || !allowedAuctionChannel(b.Cfg.Bot.AuctionChannels, *parentID) {
				return e.CreateMessage(discord.MessageCreate{
					Content: fmt.Sprintf("This thread is not under the designated auction channel %s. Register only threads in that channel.", channelMentions(b.Cfg.Bot.AuctionChannels)),
					Flags:   discord.MessageFlagEphemeral,
				})
			}
		}

		bidder, ok := data.OptMember("high_bidder")
		if !ok {
			return e.CreateMessage(discord.MessageCreate{
				Content: "That user is not a member of this server.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		bidderName := ""
		if bidder.Nick != nil && *bidder.Nick != "" {
			bidderName = *bidder.Nick
		} else if user, ok := data.OptUser("high_bidder"); ok {
			bidderName = user.EffectiveName()
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		existing, err := b.AuctionRepo.GetByThread(ctx, int64(thread.ID()))
		if err != nil {
			slog.Error("Failed to look up thread auction",
				slog.String("type", "cmd"),
				slog.String("name", "auction register"),
				slog.Int64("thread_id", int64(thread.ID())),
				slog.Any("error", err))
			return e.CreateMessage(discord.MessageCreate{
				Content: "Something went wrong. Please try again.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if existing != nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "This thread is already registered as an auction. The bot is already tracking it.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		channelID := int64(thread.ID())
		if parentID := thread.ParentID(); parentID != nil {
			channelID = int64(*parentID)
		}
		a, err := b.Manager.Register(ctx, auction.RegisterParams{
			ThreadID:       int64(thread.ID()),
			ChannelID:      channelID,
			GuildID:        int64(*e.GuildID()),
			PlayerName:     playerName,
			CurrentBid:     currentBid,
			BidderID:       int64(data.Snowflake("high_bidder")),
			BidderName:     bidderName,
			HoursRemaining: hoursRemaining,
		})
		if err != nil {
			slog.Error("Failed to register existing auction",
				slog.String("type", "cmd"),
				slog.String("name", "auction register"),
				slog.Int64("thread_id", int64(thread.ID())),
				slog.Any("error", err))
			return e.CreateMessage(discord.MessageCreate{
				Content: "This thread could not be registered (it may already exist in the database).",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		embed := auction.AuctionEmbed(a, fmt.Sprintf("Auction: %s (registered)", playerName), b.Manager.Expiry(), time.Now())
		if err := e.CreateMessage(discord.MessageCreate{
			Content: "This thread is now registered. The bot will track reminders, expiry, and `/bid` here.",
			Embeds:  []discord.Embed{embed},
		}); err != nil {
			return err
		}

		if parentID := thread.ParentID(); parentID != nil {
			if _, err := b.Pinned.RefreshAuctions(ctx, *parentID); err != nil {
				slog.Warn("Failed to refresh pinned auctions list",
					slog.String("type", "cmd"),
					slog.Int64("channel_id", int64(*parentID)),
					slog.Any("error", err))
			}
		}
		return nil
	}
}
