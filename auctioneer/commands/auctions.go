package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/pomleague/auctioneer/auctioneer"
	"github.com/pomleague/auctioneer/auctioneer/config"
)

var Auctions = discord.SlashCommandCreate{
	Name:        "auctions",
	Description: "Show active auction threads and refresh the pinned list in this channel",
}

// AuctionsHandler rebuilds the channel's pinned active-auctions list and
// posts the same embed in the reply.
func AuctionsHandler(b *auctioneer.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if ok, err := requireMainChannel(b, e); !ok {
			return err
		}
		if ok, err := requireAuctionChannel(b, e); !ok {
			return err
		}
		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		embed, err := b.Pinned.RefreshAuctions(ctx, e.ChannelID())
		if err != nil {
			_, ferr := e.CreateFollowupMessage(discord.MessageCreate{
				Content: fmt.Sprintf("Could not update pinned list: %s", err),
				Flags:   discord.MessageFlagEphemeral,
			})
			return ferr
		}

		_, err = e.CreateFollowupMessage(discord.MessageCreate{
			Content: "**Active auctions** — list updated. See pinned message above for quick links.",
			Embeds:  []discord.Embed{embed},
		})
		return err
	}
}
