package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/sahilm/fuzzy"

	"github.com/pomleague/auctioneer/auctioneer"
	"github.com/pomleague/auctioneer/auctioneer/auction"
	"github.com/pomleague/auctioneer/auctioneer/config"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
)

var Balances = discord.SlashCommandCreate{
	Name:        "balances",
	Description: "Show POM balances from the Google Sheet",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "filter",
			Description: "Show only participants whose name matches this text",
			Required:    false,
		},
	},
}

// BalancesHandler rebuilds the channel's pinned balances list and posts the
// same embed in the reply. With a filter it answers inline from the sheet
// and leaves the pinned message alone.
func BalancesHandler(b *auctioneer.Bot) handler.CommandHandler {
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

		data := e.SlashCommandInteractionData()
		if filter, ok := data.OptString("filter"); ok && filter != "" {
			rows, err := b.Oracle.ListBalances(ctx)
			if err != nil {
				_, ferr := e.CreateFollowupMessage(discord.MessageCreate{
					Content: fmt.Sprintf("Could not read balances: %s", err),
					Flags:   discord.MessageFlagEphemeral,
				})
				return ferr
			}
			embed := auction.BalancesEmbed(filterBalances(rows, filter))
			_, err = e.CreateFollowupMessage(discord.MessageCreate{
				Content: fmt.Sprintf("**POM balances** — filtered by `%s`.", filter),
				Embeds:  []discord.Embed{embed},
			})
			return err
		}

		embed, err := b.Pinned.RefreshBalances(ctx, e.ChannelID())
		if err != nil {
			_, ferr := e.CreateFollowupMessage(discord.MessageCreate{
				Content: fmt.Sprintf("Could not update pinned list: %s", err),
				Flags:   discord.MessageFlagEphemeral,
			})
			return ferr
		}

		_, err = e.CreateFollowupMessage(discord.MessageCreate{
			Content: "**POM balances** — list updated. See pinned message above for quick reference.",
			Embeds:  []discord.Embed{embed},
		})
		return err
	}
}

// filterBalances keeps rows whose participant name fuzzy-matches pattern,
// best matches first.
func filterBalances(rows []sheets.BalanceRow, pattern string) []sheets.BalanceRow {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Name
	}
	matches := fuzzy.Find(pattern, names)
	filtered := make([]sheets.BalanceRow, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, rows[m.Index])
	}
	return filtered
}
