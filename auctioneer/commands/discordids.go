package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"

	"github.com/pomleague/auctioneer/auctioneer"
	"github.com/pomleague/auctioneer/auctioneer/config"
)

// Discord serves at most this many members per list request.
const memberPageLimit = 1000

var DiscordIDs = discord.SlashCommandCreate{
	Name:        "discord-ids",
	Description: "List Discord user IDs for all server members (for POM Balance sheet)",
}

// DiscordIDsHandler lists every human member's ID and display name, paginated
// and visible only to the invoker. Admins copy these into the sheet's
// discord_user_id column.
func DiscordIDsHandler(b *auctioneer.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if e.GuildID() == nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "This command can only be used in a server.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		members, err := fetchAllMembers(b, *e.GuildID())
		if err != nil {
			return e.CreateMessage(discord.MessageCreate{
				Content: "Could not fetch the member list. Try again.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		type entry struct {
			id   snowflake.ID
			name string
		}
		entries := make([]entry, 0, len(members))
		for _, m := range members {
			if m.User.Bot {
				continue
			}
			entries = append(entries, entry{id: m.User.ID, name: memberDisplayName(m)})
		}
		if len(entries) == 0 {
			return e.CreateMessage(discord.MessageCreate{
				Content: "No members found.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		sort.Slice(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
		})

		lines := make([]string, len(entries))
		for i, en := range entries {
			lines[i] = fmt.Sprintf("`%d` — %s", en.id, en.name)
		}
		totalPages := (len(lines) + config.MembersPerPage - 1) / config.MembersPerPage

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start := page * config.MembersPerPage
				end := min(start+config.MembersPerPage, len(lines))
				embed.
					SetTitle("Discord User IDs").
					SetDescription("Copy these for the POM Balance sheet (discord_user_id column)\n\n" + strings.Join(lines[start:end], "\n")).
					SetColor(config.InfoColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d members", page+1, totalPages, len(lines)), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, true)
	}
}

// fetchAllMembers pages through the guild's member list over REST. The
// gateway member cache is not populated, so the list is read fresh each time.
func fetchAllMembers(b *auctioneer.Bot, guildID snowflake.ID) ([]discord.Member, error) {
	var all []discord.Member
	var after snowflake.ID
	for {
		page, err := b.Client.Rest().GetMembers(guildID, memberPageLimit, after)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < memberPageLimit {
			return all, nil
		}
		after = page[len(page)-1].User.ID
	}
}
