package auction

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"

	"github.com/pomleague/auctioneer/auctioneer/database/repositories"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
)

const pinnedCacheSize = 128

type pinnedCacheKey struct {
	kind      repositories.PinnedKind
	channelID snowflake.ID
}

// PinnedLists keeps one pinned overview message per channel current: the
// active-auctions list and the balances list. Lookup is three tiers deep:
// the in-process LRU, the database, then a scan of the channel's pins by
// embed title. Whatever tier hits, the slower tiers are backfilled.
type PinnedLists struct {
	chat     Chat
	auctions repositories.AuctionRepository
	pins     repositories.PinnedMessageRepository
	oracle   sheets.Oracle
	expiry   time.Duration
	cache    *lru.Cache
}

func NewPinnedLists(chat Chat, auctions repositories.AuctionRepository, pins repositories.PinnedMessageRepository, oracle sheets.Oracle, expiry time.Duration) *PinnedLists {
	cache, _ := lru.New(pinnedCacheSize)
	return &PinnedLists{
		chat:     chat,
		auctions: auctions,
		pins:     pins,
		oracle:   oracle,
		expiry:   expiry,
		cache:    cache,
	}
}

// RefreshAuctions rebuilds the active-auctions list for a channel and
// updates its pinned message. The embed is returned either way so commands
// can attach it to their own response.
func (p *PinnedLists) RefreshAuctions(ctx context.Context, channelID snowflake.ID) (discord.Embed, error) {
	active, err := p.auctions.ListActiveByChannel(ctx, int64(channelID))
	if err != nil {
		return discord.Embed{}, err
	}

	embed := ActiveAuctionsEmbed(active, p.expiry, time.Now())
	if err := p.upsert(ctx, repositories.PinnedKindAuctions, channelID, activeAuctionsTitle, embed); err != nil {
		return discord.Embed{}, err
	}
	return embed, nil
}

// RefreshBalances rebuilds the balances list from the sheet and updates its
// pinned message.
func (p *PinnedLists) RefreshBalances(ctx context.Context, channelID snowflake.ID) (discord.Embed, error) {
	rows, err := p.oracle.ListBalances(ctx)
	if err != nil {
		return discord.Embed{}, err
	}

	embed := BalancesEmbed(rows)
	if err := p.upsert(ctx, repositories.PinnedKindBalances, channelID, balancesTitle, embed); err != nil {
		return discord.Embed{}, err
	}
	return embed, nil
}

// upsert edits the channel's pinned message in place, or creates and pins a
// new one. Threads never carry pinned lists.
func (p *PinnedLists) upsert(ctx context.Context, kind repositories.PinnedKind, channelID snowflake.ID, title string, embed discord.Embed) error {
	isThread, err := p.chat.IsThread(channelID)
	if err != nil {
		return err
	}
	if isThread {
		return nil
	}

	update := discord.MessageUpdate{Embeds: &[]discord.Embed{embed}}
	key := pinnedCacheKey{kind: kind, channelID: channelID}

	// Tier 1: in-process cache
	if cached, ok := p.cache.Get(key); ok {
		messageID := cached.(snowflake.ID)
		if _, err := p.chat.EditMessage(channelID, messageID, update); err == nil {
			return nil
		}
		p.cache.Remove(key)
	}

	// Tier 2: stored message ID, survives restarts
	if stored, err := p.pins.Get(ctx, kind, int64(channelID)); err == nil && stored != 0 {
		messageID := snowflake.ID(stored)
		if _, err := p.chat.EditMessage(channelID, messageID, update); err == nil {
			p.cache.Add(key, messageID)
			return nil
		}
		if err := p.pins.Delete(ctx, kind, int64(channelID)); err != nil {
			slog.Warn("Failed to drop stale pinned message record",
				slog.String("type", "db"),
				slog.Int64("channel_id", int64(channelID)),
				slog.String("error", err.Error()))
		}
	}

	// Tier 3: scan the channel's pins for our embed by title
	if pinned, err := p.chat.PinnedMessages(channelID); err == nil {
		botID := p.chat.BotUserID()
		for _, msg := range pinned {
			if msg.Author.ID != botID || len(msg.Embeds) == 0 {
				continue
			}
			if msg.Embeds[0].Title != title {
				continue
			}
			if _, err := p.chat.EditMessage(channelID, msg.ID, update); err == nil {
				p.remember(ctx, kind, key, msg.ID)
				return nil
			}
		}
	}

	// No existing message anywhere: create and pin a fresh one
	msg, err := p.chat.SendMessage(channelID, discord.MessageCreate{Embeds: []discord.Embed{embed}})
	if err != nil {
		return err
	}
	if err := p.chat.PinMessage(channelID, msg.ID); err != nil {
		slog.Warn("Failed to pin list message",
			slog.String("type", "sys"),
			slog.Int64("channel_id", int64(channelID)),
			slog.String("error", err.Error()))
	}
	p.remember(ctx, kind, key, msg.ID)
	return nil
}

func (p *PinnedLists) remember(ctx context.Context, kind repositories.PinnedKind, key pinnedCacheKey, messageID snowflake.ID) {
	p.cache.Add(key, messageID)
	if err := p.pins.Set(ctx, kind, int64(key.channelID), int64(messageID)); err != nil {
		slog.Warn("Failed to store pinned message record",
			slog.String("type", "db"),
			slog.Int64("channel_id", int64(key.channelID)),
			slog.String("error", err.Error()))
	}
}
