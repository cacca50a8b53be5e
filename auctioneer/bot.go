package auctioneer

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"

	"github.com/pomleague/auctioneer/auctioneer/auction"
	"github.com/pomleague/auctioneer/auctioneer/database"
	"github.com/pomleague/auctioneer/auctioneer/database/repositories"
	"github.com/pomleague/auctioneer/auctioneer/logger"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
	"github.com/pomleague/auctioneer/auctioneer/web"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg         Config
	Client      bot.Client
	Paginator   *paginator.Manager
	Version     string
	Commit      string
	DB          *database.DB
	AuctionRepo repositories.AuctionRepository
	PinnedRepo  repositories.PinnedMessageRepository
	Oracle      sheets.Oracle
	Chat        auction.Chat
	Manager     *auction.Manager
	Pinned      *auction.PinnedLists
	Settler     *auction.Settler
	Scheduler   *auction.Scheduler
	Metrics     *web.Metrics
	Health      *web.HealthChecker
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMessages, gateway.IntentGuildMembers)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	b.Chat = auction.NewChat(client)
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	logger.LogSystem("Auctioneer is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithListeningActivity("/bid"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}

	if b.Health != nil {
		b.Health.SetReady(true)
	}
}
