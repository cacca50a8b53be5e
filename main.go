package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pomleague/auctioneer/auctioneer"
	"github.com/pomleague/auctioneer/auctioneer/auction"
	"github.com/pomleague/auctioneer/auctioneer/commands"
	"github.com/pomleague/auctioneer/auctioneer/database"
	"github.com/pomleague/auctioneer/auctioneer/database/repositories"
	"github.com/pomleague/auctioneer/auctioneer/handlers"
	"github.com/pomleague/auctioneer/auctioneer/logger"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
	"github.com/pomleague/auctioneer/auctioneer/web"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Auctioneer Discord Bot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := auctioneer.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	// The dial probe above only checks reachability; verify credentials too
	if err := db.Ping(ctx); err != nil {
		slog.Error("Database ping failed", slog.String("error", err.Error()))
		os.Exit(-1)
	}

	slog.Info("Initializing database schema...")
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	defer db.Close()

	b := auctioneer.New(*cfg, version, commit)
	b.DB = db
	b.AuctionRepo = repositories.NewAuctionRepository(db.BunDB())
	b.PinnedRepo = repositories.NewPinnedMessageRepository(db.BunDB())

	oracle, err := sheets.New(ctx, sheets.Config{
		CredentialsPath: cfg.Sheets.CredentialsPath,
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		BalanceSheet:    cfg.Sheets.BalanceSheet,
		HistorySheet:    cfg.Sheets.HistorySheet,
	})
	if err != nil {
		slog.Error("Failed to connect to the balance sheet",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}
	b.Oracle = oracle

	webCtx, webCancel := context.WithCancel(context.Background())
	defer webCancel()
	if cfg.Web.Enabled {
		reg := prometheus.NewRegistry()
		b.Metrics = web.NewMetrics(reg)
		b.Health = web.NewHealthChecker()
		srv := web.NewServer(cfg.Web.Addr, reg, b.Health)
		go func() {
			if err := srv.Start(webCtx); err != nil {
				slog.Error("Web server failed",
					slog.String("type", "sys"),
					slog.Any("error", err))
			}
		}()
	}

	h := handler.New()
	h.Route("/auction", func(r handler.Router) {
		r.Command("/start", handlers.WrapWithLogging("auction start", commands.AuctionStartHandler(b)))
		r.Command("/register", handlers.WrapWithLogging("auction register", commands.AuctionRegisterHandler(b)))
	})
	h.Command("/bid", handlers.WrapWithLogging("bid", commands.BidHandler(b)))
	h.Command("/auctions", handlers.WrapWithLogging("auctions", commands.AuctionsHandler(b)))
	h.Command("/balances", handlers.WrapWithLogging("balances", commands.BalancesHandler(b)))
	h.Command("/discord-ids", handlers.WrapWithLogging("discord-ids", commands.DiscordIDsHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	expiry := time.Duration(cfg.Auction.ExpiryHours * float64(time.Hour))
	b.Manager = auction.NewManager(b.AuctionRepo, b.Oracle, b.Metrics, expiry)
	b.Pinned = auction.NewPinnedLists(b.Chat, b.AuctionRepo, b.PinnedRepo, b.Oracle, expiry)
	b.Settler = auction.NewSettler(b.AuctionRepo, b.Chat, b.Oracle, b.Pinned, b.Metrics)
	b.Scheduler = auction.NewScheduler(auction.SchedulerConfig{
		ReminderInterval:   time.Duration(cfg.Auction.ReminderIntervalSecs) * time.Second,
		CompletionInterval: time.Duration(cfg.Auction.CompletionIntervalSecs) * time.Second,
		RefreshInterval:    time.Duration(cfg.Auction.RefreshIntervalSecs) * time.Second,
		Thresholds:         cfg.Auction.ReminderThresholds,
		Expiry:             expiry,
	}, b.AuctionRepo, b.Chat, b.Settler, b.Metrics)

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	go func() {
		if err := b.Scheduler.Run(sweepCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.LogError("Scheduler stopped", err)
		}
	}()

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	if b.Health != nil {
		b.Health.SetReady(false)
	}
	slog.Info("Shutting down bot...")
}
