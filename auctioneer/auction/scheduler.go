package auction

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/errgroup"

	"github.com/pomleague/auctioneer/auctioneer/config"
	"github.com/pomleague/auctioneer/auctioneer/database/models"
	"github.com/pomleague/auctioneer/auctioneer/database/repositories"
	"github.com/pomleague/auctioneer/auctioneer/logger"
	"github.com/pomleague/auctioneer/auctioneer/web"
)

// SchedulerConfig carries the sweep cadence and reminder thresholds.
type SchedulerConfig struct {
	ReminderInterval   time.Duration
	CompletionInterval time.Duration
	RefreshInterval    time.Duration
	// Thresholds are hours-left marks at which a reminder fires, e.g. [6, 1].
	Thresholds []float64
	Expiry     time.Duration
}

// reminderKey scopes sent-markers to one bid: a new bid changes LastBidAt,
// which resets the reminders for that thread.
type reminderKey struct {
	threadID  int64
	lastBidAt int64
}

// Scheduler drives the three background sweeps: expiry reminders, auction
// completion, and countdown embed refresh. Each sweep runs on its own
// interval and failures in one never stall the others.
//
// Reminder markers live only in memory. After a restart a reminder whose
// window has passed is simply gone; the completion sweep is the safety net.
type Scheduler struct {
	cfg     SchedulerConfig
	repo    repositories.AuctionRepository
	chat    Chat
	settler *Settler
	metrics *web.Metrics

	mu      sync.Mutex
	markers map[reminderKey]map[float64]bool
}

func NewScheduler(cfg SchedulerConfig, repo repositories.AuctionRepository, chat Chat, settler *Settler, metrics *web.Metrics) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		repo:    repo,
		chat:    chat,
		settler: settler,
		metrics: metrics,
		markers: make(map[reminderKey]map[float64]bool),
	}
}

// Run blocks until ctx is cancelled, driving all three sweep loops.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.loop(ctx, "reminders", s.cfg.ReminderInterval, s.sweepReminders) })
	g.Go(func() error { return s.loop(ctx, "completions", s.cfg.CompletionInterval, s.sweepCompletions) })
	g.Go(func() error { return s.loop(ctx, "embeds", s.cfg.RefreshInterval, s.sweepEmbeds) })
	return g.Wait()
}

func (s *Scheduler) loop(ctx context.Context, name string, interval time.Duration, sweep func(context.Context) error) error {
	slog.Info("Sweep loop started",
		slog.String("type", "sweep"),
		slog.String("name", name),
		slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			start := time.Now()
			sweepCtx, cancel := context.WithTimeout(ctx, config.SweepTimeout)
			err := sweep(sweepCtx)
			cancel()
			logger.LogSweep(name, time.Since(start), err)
			s.observeSweep(name, time.Since(start))
		}
	}
}

// withinWindow reports whether hoursLeft falls in the half-open window
// (threshold-ReminderWindowHours, threshold]. A sweep landing past the
// window leaves that reminder unsent rather than firing it late.
func withinWindow(hoursLeft, threshold float64) bool {
	return threshold-config.ReminderWindowHours < hoursLeft && hoursLeft <= threshold
}

func reminderText(playerName string, threshold float64, expiry time.Duration) string {
	if threshold >= 2 {
		return fmt.Sprintf("⏰ **%s** — about **%d hours** left on this bid. No new bid in %dh wins!",
			playerName, int(threshold), int(expiry.Hours()))
	}
	return fmt.Sprintf("⏰ **%s** — about **%d hour** left on this bid! Last chance to outbid.",
		playerName, int(threshold))
}

func (s *Scheduler) sweepReminders(ctx context.Context) error {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return err
	}
	s.pruneMarkers(active)

	for _, a := range active {
		left := Remaining(a.LastBidAt, s.cfg.Expiry, time.Now())
		hoursLeft := left.Hours()
		key := reminderKey{threadID: a.ThreadID, lastBidAt: a.LastBidAt}

		for _, threshold := range s.cfg.Thresholds {
			if s.marked(key, threshold) || !withinWindow(hoursLeft, threshold) {
				continue
			}

			msg := reminderText(a.PlayerName, threshold, s.cfg.Expiry)
			if _, err := s.chat.SendMessage(snowflake.ID(a.ThreadID), discord.MessageCreate{Content: msg}); err != nil {
				slog.Warn("Failed to send expiry reminder",
					slog.String("type", "sweep"),
					slog.Int64("thread_id", a.ThreadID),
					slog.String("player", a.PlayerName),
					slog.String("error", err.Error()))
				continue
			}

			// Marked only after a successful send so a failed sweep retries
			s.mark(key, threshold)
			s.countReminder(threshold)
			slog.Info("Expiry reminder sent",
				slog.String("type", "sweep"),
				slog.Int64("thread_id", a.ThreadID),
				slog.String("player", a.PlayerName),
				slog.Float64("threshold_hours", threshold))
		}
	}
	return nil
}

func (s *Scheduler) sweepCompletions(ctx context.Context) error {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.ActiveAuctions.Set(float64(len(active)))
	}

	for _, a := range active {
		if Remaining(a.LastBidAt, s.cfg.Expiry, time.Now()) > 0 {
			continue
		}
		if _, err := s.settler.Settle(ctx, a.ThreadID); err != nil {
			slog.Error("Failed to settle expired auction",
				slog.String("type", "sweep"),
				slog.Int64("thread_id", a.ThreadID),
				slog.String("player", a.PlayerName),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// sweepEmbeds refreshes the countdown on the newest status embed in each
// active thread.
func (s *Scheduler) sweepEmbeds(ctx context.Context) error {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return err
	}

	botID := s.chat.BotUserID()
	updated := 0
	for _, a := range active {
		msgs, err := s.chat.RecentMessages(snowflake.ID(a.ThreadID), config.EmbedScanLimit)
		if err != nil {
			slog.Warn("Failed to read thread history",
				slog.String("type", "sweep"),
				slog.Int64("thread_id", a.ThreadID),
				slog.String("error", err.Error()))
			continue
		}

		for _, msg := range msgs {
			if msg.Author.ID != botID || len(msg.Embeds) == 0 {
				continue
			}
			embed := AuctionEmbed(a, "Current bid", s.cfg.Expiry, time.Now())
			if _, err := s.chat.EditMessage(snowflake.ID(a.ThreadID), msg.ID, discord.MessageUpdate{
				Embeds: &[]discord.Embed{embed},
			}); err != nil {
				slog.Warn("Failed to refresh auction embed",
					slog.String("type", "sweep"),
					slog.Int64("thread_id", a.ThreadID),
					slog.String("player", a.PlayerName),
					slog.String("error", err.Error()))
			} else {
				updated++
			}
			break
		}
	}

	if updated > 0 {
		slog.Debug("Auction embeds refreshed",
			slog.String("type", "sweep"),
			slog.Int("count", updated))
	}
	return nil
}

func (s *Scheduler) marked(key reminderKey, threshold float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers[key][threshold]
}

func (s *Scheduler) mark(key reminderKey, threshold float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sent, ok := s.markers[key]
	if !ok {
		sent = make(map[float64]bool)
		s.markers[key] = sent
	}
	sent[threshold] = true
}

// pruneMarkers drops markers whose (thread, bid) no longer matches an active
// row. Those keys can never fire again, so dropping them cannot double-send.
func (s *Scheduler) pruneMarkers(active []*models.Auction) {
	live := make(map[reminderKey]bool, len(active))
	for _, a := range active {
		live[reminderKey{threadID: a.ThreadID, lastBidAt: a.LastBidAt}] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.markers {
		if !live[key] {
			delete(s.markers, key)
		}
	}
}

func (s *Scheduler) countReminder(threshold float64) {
	if s.metrics != nil {
		label := strconv.FormatFloat(threshold, 'f', -1, 64) + "h"
		s.metrics.RemindersSent.WithLabelValues(label).Inc()
	}
}

func (s *Scheduler) observeSweep(name string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.SweepDuration.WithLabelValues(name).Observe(d.Seconds())
	}
}
