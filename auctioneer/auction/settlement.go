package auction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"

	"github.com/pomleague/auctioneer/auctioneer/database/models"
	"github.com/pomleague/auctioneer/auctioneer/database/repositories"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
	"github.com/pomleague/auctioneer/auctioneer/web"
)

// Settler finalizes expired auctions. The database transition is the only
// step allowed to abort a settlement; every Discord and sheet step after it
// is logged on failure and skipped over, so a partial outage degrades the
// announcements without losing the result.
type Settler struct {
	repo    repositories.AuctionRepository
	chat    Chat
	oracle  sheets.Oracle
	pinned  *PinnedLists
	metrics *web.Metrics
}

func NewSettler(repo repositories.AuctionRepository, chat Chat, oracle sheets.Oracle, pinned *PinnedLists, metrics *web.Metrics) *Settler {
	return &Settler{
		repo:    repo,
		chat:    chat,
		oracle:  oracle,
		pinned:  pinned,
		metrics: metrics,
	}
}

// Settle completes one auction and runs the announcement, history, debit,
// and pinned-list steps. Returns false when the auction was already
// completed by someone else; that caller does nothing further.
func (s *Settler) Settle(ctx context.Context, threadID int64) (bool, error) {
	completed, err := s.repo.CompleteAuction(ctx, threadID)
	if err != nil {
		return false, err
	}
	if completed == nil {
		return false, nil
	}

	settlementID := uuid.New().String()
	if s.metrics != nil {
		s.metrics.AuctionsCompleted.Inc()
	}
	slog.Info("Settling auction",
		slog.String("type", "sys"),
		slog.String("settlement_id", settlementID),
		slog.Int64("thread_id", completed.ThreadID),
		slog.String("player", completed.PlayerName),
		slog.String("winner", winnerDisplay(completed)),
		slog.Int64("winning_bid", completed.CurrentBid))

	threadID64 := snowflake.ID(completed.ThreadID)
	channelID64 := snowflake.ID(completed.ChannelID)

	// Announce in the thread
	announce := fmt.Sprintf(
		"🎉 **Auction complete!** %s wins **%s** for **%d**. This thread is now archived and locked.",
		winnerDisplay(completed), completed.PlayerName, completed.CurrentBid)
	if _, err := s.chat.SendMessage(threadID64, discord.MessageCreate{Content: announce}); err != nil {
		s.stepFailed(settlementID, "thread_announce", err)
	}

	// Capture the thread name while it is still cheap to resolve
	threadName := completed.PlayerName
	if thread, err := s.chat.Thread(threadID64); err == nil && thread != nil {
		threadName = thread.Name()
	}

	// Archive and lock the thread
	if err := s.chat.ArchiveThread(threadID64); err != nil {
		s.stepFailed(settlementID, "thread_archive", err)
	}

	// Announce in the parent channel
	closing := fmt.Sprintf("🏆 **Auction %s closed:** %s wins for **%d**!",
		threadName, winnerMention(completed), completed.CurrentBid)
	if _, err := s.chat.SendMessage(channelID64, discord.MessageCreate{Content: closing}); err != nil {
		s.stepFailed(settlementID, "channel_announce", err)
	}

	// Record the result on the history sheet
	if err := s.oracle.AppendHistory(ctx, sheets.HistoryRecord{
		PlayerName:  completed.PlayerName,
		WinnerID:    completed.CurrentBidderID,
		WinnerName:  completed.CurrentBidderName,
		WinningBid:  completed.CurrentBid,
		CompletedAt: time.Now(),
	}); err != nil {
		s.stepFailed(settlementID, "history", err)
	}

	// Debit the winner. A failure here needs a human: the sheet is the
	// source of truth and the bot will not retry.
	if completed.CurrentBidderID != 0 {
		ok, err := s.oracle.Debit(ctx, completed.CurrentBidderID, completed.CurrentBid)
		if err != nil || !ok {
			if err == nil {
				err = errors.New("winner missing from sheet or balance insufficient")
			}
			s.stepFailed(settlementID, "debit", err)

			warning := fmt.Sprintf(
				"⚠️ **POM deduction failed** — could not deduct %d from %s's balance. Please update the POM Balance sheet manually.",
				completed.CurrentBid, winnerMention(completed))
			if _, err := s.chat.SendMessage(channelID64, discord.MessageCreate{Content: warning}); err != nil {
				s.stepFailed(settlementID, "debit_warning", err)
			}
		}
	}

	// Drop the settled auction from the pinned overview
	if s.pinned != nil {
		if _, err := s.pinned.RefreshAuctions(ctx, channelID64); err != nil {
			s.stepFailed(settlementID, "pinned_refresh", err)
		}
	}

	slog.Info("Auction settled",
		slog.String("type", "sys"),
		slog.String("settlement_id", settlementID),
		slog.Int64("thread_id", completed.ThreadID),
		slog.String("player", completed.PlayerName))
	return true, nil
}

func (s *Settler) stepFailed(settlementID, step string, err error) {
	slog.Error("Settlement step failed",
		slog.String("type", "error"),
		slog.String("settlement_id", settlementID),
		slog.String("step", step),
		slog.String("error", err.Error()))
	if s.metrics != nil {
		s.metrics.SettlementFailures.WithLabelValues(step).Inc()
	}
}

func winnerDisplay(a *models.Auction) string {
	if a.CurrentBidderName != "" {
		return a.CurrentBidderName
	}
	return "Unknown"
}

func winnerMention(a *models.Auction) string {
	if a.CurrentBidderID != 0 {
		return fmt.Sprintf("<@%d>", a.CurrentBidderID)
	}
	if a.CurrentBidderName != "" {
		return a.CurrentBidderName
	}
	return "Unknown"
}
