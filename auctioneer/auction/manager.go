// Package auction implements the auction lifecycle: opening threads, taking
// bids against POM budgets, counting down, and settling winners.
package auction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pomleague/auctioneer/auctioneer/database/models"
	"github.com/pomleague/auctioneer/auctioneer/database/repositories"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
	"github.com/pomleague/auctioneer/auctioneer/web"
)

// Availability is a participant's POM position at a moment in time. The
// balance comes from the sheet, the committed total from active high bids.
// Neither is cached between checks.
type Availability struct {
	Balance   int64
	Committed int64
}

func (a Availability) Available() int64 {
	return a.Balance - a.Committed
}

// Manager coordinates auction writes against the ledger and the balance
// oracle. All bid validation happens here; the repository re-validates at
// write time so concurrent bids cannot both win.
type Manager struct {
	repo    repositories.AuctionRepository
	oracle  sheets.Oracle
	metrics *web.Metrics
	expiry  time.Duration
}

func NewManager(repo repositories.AuctionRepository, oracle sheets.Oracle, metrics *web.Metrics, expiry time.Duration) *Manager {
	return &Manager{
		repo:    repo,
		oracle:  oracle,
		metrics: metrics,
		expiry:  expiry,
	}
}

// Expiry is the silence window after which the standing high bid wins.
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// Availability reads the participant's sheet balance and their committed
// total fresh. Returns ErrNotEnrolled when the sheet has no row for them.
func (m *Manager) Availability(ctx context.Context, userID int64) (Availability, error) {
	balance, err := m.oracle.Balance(ctx, userID)
	if err != nil {
		return Availability{}, fmt.Errorf("failed to read balance: %w", err)
	}
	if balance == nil {
		return Availability{}, ErrNotEnrolled
	}

	committed, err := m.repo.SumCommitment(ctx, userID)
	if err != nil {
		return Availability{}, fmt.Errorf("failed to sum commitments: %w", err)
	}

	return Availability{Balance: *balance, Committed: committed}, nil
}

// EnsureAffordable rejects an amount the participant cannot cover with
// uncommitted POM.
func (m *Manager) EnsureAffordable(ctx context.Context, userID, amount int64) error {
	av, err := m.Availability(ctx, userID)
	if err != nil {
		return err
	}
	if amount > av.Available() {
		return &OverBudgetError{
			Amount:    amount,
			Available: av.Available(),
			Balance:   av.Balance,
			Committed: av.Committed,
		}
	}
	return nil
}

// StartParams describes a new auction. The starter places the opening bid
// and holds it until outbid.
type StartParams struct {
	ThreadID    int64
	ChannelID   int64
	GuildID     int64
	PlayerName  string
	OpeningBid  int64
	StarterID   int64
	StarterName string
}

// Create opens a new auction with the starter as high bidder. Returns
// ErrDuplicateThread when the thread already carries one.
func (m *Manager) Create(ctx context.Context, p StartParams) (*models.Auction, error) {
	a := &models.Auction{
		ThreadID:          p.ThreadID,
		ChannelID:         p.ChannelID,
		GuildID:           p.GuildID,
		PlayerName:        p.PlayerName,
		CurrentBid:        p.OpeningBid,
		CurrentBidderID:   p.StarterID,
		CurrentBidderName: p.StarterName,
	}
	if err := m.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	m.countCreated()
	slog.Info("Auction created",
		slog.String("type", "sys"),
		slog.Int64("thread_id", a.ThreadID),
		slog.String("player", a.PlayerName),
		slog.Int64("opening_bid", a.CurrentBid))
	return a, nil
}

// RegisterParams describes a pre-existing auction thread being brought under
// tracking. HoursRemaining positions the countdown: the stored last-bid time
// is backdated so that the bid expires that many hours from now.
type RegisterParams struct {
	ThreadID       int64
	ChannelID      int64
	GuildID        int64
	PlayerName     string
	CurrentBid     int64
	BidderID       int64
	BidderName     string
	HoursRemaining float64
}

// Register adopts an existing thread. Timestamps are derived from
// HoursRemaining rather than stamped with now, and no budget check is made:
// the standing bid predates tracking.
func (m *Manager) Register(ctx context.Context, p RegisterParams) (*models.Auction, error) {
	now := time.Now().Unix()
	lastBidAt := now + int64(p.HoursRemaining*3600) - int64(m.expiry.Seconds())

	a := &models.Auction{
		ThreadID:          p.ThreadID,
		ChannelID:         p.ChannelID,
		GuildID:           p.GuildID,
		PlayerName:        p.PlayerName,
		CurrentBid:        p.CurrentBid,
		CurrentBidderID:   p.BidderID,
		CurrentBidderName: p.BidderName,
		CreatedAt:         lastBidAt,
		LastBidAt:         lastBidAt,
	}
	if err := m.repo.Register(ctx, a); err != nil {
		return nil, err
	}

	slog.Info("Auction registered",
		slog.String("type", "sys"),
		slog.Int64("thread_id", a.ThreadID),
		slog.String("player", a.PlayerName),
		slog.Float64("hours_remaining", p.HoursRemaining))
	return a, nil
}

// PlaceBid validates and records a bid. Validation order matches what the
// bidder sees: auction exists, still active, amount beats the current bid,
// not raising their own bid, and covered by uncommitted POM. The final write
// re-checks everything, so a nil row after a clean validation pass means a
// concurrent update won and the caller should report ErrBidRace.
func (m *Manager) PlaceBid(ctx context.Context, threadID, amount, bidderID int64, bidderName string) (*models.Auction, error) {
	a, err := m.repo.GetByThread(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up auction: %w", err)
	}
	if a == nil {
		m.countRejected("no_auction")
		return nil, ErrNoAuction
	}
	if a.IsCompleted() {
		m.countRejected("completed")
		return nil, &CompletedError{Auction: a}
	}
	if amount <= a.CurrentBid {
		m.countRejected("too_low")
		return nil, &BidTooLowError{Amount: amount, CurrentBid: a.CurrentBid}
	}
	if a.CurrentBidderID == bidderID {
		m.countRejected("self_outbid")
		return nil, ErrSelfOutbid
	}

	if err := m.EnsureAffordable(ctx, bidderID, amount); err != nil {
		var over *OverBudgetError
		switch {
		case errors.Is(err, ErrNotEnrolled):
			m.countRejected("not_enrolled")
		case errors.As(err, &over):
			m.countRejected("over_budget")
		}
		return nil, err
	}

	updated, err := m.repo.PlaceBid(ctx, threadID, amount, bidderID, bidderName)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		m.countRejected("race")
		return nil, ErrBidRace
	}

	m.countAccepted()
	slog.Info("Bid placed",
		slog.String("type", "sys"),
		slog.Int64("thread_id", threadID),
		slog.String("player", updated.PlayerName),
		slog.Int64("amount", amount),
		slog.String("bidder", bidderName))
	return updated, nil
}

func (m *Manager) countAccepted() {
	if m.metrics != nil {
		m.metrics.BidsAccepted.Inc()
	}
}

func (m *Manager) countRejected(reason string) {
	if m.metrics != nil {
		m.metrics.BidsRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Manager) countCreated() {
	if m.metrics != nil {
		m.metrics.AuctionsCreated.Inc()
	}
}
