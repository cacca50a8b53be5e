package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pomleague/auctioneer/auctioneer/database/models"
	"github.com/uptrace/bun"
)

// ErrDuplicateThread is returned when an insert collides with an existing
// auction row. A thread hosts at most one auction, ever.
var ErrDuplicateThread = errors.New("auction already exists for this thread")

type AuctionRepository interface {
	Create(ctx context.Context, auction *models.Auction) error
	Register(ctx context.Context, auction *models.Auction) error
	GetByThread(ctx context.Context, threadID int64) (*models.Auction, error)
	PlaceBid(ctx context.Context, threadID, amount, bidderID int64, bidderName string) (*models.Auction, error)
	CompleteAuction(ctx context.Context, threadID int64) (*models.Auction, error)
	ListActive(ctx context.Context) ([]*models.Auction, error)
	ListActiveByChannel(ctx context.Context, channelID int64) ([]*models.Auction, error)
	SumCommitment(ctx context.Context, bidderID int64) (int64, error)
}

type auctionRepository struct {
	db *bun.DB
}

func NewAuctionRepository(db *bun.DB) AuctionRepository {
	return &auctionRepository{db: db}
}

func (r *auctionRepository) Create(ctx context.Context, auction *models.Auction) error {
	now := time.Now().Unix()
	auction.CreatedAt = now
	auction.LastBidAt = now
	auction.Status = models.AuctionStatusActive

	return r.insert(ctx, auction)
}

// Register inserts a row with caller-supplied timestamps, used to adopt an
// auction that predates the bot. Duplicate rejection matches Create.
func (r *auctionRepository) Register(ctx context.Context, auction *models.Auction) error {
	auction.Status = models.AuctionStatusActive

	return r.insert(ctx, auction)
}

func (r *auctionRepository) insert(ctx context.Context, auction *models.Auction) error {
	res, err := r.db.NewInsert().
		Model(auction).
		On("CONFLICT (thread_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create auction: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrDuplicateThread
	}
	return nil
}

func (r *auctionRepository) GetByThread(ctx context.Context, threadID int64) (*models.Auction, error) {
	auction := new(models.Auction)
	err := r.db.NewSelect().
		Model(auction).
		Where("thread_id = ?", threadID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return auction, nil
}

// PlaceBid applies a bid as a single conditional update. Every precondition
// the caller checked against a read is re-validated in the WHERE clause, so
// two bids evaluated against the same stale row cannot both land. A nil
// result means the row no longer satisfied the preconditions at write time.
func (r *auctionRepository) PlaceBid(ctx context.Context, threadID, amount, bidderID int64, bidderName string) (*models.Auction, error) {
	res, err := r.db.NewUpdate().
		Model((*models.Auction)(nil)).
		Set("current_bid = ?", amount).
		Set("current_bidder_id = ?", bidderID).
		Set("current_bidder_name = ?", bidderName).
		Set("last_bid_at = ?", time.Now().Unix()).
		Where("thread_id = ?", threadID).
		Where("status = ?", models.AuctionStatusActive).
		Where("current_bid < ?", amount).
		Where("current_bidder_id IS DISTINCT FROM ?", bidderID).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to place bid: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, nil
	}

	return r.GetByThread(ctx, threadID)
}

// CompleteAuction flips active to completed. The status condition makes the
// transition idempotent: a nil result means another sweep already completed
// the auction (or the row is missing) and the caller must not settle again.
func (r *auctionRepository) CompleteAuction(ctx context.Context, threadID int64) (*models.Auction, error) {
	res, err := r.db.NewUpdate().
		Model((*models.Auction)(nil)).
		Set("status = ?", models.AuctionStatusCompleted).
		Where("thread_id = ?", threadID).
		Where("status = ?", models.AuctionStatusActive).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to complete auction: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, nil
	}

	auction, err := r.GetByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	slog.Info("Auction completed",
		slog.String("type", "db"),
		slog.Int64("thread_id", threadID),
		slog.String("player", auction.PlayerName),
		slog.Int64("winning_bid", auction.CurrentBid))

	return auction, nil
}

func (r *auctionRepository) ListActive(ctx context.Context) ([]*models.Auction, error) {
	var auctions []*models.Auction

	err := r.db.NewSelect().
		Model(&auctions).
		Where("status = ?", models.AuctionStatusActive).
		Order("last_bid_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get active auctions: %w", err)
	}

	return auctions, nil
}

func (r *auctionRepository) ListActiveByChannel(ctx context.Context, channelID int64) ([]*models.Auction, error) {
	var auctions []*models.Auction

	err := r.db.NewSelect().
		Model(&auctions).
		Where("status = ?", models.AuctionStatusActive).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get active auctions for channel: %w", err)
	}

	return auctions, nil
}

// SumCommitment totals the bids a participant currently leads across all
// active auctions. Always computed fresh from the table, never cached.
func (r *auctionRepository) SumCommitment(ctx context.Context, bidderID int64) (int64, error) {
	var total int64

	err := r.db.NewSelect().
		Model((*models.Auction)(nil)).
		ColumnExpr("COALESCE(SUM(current_bid), 0)").
		Where("status = ?", models.AuctionStatusActive).
		Where("current_bidder_id = ?", bidderID).
		Scan(ctx, &total)

	if err != nil {
		return 0, fmt.Errorf("failed to sum commitment: %w", err)
	}

	return total, nil
}
