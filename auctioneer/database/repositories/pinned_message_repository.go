package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pomleague/auctioneer/auctioneer/database/models"
	"github.com/uptrace/bun"
)

// PinnedKind selects which standing summary message a cache entry refers to.
type PinnedKind string

const (
	PinnedKindAuctions PinnedKind = "auctions"
	PinnedKindBalances PinnedKind = "balances"
)

// PinnedMessageRepository caches, per channel, the message ID of the live
// summary embed the bot keeps edited in place. Entries are hints: when one
// goes stale the pin scan rebuilds it.
type PinnedMessageRepository interface {
	Get(ctx context.Context, kind PinnedKind, channelID int64) (int64, error)
	Set(ctx context.Context, kind PinnedKind, channelID, messageID int64) error
	Delete(ctx context.Context, kind PinnedKind, channelID int64) error
}

type pinnedMessageRepository struct {
	db *bun.DB
}

func NewPinnedMessageRepository(db *bun.DB) PinnedMessageRepository {
	return &pinnedMessageRepository{db: db}
}

// Get returns the cached message ID for the channel, or 0 when none is known.
func (r *pinnedMessageRepository) Get(ctx context.Context, kind PinnedKind, channelID int64) (int64, error) {
	var messageID int64

	q := r.db.NewSelect().Column("message_id").Where("channel_id = ?", channelID)
	switch kind {
	case PinnedKindAuctions:
		q = q.Model((*models.PinnedListMessage)(nil))
	case PinnedKindBalances:
		q = q.Model((*models.PinnedBalancesMessage)(nil))
	default:
		return 0, fmt.Errorf("unknown pinned kind: %q", kind)
	}

	if err := q.Scan(ctx, &messageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get pinned message: %w", err)
	}
	return messageID, nil
}

func (r *pinnedMessageRepository) Set(ctx context.Context, kind PinnedKind, channelID, messageID int64) error {
	var err error
	switch kind {
	case PinnedKindAuctions:
		_, err = r.db.NewInsert().
			Model(&models.PinnedListMessage{ChannelID: channelID, MessageID: messageID}).
			On("CONFLICT (channel_id) DO UPDATE").
			Set("message_id = EXCLUDED.message_id").
			Exec(ctx)
	case PinnedKindBalances:
		_, err = r.db.NewInsert().
			Model(&models.PinnedBalancesMessage{ChannelID: channelID, MessageID: messageID}).
			On("CONFLICT (channel_id) DO UPDATE").
			Set("message_id = EXCLUDED.message_id").
			Exec(ctx)
	default:
		return fmt.Errorf("unknown pinned kind: %q", kind)
	}

	if err != nil {
		return fmt.Errorf("failed to store pinned message: %w", err)
	}
	return nil
}

func (r *pinnedMessageRepository) Delete(ctx context.Context, kind PinnedKind, channelID int64) error {
	var err error
	switch kind {
	case PinnedKindAuctions:
		_, err = r.db.NewDelete().
			Model((*models.PinnedListMessage)(nil)).
			Where("channel_id = ?", channelID).
			Exec(ctx)
	case PinnedKindBalances:
		_, err = r.db.NewDelete().
			Model((*models.PinnedBalancesMessage)(nil)).
			Where("channel_id = ?", channelID).
			Exec(ctx)
	default:
		return fmt.Errorf("unknown pinned kind: %q", kind)
	}

	if err != nil {
		return fmt.Errorf("failed to delete pinned message: %w", err)
	}
	return nil
}
