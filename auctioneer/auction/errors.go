package auction

import (
	"errors"
	"fmt"

	"github.com/pomleague/auctioneer/auctioneer/database/models"
	"github.com/pomleague/auctioneer/auctioneer/database/repositories"
)

var (
	// ErrDuplicateThread is returned when a thread already carries an auction.
	ErrDuplicateThread = repositories.ErrDuplicateThread

	// ErrNoAuction is returned when a thread has no auction row at all.
	ErrNoAuction = errors.New("no auction for this thread")

	// ErrSelfOutbid is returned when a bidder tries to raise their own high bid.
	ErrSelfOutbid = errors.New("bidder already holds the high bid")

	// ErrNotEnrolled is returned when a participant has no row in the balance sheet.
	ErrNotEnrolled = errors.New("participant not in the balance sheet")

	// ErrBidRace is returned when a bid passed validation but lost the write,
	// either to a concurrent higher bid or to completion.
	ErrBidRace = errors.New("bid superseded by a concurrent update")
)

// CompletedError reports a bid against an auction that has already settled.
// It carries the row so callers can name the winner.
type CompletedError struct {
	Auction *models.Auction
}

func (e *CompletedError) Error() string {
	return fmt.Sprintf("auction for %s already completed at %d", e.Auction.PlayerName, e.Auction.CurrentBid)
}

// BidTooLowError reports a bid at or under the current high bid.
type BidTooLowError struct {
	Amount     int64
	CurrentBid int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid %d not higher than current bid %d", e.Amount, e.CurrentBid)
}

// OverBudgetError reports a bid exceeding the bidder's available POM.
// Available is Balance minus Committed at the time of the check.
type OverBudgetError struct {
	Amount    int64
	Available int64
	Balance   int64
	Committed int64
}

func (e *OverBudgetError) Error() string {
	return fmt.Sprintf("bid %d exceeds available POM %d (balance %d, committed %d)", e.Amount, e.Available, e.Balance, e.Committed)
}
