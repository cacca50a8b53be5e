package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/pomleague/auctioneer/auctioneer/database/models"
	repomock "github.com/pomleague/auctioneer/auctioneer/database/repositories/mock"
	sheetmock "github.com/pomleague/auctioneer/auctioneer/sheets/mock"
)

const testExpiry = 24 * time.Hour

func activeAuction() *models.Auction {
	return &models.Auction{
		ThreadID:          1001,
		ChannelID:         2001,
		GuildID:           3001,
		PlayerName:        "Jax",
		CurrentBid:        100,
		CurrentBidderID:   42,
		CurrentBidderName: "Alice",
		CreatedAt:         1700000000,
		LastBidAt:         1700000000,
		Status:            models.AuctionStatusActive,
	}
}

func balancePtr(v int64) *int64 {
	return &v
}

func TestManager_PlaceBid(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		bidder  int64
		setup   func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle)
		wantErr error
	}{
		{
			name:   "accepted",
			amount: 200,
			bidder: 7,
			setup: func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle) {
				repo.EXPECT().GetByThread(gomock.Any(), int64(1001)).Return(activeAuction(), nil)
				oracle.EXPECT().Balance(gomock.Any(), int64(7)).Return(balancePtr(1000), nil)
				repo.EXPECT().SumCommitment(gomock.Any(), int64(7)).Return(int64(300), nil)
				updated := activeAuction()
				updated.CurrentBid = 200
				updated.CurrentBidderID = 7
				updated.CurrentBidderName = "Bob"
				repo.EXPECT().PlaceBid(gomock.Any(), int64(1001), int64(200), int64(7), "Bob").Return(updated, nil)
			},
		},
		{
			name:   "no auction in thread",
			amount: 200,
			bidder: 7,
			setup: func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle) {
				repo.EXPECT().GetByThread(gomock.Any(), int64(1001)).Return(nil, nil)
			},
			wantErr: ErrNoAuction,
		},
		{
			name:   "self outbid",
			amount: 200,
			bidder: 42,
			setup: func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle) {
				repo.EXPECT().GetByThread(gomock.Any(), int64(1001)).Return(activeAuction(), nil)
			},
			wantErr: ErrSelfOutbid,
		},
		{
			name:   "not enrolled",
			amount: 200,
			bidder: 7,
			setup: func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle) {
				repo.EXPECT().GetByThread(gomock.Any(), int64(1001)).Return(activeAuction(), nil)
				oracle.EXPECT().Balance(gomock.Any(), int64(7)).Return(nil, nil)
			},
			wantErr: ErrNotEnrolled,
		},
		{
			name:   "lost the write race",
			amount: 200,
			bidder: 7,
			setup: func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle) {
				repo.EXPECT().GetByThread(gomock.Any(), int64(1001)).Return(activeAuction(), nil)
				oracle.EXPECT().Balance(gomock.Any(), int64(7)).Return(balancePtr(1000), nil)
				repo.EXPECT().SumCommitment(gomock.Any(), int64(7)).Return(int64(0), nil)
				repo.EXPECT().PlaceBid(gomock.Any(), int64(1001), int64(200), int64(7), "Bob").Return(nil, nil)
			},
			wantErr: ErrBidRace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repomock.NewMockAuctionRepository(ctrl)
			oracle := sheetmock.NewMockOracle(ctrl)
			tt.setup(repo, oracle)

			m := NewManager(repo, oracle, nil, testExpiry)
			got, err := m.PlaceBid(context.Background(), 1001, tt.amount, tt.bidder, "Bob")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("PlaceBid() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PlaceBid() error = %v", err)
			}
			if got.CurrentBid != tt.amount {
				t.Errorf("PlaceBid() current bid = %d, want %d", got.CurrentBid, tt.amount)
			}
			if got.CurrentBidderID != tt.bidder {
				t.Errorf("PlaceBid() bidder = %d, want %d", got.CurrentBidderID, tt.bidder)
			}
		})
	}
}

func TestManager_PlaceBidTooLow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)
	repo.EXPECT().GetByThread(gomock.Any(), int64(1001)).Return(activeAuction(), nil)

	m := NewManager(repo, oracle, nil, testExpiry)
	_, err := m.PlaceBid(context.Background(), 1001, 100, 7, "Bob")

	var tooLow *BidTooLowError
	if !errors.As(err, &tooLow) {
		t.Fatalf("PlaceBid() error = %v, want BidTooLowError", err)
	}
	if tooLow.Amount != 100 || tooLow.CurrentBid != 100 {
		t.Errorf("BidTooLowError = %+v, want amount 100 against current 100", tooLow)
	}
}

func TestManager_PlaceBidCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	done := activeAuction()
	done.Status = models.AuctionStatusCompleted
	repo.EXPECT().GetByThread(gomock.Any(), int64(1001)).Return(done, nil)

	m := NewManager(repo, oracle, nil, testExpiry)
	_, err := m.PlaceBid(context.Background(), 1001, 200, 7, "Bob")

	var completed *CompletedError
	if !errors.As(err, &completed) {
		t.Fatalf("PlaceBid() error = %v, want CompletedError", err)
	}
	if completed.Auction.CurrentBidderName != "Alice" {
		t.Errorf("CompletedError winner = %q, want Alice", completed.Auction.CurrentBidderName)
	}
}

func TestManager_PlaceBidOverBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	repo.EXPECT().GetByThread(gomock.Any(), int64(1001)).Return(activeAuction(), nil)
	oracle.EXPECT().Balance(gomock.Any(), int64(7)).Return(balancePtr(500), nil)
	repo.EXPECT().SumCommitment(gomock.Any(), int64(7)).Return(int64(400), nil)

	m := NewManager(repo, oracle, nil, testExpiry)
	_, err := m.PlaceBid(context.Background(), 1001, 200, 7, "Bob")

	var over *OverBudgetError
	if !errors.As(err, &over) {
		t.Fatalf("PlaceBid() error = %v, want OverBudgetError", err)
	}
	if over.Available != 100 || over.Balance != 500 || over.Committed != 400 {
		t.Errorf("OverBudgetError = %+v, want available 100 of balance 500 with 400 committed", over)
	}
}

func TestManager_Availability(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle)
		wantAvailable int64
		wantErr       bool
		wantErrIs     error
	}{
		{
			name: "balance minus committed",
			setup: func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle) {
				oracle.EXPECT().Balance(gomock.Any(), int64(7)).Return(balancePtr(5000), nil)
				repo.EXPECT().SumCommitment(gomock.Any(), int64(7)).Return(int64(1200), nil)
			},
			wantAvailable: 3800,
		},
		{
			name: "not enrolled",
			setup: func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle) {
				oracle.EXPECT().Balance(gomock.Any(), int64(7)).Return(nil, nil)
			},
			wantErr:   true,
			wantErrIs: ErrNotEnrolled,
		},
		{
			name: "sheet unreachable",
			setup: func(repo *repomock.MockAuctionRepository, oracle *sheetmock.MockOracle) {
				oracle.EXPECT().Balance(gomock.Any(), int64(7)).Return(nil, errors.New("api timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repomock.NewMockAuctionRepository(ctrl)
			oracle := sheetmock.NewMockOracle(ctrl)
			tt.setup(repo, oracle)

			m := NewManager(repo, oracle, nil, testExpiry)
			av, err := m.Availability(context.Background(), 7)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Availability() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
				t.Fatalf("Availability() error = %v, want %v", err, tt.wantErrIs)
			}
			if tt.wantErr {
				return
			}
			if av.Available() != tt.wantAvailable {
				t.Errorf("Available() = %d, want %d", av.Available(), tt.wantAvailable)
			}
		})
	}
}

func TestManager_RegisterBackdatesLastBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	var stored *models.Auction
	repo.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a *models.Auction) error {
			stored = a
			return nil
		})

	m := NewManager(repo, oracle, nil, testExpiry)
	before := time.Now().Unix()
	got, err := m.Register(context.Background(), RegisterParams{
		ThreadID:       1001,
		ChannelID:      2001,
		GuildID:        3001,
		PlayerName:     "Jax",
		CurrentBid:     300,
		BidderID:       42,
		BidderName:     "Alice",
		HoursRemaining: 6,
	})
	after := time.Now().Unix()
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// 6h remaining on a 24h clock backdates the bid by 18h
	wantLow := before + 6*3600 - 24*3600
	wantHigh := after + 6*3600 - 24*3600
	if stored.LastBidAt < wantLow || stored.LastBidAt > wantHigh {
		t.Errorf("Register() last_bid_at = %d, want within [%d, %d]", stored.LastBidAt, wantLow, wantHigh)
	}
	if stored.CreatedAt != stored.LastBidAt {
		t.Errorf("Register() created_at = %d, want equal to last_bid_at %d", stored.CreatedAt, stored.LastBidAt)
	}
	if got.CurrentBid != 300 || got.CurrentBidderID != 42 {
		t.Errorf("Register() row = %+v, want bid 300 held by 42", got)
	}
}

func TestManager_CreateDuplicateThread(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrDuplicateThread)

	m := NewManager(repo, oracle, nil, testExpiry)
	_, err := m.Create(context.Background(), StartParams{
		ThreadID:    1001,
		ChannelID:   2001,
		GuildID:     3001,
		PlayerName:  "Jax",
		OpeningBid:  100,
		StarterID:   42,
		StarterName: "Alice",
	})

	if !errors.Is(err, ErrDuplicateThread) {
		t.Fatalf("Create() error = %v, want ErrDuplicateThread", err)
	}
}
