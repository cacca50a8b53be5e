package auction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	chatmock "github.com/pomleague/auctioneer/auctioneer/auction/mock"
	"github.com/pomleague/auctioneer/auctioneer/database/models"
	repomock "github.com/pomleague/auctioneer/auctioneer/database/repositories/mock"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
	sheetmock "github.com/pomleague/auctioneer/auctioneer/sheets/mock"
)

// guildThread builds a thread fixture through the wire codec; the channel
// structs only populate through JSON.
func guildThread(t *testing.T, id snowflake.ID, parentID snowflake.ID, name string) *discord.GuildThread {
	t.Helper()
	raw := fmt.Sprintf(`{"id":%q,"type":11,"guild_id":"3001","parent_id":%q,"name":%q}`,
		id.String(), parentID.String(), name)
	var thread discord.GuildThread
	if err := json.Unmarshal([]byte(raw), &thread); err != nil {
		t.Fatalf("unmarshal thread fixture: %v", err)
	}
	return &thread
}

func completedAuction() *models.Auction {
	a := activeAuction()
	a.Status = models.AuctionStatusCompleted
	return a
}

func TestSettler_SettleAlreadyCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	chat := chatmock.NewMockChat(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	repo.EXPECT().CompleteAuction(gomock.Any(), int64(1001)).Return(nil, nil)

	s := NewSettler(repo, chat, oracle, nil, nil)
	settled, err := s.Settle(context.Background(), 1001)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if settled {
		t.Error("Settle() = true for an already-completed auction, want false")
	}
}

func TestSettler_SettleTransitionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	chat := chatmock.NewMockChat(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	repo.EXPECT().CompleteAuction(gomock.Any(), int64(1001)).Return(nil, errors.New("connection refused"))

	s := NewSettler(repo, chat, oracle, nil, nil)
	if _, err := s.Settle(context.Background(), 1001); err == nil {
		t.Fatal("Settle() expected the transition error to propagate")
	}
}

func TestSettler_Settle(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	chat := chatmock.NewMockChat(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	done := completedAuction()
	threadID := snowflake.ID(done.ThreadID)
	channelID := snowflake.ID(done.ChannelID)

	repo.EXPECT().CompleteAuction(gomock.Any(), done.ThreadID).Return(done, nil)
	gomock.InOrder(
		chat.EXPECT().
			SendMessage(threadID, gomock.Any()).
			DoAndReturn(func(_ snowflake.ID, msg discord.MessageCreate) (*discord.Message, error) {
				want := "🎉 **Auction complete!** Alice wins **Jax** for **100**. This thread is now archived and locked."
				if msg.Content != want {
					t.Errorf("thread announcement = %q, want %q", msg.Content, want)
				}
				return &discord.Message{}, nil
			}),
		chat.EXPECT().Thread(threadID).Return(guildThread(t, threadID, channelID, "Auction: Jax"), nil),
		chat.EXPECT().ArchiveThread(threadID).Return(nil),
		chat.EXPECT().
			SendMessage(channelID, gomock.Any()).
			DoAndReturn(func(_ snowflake.ID, msg discord.MessageCreate) (*discord.Message, error) {
				want := "🏆 **Auction Auction: Jax closed:** <@42> wins for **100**!"
				if msg.Content != want {
					t.Errorf("channel announcement = %q, want %q", msg.Content, want)
				}
				return &discord.Message{}, nil
			}),
	)
	oracle.EXPECT().
		AppendHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec sheets.HistoryRecord) error {
			if rec.PlayerName != "Jax" || rec.WinnerID != 42 || rec.WinnerName != "Alice" || rec.WinningBid != 100 {
				t.Errorf("history record = %+v", rec)
			}
			if rec.CompletedAt.IsZero() {
				t.Error("history record missing completion time")
			}
			return nil
		})
	oracle.EXPECT().Debit(gomock.Any(), int64(42), int64(100)).Return(true, nil)

	s := NewSettler(repo, chat, oracle, nil, nil)
	settled, err := s.Settle(context.Background(), done.ThreadID)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if !settled {
		t.Error("Settle() = false, want true")
	}
}

func TestSettler_SettleDebitFailureWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	chat := chatmock.NewMockChat(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	done := completedAuction()
	threadID := snowflake.ID(done.ThreadID)
	channelID := snowflake.ID(done.ChannelID)

	repo.EXPECT().CompleteAuction(gomock.Any(), done.ThreadID).Return(done, nil)
	chat.EXPECT().SendMessage(threadID, gomock.Any()).Return(&discord.Message{}, nil)
	chat.EXPECT().Thread(threadID).Return(nil, nil)
	chat.EXPECT().ArchiveThread(threadID).Return(nil)
	oracle.EXPECT().AppendHistory(gomock.Any(), gomock.Any()).Return(nil)
	oracle.EXPECT().Debit(gomock.Any(), int64(42), int64(100)).Return(false, nil)

	gomock.InOrder(
		chat.EXPECT().SendMessage(channelID, gomock.Any()).Return(&discord.Message{}, nil),
		chat.EXPECT().
			SendMessage(channelID, gomock.Any()).
			DoAndReturn(func(_ snowflake.ID, msg discord.MessageCreate) (*discord.Message, error) {
				want := "⚠️ **POM deduction failed** — could not deduct 100 from <@42>'s balance. Please update the POM Balance sheet manually."
				if msg.Content != want {
					t.Errorf("debit warning = %q, want %q", msg.Content, want)
				}
				return &discord.Message{}, nil
			}),
	)

	s := NewSettler(repo, chat, oracle, nil, nil)
	settled, err := s.Settle(context.Background(), done.ThreadID)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if !settled {
		t.Error("Settle() = false, want true")
	}
}

func TestSettler_SettleStepFailuresDoNotBlockDebit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	chat := chatmock.NewMockChat(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	done := completedAuction()
	threadID := snowflake.ID(done.ThreadID)
	channelID := snowflake.ID(done.ChannelID)

	repo.EXPECT().CompleteAuction(gomock.Any(), done.ThreadID).Return(done, nil)
	chat.EXPECT().SendMessage(threadID, gomock.Any()).Return(nil, errors.New("missing access"))
	chat.EXPECT().Thread(threadID).Return(nil, errors.New("missing access"))
	chat.EXPECT().ArchiveThread(threadID).Return(errors.New("missing access"))
	chat.EXPECT().SendMessage(channelID, gomock.Any()).Return(&discord.Message{}, nil)
	oracle.EXPECT().AppendHistory(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))
	oracle.EXPECT().Debit(gomock.Any(), int64(42), int64(100)).Return(true, nil)

	s := NewSettler(repo, chat, oracle, nil, nil)
	settled, err := s.Settle(context.Background(), done.ThreadID)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if !settled {
		t.Error("Settle() = false, want true")
	}
}

func TestSettler_SettleNoWinnerSkipsDebit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockAuctionRepository(ctrl)
	chat := chatmock.NewMockChat(ctrl)
	oracle := sheetmock.NewMockOracle(ctrl)

	done := completedAuction()
	done.CurrentBidderID = 0
	done.CurrentBidderName = ""
	threadID := snowflake.ID(done.ThreadID)
	channelID := snowflake.ID(done.ChannelID)

	repo.EXPECT().CompleteAuction(gomock.Any(), done.ThreadID).Return(done, nil)
	chat.EXPECT().
		SendMessage(threadID, gomock.Any()).
		DoAndReturn(func(_ snowflake.ID, msg discord.MessageCreate) (*discord.Message, error) {
			want := "🎉 **Auction complete!** Unknown wins **Jax** for **100**. This thread is now archived and locked."
			if msg.Content != want {
				t.Errorf("thread announcement = %q, want %q", msg.Content, want)
			}
			return &discord.Message{}, nil
		})
	chat.EXPECT().Thread(threadID).Return(nil, nil)
	chat.EXPECT().ArchiveThread(threadID).Return(nil)
	chat.EXPECT().SendMessage(channelID, gomock.Any()).Return(&discord.Message{}, nil)
	oracle.EXPECT().
		AppendHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec sheets.HistoryRecord) error {
			if rec.WinnerID != 0 || rec.WinnerName != "" {
				t.Errorf("history record winner = %d %q, want empty", rec.WinnerID, rec.WinnerName)
			}
			return nil
		})

	s := NewSettler(repo, chat, oracle, nil, nil)
	settled, err := s.Settle(context.Background(), done.ThreadID)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if !settled {
		t.Error("Settle() = false, want true")
	}
}
