package repositories

import (
	"context"
	"testing"
	"time"
)

func TestPinnedMessageRepository_RoundTrip(t *testing.T) {
	repo := NewPinnedMessageRepository(testDB(t).BunDB())
	ctx := context.Background()
	channelID := time.Now().UnixNano()

	got, err := repo.Get(ctx, PinnedKindAuctions, channelID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 0 {
		t.Errorf("Get() unknown channel = %d, want 0", got)
	}

	if err := repo.Set(ctx, PinnedKindAuctions, channelID, 900); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err = repo.Get(ctx, PinnedKindAuctions, channelID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 900 {
		t.Errorf("Get() = %d, want 900", got)
	}

	// Replacing the stored ID is an upsert, not an error.
	if err := repo.Set(ctx, PinnedKindAuctions, channelID, 901); err != nil {
		t.Fatalf("Set() replace error = %v", err)
	}
	got, err = repo.Get(ctx, PinnedKindAuctions, channelID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 901 {
		t.Errorf("Get() after replace = %d, want 901", got)
	}

	// The two kinds are stored independently per channel.
	if err := repo.Set(ctx, PinnedKindBalances, channelID, 777); err != nil {
		t.Fatalf("Set() balances error = %v", err)
	}
	got, err = repo.Get(ctx, PinnedKindAuctions, channelID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 901 {
		t.Errorf("Get() auctions after balances write = %d, want 901", got)
	}

	if err := repo.Delete(ctx, PinnedKindAuctions, channelID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err = repo.Get(ctx, PinnedKindAuctions, channelID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 0 {
		t.Errorf("Get() after delete = %d, want 0", got)
	}

	got, err = repo.Get(ctx, PinnedKindBalances, channelID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 777 {
		t.Errorf("Get() balances = %d, want 777", got)
	}
}

func TestPinnedMessageRepository_UnknownKind(t *testing.T) {
	repo := NewPinnedMessageRepository(testDB(t).BunDB())
	ctx := context.Background()

	if _, err := repo.Get(ctx, PinnedKind("bogus"), 1); err == nil {
		t.Error("Get() unknown kind error = nil, want error")
	}
	if err := repo.Set(ctx, PinnedKind("bogus"), 1, 2); err == nil {
		t.Error("Set() unknown kind error = nil, want error")
	}
	if err := repo.Delete(ctx, PinnedKind("bogus"), 1); err == nil {
		t.Error("Delete() unknown kind error = nil, want error")
	}
}
