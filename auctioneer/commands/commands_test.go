package commands

import (
	"errors"
	"reflect"
	"testing"

	"github.com/disgoorg/snowflake/v2"

	"github.com/pomleague/auctioneer/auctioneer/auction"
	"github.com/pomleague/auctioneer/auctioneer/database/models"
	"github.com/pomleague/auctioneer/auctioneer/sheets"
)

func TestAllowedAuctionChannel(t *testing.T) {
	tests := []struct {
		name     string
		channels []snowflake.ID
		id       snowflake.ID
		want     bool
	}{
		{
			name:     "no channels configured allows any",
			channels: nil,
			id:       123,
			want:     true,
		},
		{
			name:     "listed channel allowed",
			channels: []snowflake.ID{123, 456},
			id:       456,
			want:     true,
		},
		{
			name:     "unlisted channel rejected",
			channels: []snowflake.ID{123, 456},
			id:       789,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := allowedAuctionChannel(tt.channels, tt.id); got != tt.want {
				t.Errorf("allowedAuctionChannel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChannelMentions(t *testing.T) {
	tests := []struct {
		name     string
		channels []snowflake.ID
		want     string
	}{
		{
			name:     "single channel",
			channels: []snowflake.ID{123},
			want:     "<#123>",
		},
		{
			name:     "multiple channels",
			channels: []snowflake.ID{123, 456},
			want:     "<#123>, <#456>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := channelMentions(tt.channels); got != tt.want {
				t.Errorf("channelMentions() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{
			name: "under the limit",
			s:    "Jax",
			max:  100,
			want: "Jax",
		},
		{
			name: "exactly at the limit",
			s:    "abcde",
			max:  5,
			want: "abcde",
		},
		{
			name: "over the limit",
			s:    "abcdef",
			max:  5,
			want: "abcde",
		},
		{
			name: "counts runes not bytes",
			s:    "Дмитрий",
			max:  4,
			want: "Дмит",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateRunes(tt.s, tt.max); got != tt.want {
				t.Errorf("truncateRunes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBidErrorText(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		amount int64
		want   string
	}{
		{
			name:   "no auction",
			err:    auction.ErrNoAuction,
			amount: 50,
			want:   "This thread is not an active auction. Use `/bid` only inside a thread created by `/auction start`.",
		},
		{
			name: "completed names the winner",
			err: &auction.CompletedError{Auction: &models.Auction{
				CurrentBidderName: "Alice",
				CurrentBid:        100,
			}},
			amount: 150,
			want:   "This auction is completed and was won by Alice for 100. Use `/bid` only inside an active auction thread.",
		},
		{
			name:   "too low names both amounts",
			err:    &auction.BidTooLowError{Amount: 50, CurrentBid: 100},
			amount: 50,
			want:   "Your bid **50** must be **higher** than the current bid of **100**.",
		},
		{
			name:   "self outbid",
			err:    auction.ErrSelfOutbid,
			amount: 150,
			want:   "You can't raise your own bid. Wait for someone else to outbid you.",
		},
		{
			name:   "not enrolled",
			err:    auction.ErrNotEnrolled,
			amount: 150,
			want:   "You're not in the POM Balance sheet. Contact an admin to add you.",
		},
		{
			name:   "over budget breaks down the shortfall",
			err:    &auction.OverBudgetError{Amount: 900, Available: 100, Balance: 500, Committed: 400},
			amount: 900,
			want:   "You don't have enough POM. Available: **100** (balance: 500, committed to other bids: 400).",
		},
		{
			name:   "lost race",
			err:    auction.ErrBidRace,
			amount: 150,
			want:   "Could not update bid. Try again.",
		},
		{
			name:   "unclassified error reads as balance check failure",
			err:    errors.New("sheet unavailable"),
			amount: 150,
			want:   "Could not verify your POM balance. Try again or contact an admin.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bidErrorText(tt.err, tt.amount); got != tt.want {
				t.Errorf("bidErrorText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterBalances(t *testing.T) {
	rows := []sheets.BalanceRow{
		{UserID: 1, Name: "Alice", Balance: 5000},
		{UserID: 2, Name: "Bob", Balance: 300},
		{UserID: 3, Name: "Alicia", Balance: 200},
	}

	got := filterBalances(rows, "bob")
	want := []sheets.BalanceRow{{UserID: 2, Name: "Bob", Balance: 300}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filterBalances(bob) = %v, want %v", got, want)
	}

	got = filterBalances(rows, "ali")
	if len(got) != 2 {
		t.Fatalf("filterBalances(ali) returned %d rows, want 2", len(got))
	}
	for _, row := range got {
		if row.Name != "Alice" && row.Name != "Alicia" {
			t.Errorf("filterBalances(ali) matched %q", row.Name)
		}
	}

	if got := filterBalances(rows, "zzz"); len(got) != 0 {
		t.Errorf("filterBalances(zzz) returned %d rows, want 0", len(got))
	}
}
