package auctioneer

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log     LogConfig     `toml:"log"`
	Bot     BotConfig     `toml:"bot"`
	DB      DBConfig      `toml:"db"`
	Sheets  SheetsConfig  `toml:"sheets"`
	Auction AuctionConfig `toml:"auction"`
	Web     WebConfig     `toml:"web"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
	// Channels where auction commands are allowed. Empty means any channel.
	AuctionChannels []snowflake.ID `toml:"auction_channels"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type SheetsConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
	BalanceSheet    string `toml:"balance_sheet"`
	HistorySheet    string `toml:"history_sheet"`
}

type AuctionConfig struct {
	ExpiryHours            float64   `toml:"expiry_hours"`
	ReminderIntervalSecs   int       `toml:"reminder_interval_secs"`
	CompletionIntervalSecs int       `toml:"completion_interval_secs"`
	RefreshIntervalSecs    int       `toml:"refresh_interval_secs"`
	ReminderThresholds     []float64 `toml:"reminder_thresholds"`
}

type WebConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

func (c *Config) applyDefaults() {
	if c.Sheets.BalanceSheet == "" {
		c.Sheets.BalanceSheet = "POM Balance"
	}
	if c.Sheets.HistorySheet == "" {
		c.Sheets.HistorySheet = "Completed Auctions"
	}
	if c.Auction.ExpiryHours <= 0 {
		c.Auction.ExpiryHours = 24
	}
	if c.Auction.ReminderIntervalSecs <= 0 {
		c.Auction.ReminderIntervalSecs = 300
	}
	if c.Auction.CompletionIntervalSecs <= 0 {
		c.Auction.CompletionIntervalSecs = 60
	}
	if c.Auction.RefreshIntervalSecs <= 0 {
		c.Auction.RefreshIntervalSecs = 60
	}
	if len(c.Auction.ReminderThresholds) == 0 {
		c.Auction.ReminderThresholds = []float64{6, 1}
	}
	if c.Web.Addr == "" {
		c.Web.Addr = ":9090"
	}
}
