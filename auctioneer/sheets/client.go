// Package sheets talks to the spreadsheet that owns POM balances. The sheet
// is the source of truth: this process only reads balances, requests debits,
// and appends completed-auction history rows.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	idColumnName      = "ID"
	balanceColumnName = "POM Balance"
	nameColumnName    = "Name"

	// Column positions used when the header row is missing the named column
	fallbackIDColumn      = 0
	fallbackNameColumn    = 1
	fallbackBalanceColumn = 2
)

type Config struct {
	CredentialsPath string
	SpreadsheetID   string
	BalanceSheet    string
	HistorySheet    string
}

// BalanceRow is one participant entry from the balance sheet.
type BalanceRow struct {
	UserID  int64
	Name    string
	Balance int64
}

// HistoryRecord is one completed auction appended to the history sheet.
type HistoryRecord struct {
	PlayerName  string
	WinnerID    int64
	WinnerName  string
	WinningBid  int64
	CompletedAt time.Time
}

// Oracle is the balance authority. Balance returns nil for a participant the
// sheet does not know. Debit returns false when the participant is missing or
// the balance does not cover the amount; it never drives a balance negative.
type Oracle interface {
	Balance(ctx context.Context, userID int64) (*int64, error)
	ListBalances(ctx context.Context) ([]BalanceRow, error)
	Debit(ctx context.Context, userID, amount int64) (bool, error)
	AppendHistory(ctx context.Context, rec HistoryRecord) error
}

type client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	balanceSheet  string
	historySheet  string
}

func New(ctx context.Context, cfg Config) (Oracle, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		balanceSheet:  cfg.BalanceSheet,
		historySheet:  cfg.HistorySheet,
	}, nil
}

func (c *client) Balance(ctx context.Context, userID int64) (*int64, error) {
	values, err := c.readSheet(ctx, c.balanceSheet)
	if err != nil {
		return nil, err
	}

	rowNum, balance, found := locateUser(values, userID)
	if !found {
		return nil, nil
	}

	slog.Debug("Balance lookup",
		slog.Int64("user_id", userID),
		slog.Int64("balance", balance),
		slog.Int("row", rowNum))
	return &balance, nil
}

func (c *client) ListBalances(ctx context.Context) ([]BalanceRow, error) {
	values, err := c.readSheet(ctx, c.balanceSheet)
	if err != nil {
		return nil, err
	}

	return parseBalances(values), nil
}

func (c *client) Debit(ctx context.Context, userID, amount int64) (bool, error) {
	values, err := c.readSheet(ctx, c.balanceSheet)
	if err != nil {
		return false, err
	}

	rowNum, current, found := locateUser(values, userID)
	if !found {
		slog.Warn("Debit requested for unknown participant", slog.Int64("user_id", userID))
		return false, nil
	}
	if current < amount {
		slog.Warn("Insufficient POM for debit",
			slog.Int64("user_id", userID),
			slog.Int64("balance", current),
			slog.Int64("amount", amount))
		return false, nil
	}

	col := balanceColumn(values)
	cell := fmt.Sprintf("'%s'!%s%d", c.balanceSheet, columnLetter(col), rowNum)
	update := &sheetsapi.ValueRange{
		Values: [][]interface{}{{current - amount}},
	}

	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, cell, update).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("failed to update balance cell: %w", err)
	}

	slog.Info("POM debited",
		slog.Int64("user_id", userID),
		slog.Int64("amount", amount),
		slog.Int64("new_balance", current-amount))
	return true, nil
}

func (c *client) AppendHistory(ctx context.Context, rec HistoryRecord) error {
	winnerID := ""
	if rec.WinnerID != 0 {
		winnerID = strconv.FormatInt(rec.WinnerID, 10)
	}
	winnerName := rec.WinnerName
	if winnerName == "" {
		winnerName = "Unknown"
	}

	row := &sheetsapi.ValueRange{
		Values: [][]interface{}{{
			rec.PlayerName,
			winnerID,
			winnerName,
			rec.WinningBid,
			rec.CompletedAt.UTC().Format("2006-01-02 15:04"),
		}},
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, fmt.Sprintf("'%s'", c.historySheet), row).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append history row: %w", err)
	}
	return nil
}

func (c *client) readSheet(ctx context.Context, sheet string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, fmt.Sprintf("'%s'", sheet)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return resp.Values, nil
}

// locateUser finds the data row for a user. The returned row number is
// 1-based and includes the header row, ready for an A1-notation update.
func locateUser(values [][]interface{}, userID int64) (rowNum int, balance int64, found bool) {
	if len(values) < 2 {
		return 0, 0, false
	}

	idCol := findColumn(values[0], idColumnName, fallbackIDColumn)
	balCol := balanceColumn(values)
	want := strconv.FormatInt(userID, 10)

	for i, row := range values[1:] {
		if cellString(row, idCol) != want {
			continue
		}
		return i + 2, cellInt(row, balCol), true
	}
	return 0, 0, false
}

// parseBalances converts the raw sheet into rows, skipping entries whose ID
// is not a Discord snowflake.
func parseBalances(values [][]interface{}) []BalanceRow {
	if len(values) < 2 {
		return nil
	}

	header := values[0]
	idCol := findColumn(header, idColumnName, fallbackIDColumn)
	nameCol := findColumn(header, nameColumnName, fallbackNameColumn)
	balCol := findColumn(header, balanceColumnName, fallbackBalanceColumn)

	rows := make([]BalanceRow, 0, len(values)-1)
	for _, row := range values[1:] {
		id, err := strconv.ParseInt(cellString(row, idCol), 10, 64)
		if err != nil {
			continue
		}
		rows = append(rows, BalanceRow{
			UserID:  id,
			Name:    cellString(row, nameCol),
			Balance: cellInt(row, balCol),
		})
	}
	return rows
}

func balanceColumn(values [][]interface{}) int {
	if len(values) == 0 {
		return fallbackBalanceColumn
	}
	return findColumn(values[0], balanceColumnName, fallbackBalanceColumn)
}

func findColumn(header []interface{}, name string, fallback int) int {
	for i, cell := range header {
		if strings.EqualFold(strings.TrimSpace(fmt.Sprintf("%v", cell)), name) {
			return i
		}
	}
	return fallback
}

func cellString(row []interface{}, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[col]))
}

// cellInt parses a cell as an integer amount. Unparseable cells count as
// zero, matching how the sheet treats blank or malformed balances.
func cellInt(row []interface{}, col int) int64 {
	s := cellString(row, col)
	if s == "" {
		return 0
	}
	// Formatted cells may carry thousands separators
	s = strings.ReplaceAll(s, ",", "")
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

// columnLetter converts a zero-based column index to its A1 letter form.
func columnLetter(col int) string {
	letters := ""
	for col >= 0 {
		letters = string(rune('A'+col%26)) + letters
		col = col/26 - 1
	}
	return letters
}
