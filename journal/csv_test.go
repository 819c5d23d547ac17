package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ctpsim/market"
	"ctpsim/sim"
)

func newTestCSV(t *testing.T) (*CSV, string, string) {
	t.Helper()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	assert.NoError(t, err)
	return j, tradesPath, equityPath
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	assert.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	j, tradesPath, equityPath := newTestCSV(t)
	assert.NoError(t, j.Close())

	trades := readRows(t, tradesPath)
	equity := readRows(t, equityPath)

	wantTrades := []string{"trade_id", "symbol", "time", "direction", "volume", "price", "is_close", "pnl", "equity"}
	assert.Equal(t, wantTrades, trades[0])

	wantEquity := []string{"time", "equity", "floating_pnl"}
	assert.Equal(t, wantEquity, equity[0])
}

func TestCSVJournalRecordTrade(t *testing.T) {
	t.Parallel()

	j, tradesPath, _ := newTestCSV(t)

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err := j.RecordTrade(sim.TradePoint{
		ID:        "T1",
		Symbol:    "IF2401",
		Time:      ts,
		Equity:    100200,
		Price:     3510.5,
		Volume:    2,
		Direction: market.Sell,
		IsClose:   true,
		PnL:       200,
	})
	assert.NoError(t, err)
	assert.NoError(t, j.Close())

	rows := readRows(t, tradesPath)
	assert.Len(t, rows, 2)

	want := []string{
		"T1",
		"IF2401",
		ts.Format(time.RFC3339Nano),
		"Sell",
		"2",
		"3510.500000",
		"true",
		"200.000000",
		"100200.000000",
	}
	assert.Equal(t, want, rows[1])
}

func TestCSVJournalRecordEquity(t *testing.T) {
	t.Parallel()

	j, _, equityPath := newTestCSV(t)

	ts := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	err := j.RecordEquity(sim.EquityPoint{
		Time:        ts,
		Equity:      100200.5,
		FloatingPnL: 200.5,
	})
	assert.NoError(t, err)
	assert.NoError(t, j.Close())

	rows := readRows(t, equityPath)
	assert.Len(t, rows, 2)

	want := []string{
		ts.Format(time.RFC3339Nano),
		"100200.500000",
		"200.500000",
	}
	assert.Equal(t, want, rows[1])
}
