package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"ctpsim/sim"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t sim.TradePoint) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, symbol, time, direction, volume, price, is_close, pnl, equity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Symbol, t.Time, t.Direction.String(), t.Volume,
		t.Price, t.IsClose, t.PnL, t.Equity,
	)
	return err
}

func (j *SQLite) RecordEquity(e sim.EquityPoint) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (time, equity, floating_pnl)
		VALUES (?, ?, ?)`,
		e.Time, e.Equity, e.FloatingPnL,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
