package journal

import (
	"database/sql"
	"fmt"
	"time"

	"ctpsim/market"
	"ctpsim/sim"
)

// GetTrade returns a single recorded trade by ID.
func (j *SQLite) GetTrade(tradeID string) (sim.TradePoint, error) {
	row := j.db.QueryRow(`
		SELECT trade_id, symbol, time, direction, volume, price, is_close, pnl, equity
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return sim.TradePoint{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return sim.TradePoint{}, err
	}
	return rec, nil
}

// ListTradesBetween returns trades executed within [start, end), oldest
// first.
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]sim.TradePoint, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, symbol, time, direction, volume, price, is_close, pnl, equity
		FROM trades
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sim.TradePoint
	for rows.Next() {
		rec, err := scanTrade(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityBetween returns equity snapshots within [start, end), oldest
// first.
func (j *SQLite) ListEquityBetween(start, end time.Time) ([]sim.EquityPoint, error) {
	rows, err := j.db.Query(`
		SELECT time, equity, floating_pnl
		FROM equity
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sim.EquityPoint
	for rows.Next() {
		var rec sim.EquityPoint
		if err := rows.Scan(&rec.Time, &rec.Equity, &rec.FloatingPnL); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrade(scan func(...any) error) (sim.TradePoint, error) {
	var (
		rec       sim.TradePoint
		direction string
	)
	if err := scan(
		&rec.ID,
		&rec.Symbol,
		&rec.Time,
		&direction,
		&rec.Volume,
		&rec.Price,
		&rec.IsClose,
		&rec.PnL,
		&rec.Equity,
	); err != nil {
		return sim.TradePoint{}, err
	}

	dir, err := market.ParseDirection(direction)
	if err != nil {
		return sim.TradePoint{}, err
	}
	rec.Direction = dir
	return rec, nil
}
