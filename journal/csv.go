package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"ctpsim/sim"
)

type CSV struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{"trade_id", "symbol", "time", "direction", "volume", "price", "is_close", "pnl", "equity"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"time", "equity", "floating_pnl"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSV{trades: tw, equity: ew, tf: tf, ef: ef}, nil
}

func (j *CSV) RecordTrade(t sim.TradePoint) error {
	err := j.trades.Write([]string{
		t.ID,
		t.Symbol,
		t.Time.Format(time.RFC3339Nano),
		t.Direction.String(),
		strconv.Itoa(t.Volume),
		f(t.Price),
		strconv.FormatBool(t.IsClose),
		f(t.PnL),
		f(t.Equity),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordEquity(e sim.EquityPoint) error {
	err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339Nano),
		f(e.Equity),
		f(e.FloatingPnL),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSV) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
