package sim

import (
	"math/rand"
	"testing"

	"ctpsim/market"
)

func TestDecideFlatAlwaysOpens(t *testing.T) {
	d := NewDecider(rand.New(rand.NewSource(1)), 0.7, 4)

	for i := 0; i < 1000; i++ {
		intent := d.Decide(0)
		if intent.IsClose {
			t.Fatalf("draw %d: close decided while flat", i)
		}
		if intent.Volume < 1 || intent.Volume > 4 {
			t.Fatalf("draw %d: volume %d out of [1,4]", i, intent.Volume)
		}
	}
}

func TestDecideCloseDirectionOpposesPosition(t *testing.T) {
	// closeProb 1 forces a close on every draw with a position.
	d := NewDecider(rand.New(rand.NewSource(2)), 1, 4)

	for i := 0; i < 100; i++ {
		intent := d.Decide(3)
		if !intent.IsClose || intent.Direction != market.Sell {
			t.Fatalf("long position: got %+v", intent)
		}

		intent = d.Decide(-3)
		if !intent.IsClose || intent.Direction != market.Buy {
			t.Fatalf("short position: got %+v", intent)
		}
	}
}

func TestDecideCloseVolumeClamped(t *testing.T) {
	d := NewDecider(rand.New(rand.NewSource(3)), 1, 4)

	for i := 0; i < 1000; i++ {
		intent := d.Decide(2)
		if intent.Volume > 2 {
			t.Fatalf("draw %d: close volume %d exceeds position 2", i, intent.Volume)
		}
		if intent.Volume < 1 {
			t.Fatalf("draw %d: close volume %d below 1", i, intent.Volume)
		}
	}
}

func TestDecideOpenVolumeUnclamped(t *testing.T) {
	// closeProb 0 forces opens; an open against an opposite position may
	// exceed it (the reversal path).
	d := NewDecider(rand.New(rand.NewSource(4)), 0, 4)

	sawOversized := false
	for i := 0; i < 1000; i++ {
		intent := d.Decide(-1)
		if intent.IsClose {
			t.Fatalf("draw %d: close decided with closeProb 0", i)
		}
		if intent.Volume > 1 {
			sawOversized = true
		}
	}
	if !sawOversized {
		t.Fatal("expected some opens larger than the opposite position")
	}
}

func TestDecideCloseRateNearProbability(t *testing.T) {
	d := NewDecider(rand.New(rand.NewSource(5)), 0.7, 4)

	const draws = 20000
	closes := 0
	for i := 0; i < draws; i++ {
		if d.Decide(1).IsClose {
			closes++
		}
	}

	rate := float64(closes) / draws
	if rate < 0.67 || rate > 0.73 {
		t.Fatalf("close rate %.4f too far from 0.7", rate)
	}
}

func TestDecideOpenDirectionBothSides(t *testing.T) {
	d := NewDecider(rand.New(rand.NewSource(6)), 0, 4)

	buys, sells := 0, 0
	for i := 0; i < 1000; i++ {
		switch d.Decide(0).Direction {
		case market.Buy:
			buys++
		case market.Sell:
			sells++
		}
	}
	if buys == 0 || sells == 0 {
		t.Fatalf("open directions skewed: %d buys, %d sells", buys, sells)
	}
}
