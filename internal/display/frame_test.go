package display

import (
	"testing"

	"github.com/sweeney/plantbit/internal/history"
)

func TestLevelLEDs(t *testing.T) {
	tests := []struct {
		pct  int
		want int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{33, 1},
		{34, 2},
		{66, 2},
		{67, 3},
		{100, 3},
	}

	for _, tt := range tests {
		if got := LevelLEDs(tt.pct); got != tt.want {
			t.Errorf("LevelLEDs(%d) = %d, want %d", tt.pct, got, tt.want)
		}
	}
}

func TestHistoryFrameNewestLeft(t *testing.T) {
	var h [history.Days]history.Record
	h[history.Days-1] = history.Record{High: 100, Low: 1} // today
	h[0] = history.Record{High: 34, Low: 0}               // oldest

	f := HistoryFrame(h)

	// Today in column 0: high 100 -> rows 0-2 lit, low 1 -> row 4 lit.
	for r := 0; r < 3; r++ {
		if !f.On(r, 0) {
			t.Errorf("today high: row %d col 0 should be lit", r)
		}
	}
	if f.On(3, 0) {
		t.Error("row 3 col 0 should be dark")
	}
	if !f.On(4, 0) {
		t.Error("today low: row 4 col 0 should be lit")
	}

	// Oldest day in column 4: high 34 -> rows 0-1, no low.
	if !f.On(0, 4) || !f.On(1, 4) {
		t.Error("oldest high: rows 0-1 col 4 should be lit")
	}
	if f.On(4, 4) {
		t.Error("oldest low: row 4 col 4 should be dark")
	}
}

func TestHistoryFrameEmpty(t *testing.T) {
	var h [history.Days]history.Record
	if f := HistoryFrame(h); f != (Frame{}) {
		t.Errorf("empty history frame = %v, want blank", f)
	}
}

func TestSetOn(t *testing.T) {
	var f Frame
	f.Set(2, 0)
	f.Set(2, 4)

	if f[2] != 0b10001 {
		t.Errorf("row 2 = %05b, want 10001", f[2])
	}
	if !f.On(2, 0) || !f.On(2, 4) || f.On(2, 2) {
		t.Error("On() disagrees with Set()")
	}
}

func TestIconsDrawable(t *testing.T) {
	for name, icon := range map[string]Frame{
		"pump": IconPump, "ble": IconBLE, "read": IconRead, "smile": IconSmile,
	} {
		lit := 0
		for r := 0; r < 5; r++ {
			for c := 0; c < 5; c++ {
				if icon.On(r, c) {
					lit++
				}
			}
		}
		if lit == 0 {
			t.Errorf("icon %s is blank", name)
		}
	}
}

func TestFakeDisplay(t *testing.T) {
	d := NewFakeDisplay()
	d.Render(IconPump)
	d.Render(IconBLE)
	d.Off()

	if len(d.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(d.Frames))
	}
	if d.Last() != IconBLE {
		t.Errorf("Last() = %v, want IconBLE", d.Last())
	}
	if d.OffCalls != 1 {
		t.Errorf("OffCalls = %d, want 1", d.OffCalls)
	}
}
