package display

import "github.com/sweeney/plantbit/internal/history"

// Frame is a 5x5 bitmap, one byte per row, bits 4..0 = columns left to
// right (bit 4 is the leftmost column).
type Frame [5]uint8

// Status icons, one row per byte.
var (
	// IconPump is a water drop, shown while watering.
	IconPump = Frame{0b00100, 0b01110, 0b11111, 0b11111, 0b01110}

	// IconBLE is a diamond, shown on connect.
	IconBLE = Frame{0b00100, 0b01010, 0b10101, 0b01010, 0b00100}

	// IconRead is a circle, shown on a button-triggered reading.
	IconRead = Frame{0b01110, 0b10001, 0b10001, 0b10001, 0b01110}

	// IconSmile greets on boot.
	IconSmile = Frame{0b00000, 0b01010, 0b00000, 0b10001, 0b01110}
)

// Set turns on the pixel at row r, column c.
func (f *Frame) Set(r, c int) {
	f[r] |= 1 << (4 - c)
}

// On reports whether the pixel at row r, column c is lit.
func (f Frame) On(r, c int) bool {
	return f[r]&(1<<(4-c)) != 0
}

// LevelLEDs maps a 0-100 percentage to 0-3 LEDs.
func LevelLEDs(pct int) int {
	if pct <= 0 {
		return 0
	}
	n := (pct + 32) / 33
	if n > 3 {
		n = 3
	}
	return n
}

// HistoryFrame draws the 5-day graph: one column per day with the newest
// day in the leftmost column, daily highs growing down from the top and
// daily lows growing up from the bottom.
func HistoryFrame(h [history.Days]history.Record) Frame {
	var f Frame
	for col := 0; col < history.Days; col++ {
		rec := h[history.Days-1-col] // newest on the left
		for r := 0; r < LevelLEDs(int(rec.High)); r++ {
			f.Set(r, col)
		}
		for r := 0; r < LevelLEDs(int(rec.Low)); r++ {
			f.Set(4-r, col)
		}
	}
	return f
}
