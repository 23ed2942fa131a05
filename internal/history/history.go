// Package history owns the retained-memory moisture history: a 15-byte
// block holding a 5-day high/low record, the wake counter for the current
// day, and the running high/low aggregate. The block survives sleep cycles
// but not necessarily full power loss, so a marker byte guards against an
// uninitialized or torn block.
package history

import "encoding/binary"

// Days is the number of daily history slots.
const Days = 5

// BlockSize is the size of the retained block in bytes.
const BlockSize = 15

// Marker is the first byte of a valid block. Anything else means the block
// is uninitialized or corrupted and gets silently rezeroed.
const Marker = 0xAA

// Block layout offsets.
const (
	offMarker      = 0  // [0]     marker
	offHistory     = 1  // [1..10] 5 x (high, low)
	offWakeCount   = 11 // [11..12] wake counter, LE uint16
	offRunningHigh = 13 // [13]    running high for current day
	offRunningLow  = 14 // [14]    running low for current day
)

// Record is one day's moisture extremes, percentages 0-100.
// High >= Low for any slot that has ever been populated.
type Record struct {
	High uint8
	Low  uint8
}

// state is the decoded block. Index 0 of history is the oldest day,
// index Days-1 the current one.
type state struct {
	history     [Days]Record
	wakeCount   uint16
	runningHigh uint8
	runningLow  uint8
}

// encode serializes the state into a fresh block, marker included.
func (s *state) encode() []byte {
	b := make([]byte, BlockSize)
	b[offMarker] = Marker
	for d := 0; d < Days; d++ {
		b[offHistory+d*2] = s.history[d].High
		b[offHistory+d*2+1] = s.history[d].Low
	}
	binary.LittleEndian.PutUint16(b[offWakeCount:], s.wakeCount)
	b[offRunningHigh] = s.runningHigh
	b[offRunningLow] = s.runningLow
	return b
}

// decode parses a block into the state. The caller has already verified
// length and marker.
func (s *state) decode(b []byte) {
	for d := 0; d < Days; d++ {
		s.history[d].High = b[offHistory+d*2]
		s.history[d].Low = b[offHistory+d*2+1]
	}
	s.wakeCount = binary.LittleEndian.Uint16(b[offWakeCount:])
	s.runningHigh = b[offRunningHigh]
	s.runningLow = b[offRunningLow]
}
