package history

import "fmt"

// Store is the single owner of the retained history block. Every mutation
// rewrites the whole block through the backing Memory.
type Store struct {
	mem Memory
	st  state
}

// Open loads the retained block and returns a ready store. A missing,
// short, or marker-mismatched block is not an error: the store silently
// reinitializes to zero and rewrites the marker (cold-start recovery).
func Open(mem Memory) (*Store, error) {
	s := &Store{mem: mem}

	block, err := mem.Load()
	if err != nil || len(block) != BlockSize || block[offMarker] != Marker {
		s.st = state{}
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("initialize retained block: %w", err)
		}
		return s, nil
	}

	s.st.decode(block)
	return s, nil
}

// RecordSample folds one moisture reading (0-100) into the current day and
// persists the block. The first sample of a day seeds both running values;
// later samples clamp-extend them. The newest history slot always mirrors
// the running pair so partial-day data is visible immediately. Reaching
// wakesPerDay samples completes the day: history shifts one slot toward
// oldest and a fresh day opens in the same call. After the shift the
// newest slot still holds the completed day's pair; the next sample
// overwrites it when it seeds the new day.
func (s *Store) RecordSample(moisture uint8, wakesPerDay uint16) error {
	if s.st.wakeCount == 0 {
		s.st.runningHigh = moisture
		s.st.runningLow = moisture
	} else {
		if moisture > s.st.runningHigh {
			s.st.runningHigh = moisture
		}
		if moisture < s.st.runningLow {
			s.st.runningLow = moisture
		}
	}
	s.st.history[Days-1] = Record{High: s.st.runningHigh, Low: s.st.runningLow}

	s.st.wakeCount++
	if s.st.wakeCount >= wakesPerDay {
		for d := 0; d < Days-1; d++ {
			s.st.history[d] = s.st.history[d+1]
		}
		s.st.runningHigh = 0
		s.st.runningLow = 0
		s.st.wakeCount = 0
	}

	return s.save()
}

// History returns the 5 daily records, oldest first. Slots that have never
// been populated read as zero.
func (s *Store) History() [Days]Record {
	return s.st.history
}

// WakeCount returns the number of samples recorded in the current day.
func (s *Store) WakeCount() uint16 {
	return s.st.wakeCount
}

// Running returns the current day's running high/low pair.
func (s *Store) Running() (high, low uint8) {
	return s.st.runningHigh, s.st.runningLow
}

func (s *Store) save() error {
	return s.mem.Store(s.st.encode())
}
