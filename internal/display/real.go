//go:build linux

package display

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealMatrix drives a bare 5x5 LED matrix: rows are active-high outputs,
// columns active-low. A background goroutine multiplexes one row at a time;
// a full scan takes about 5ms.
type RealMatrix struct {
	chip *gpiocdev.Chip
	rows []*gpiocdev.Line
	cols []*gpiocdev.Line

	mu    sync.Mutex
	frame Frame

	stop chan struct{}
	done chan struct{}
}

// NewRealMatrix requests the row and column lines (5 each) and starts the
// refresh goroutine with a blank frame.
func NewRealMatrix(rowPins, colPins []int) (*RealMatrix, error) {
	if len(rowPins) != 5 || len(colPins) != 5 {
		return nil, fmt.Errorf("matrix needs 5 row and 5 col pins, got %d/%d", len(rowPins), len(colPins))
	}

	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	m := &RealMatrix{
		chip: chip,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	for _, pin := range rowPins {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			m.release()
			return nil, fmt.Errorf("request row pin %d: %w", pin, err)
		}
		m.rows = append(m.rows, line)
	}
	for _, pin := range colPins {
		// Columns idle high (off, active-low).
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(1))
		if err != nil {
			m.release()
			return nil, fmt.Errorf("request col pin %d: %w", pin, err)
		}
		m.cols = append(m.cols, line)
	}

	go m.refreshLoop()
	return m, nil
}

// Render replaces the shown frame.
func (m *RealMatrix) Render(f Frame) {
	m.mu.Lock()
	m.frame = f
	m.mu.Unlock()
}

// Off blanks the matrix.
func (m *RealMatrix) Off() {
	m.Render(Frame{})
}

// Close stops the refresh goroutine and releases the lines.
func (m *RealMatrix) Close() error {
	close(m.stop)
	<-m.done
	m.release()
	return nil
}

func (m *RealMatrix) refreshLoop() {
	defer close(m.done)
	for {
		select {
		case <-m.stop:
			m.blank()
			return
		default:
		}

		m.mu.Lock()
		frame := m.frame
		m.mu.Unlock()

		for r := 0; r < 5; r++ {
			for c := 0; c < 5; c++ {
				v := 1
				if frame.On(r, c) {
					v = 0 // active low
				}
				m.cols[c].SetValue(v)
			}
			m.rows[r].SetValue(1)
			time.Sleep(time.Millisecond)
			m.rows[r].SetValue(0)
		}
	}
}

func (m *RealMatrix) blank() {
	for _, r := range m.rows {
		r.SetValue(0)
	}
	for _, c := range m.cols {
		c.SetValue(1)
	}
}

func (m *RealMatrix) release() {
	for _, l := range m.rows {
		l.Close()
	}
	for _, l := range m.cols {
		l.Close()
	}
	if m.chip != nil {
		m.chip.Close()
	}
}
