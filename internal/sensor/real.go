package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RealSampler reads the moisture probe through a sysfs IIO voltage channel
// (e.g. /sys/bus/iio/devices/iio:device0/in_voltage0_raw).
type RealSampler struct {
	path     string
	rawMax   int
	count    int
	interval time.Duration
}

// NewRealSampler creates a sampler that averages count raw readings taken
// interval apart.
func NewRealSampler(path string, rawMax, count int, interval time.Duration) *RealSampler {
	return &RealSampler{
		path:     path,
		rawMax:   rawMax,
		count:    count,
		interval: interval,
	}
}

// Read averages the configured number of raw samples and returns the
// normalized wetness percentage.
func (s *RealSampler) Read() (uint8, error) {
	total := 0
	for i := 0; i < s.count; i++ {
		if i > 0 && s.interval > 0 {
			time.Sleep(s.interval)
		}
		raw, err := s.readRaw()
		if err != nil {
			return 0, err
		}
		total += raw
	}
	return Normalize(total/s.count, s.rawMax), nil
}

// Close releases nothing; the sysfs channel is opened per read.
func (s *RealSampler) Close() error {
	return nil
}

func (s *RealSampler) readRaw() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("read adc channel: %w", err)
	}
	raw, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse adc value %q: %w", strings.TrimSpace(string(data)), err)
	}
	return raw, nil
}
