// Package sensor provides moisture sampling with hardware abstraction.
// The real implementation averages raw readings from a sysfs IIO ADC
// channel and normalizes them to a wetness percentage. The fake returns
// scripted percentages for tests.
package sensor

// Sampler reads soil moisture as a percentage 0-100.
type Sampler interface {
	Read() (uint8, error)

	// Close releases sensor resources.
	Close() error
}

// Normalize maps an averaged raw ADC value to a wetness percentage.
// Higher resistance (dry soil) reads as a lower raw value on the voltage
// divider, so the raw fraction is inverted. Result is clamped to 0-100.
func Normalize(raw, rawMax int) uint8 {
	if rawMax <= 0 {
		return 0
	}
	pct := 100 - raw*100/rawMax
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return uint8(pct)
}
