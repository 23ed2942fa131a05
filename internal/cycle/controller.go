// Package cycle contains the wake-cycle state machine: Sampling ->
// ActiveWindow -> WindowClosed -> Idle, forever. The controller is the
// single thread of control and the only writer of persistent state; buttons
// and BLE characteristic writes are consumed as polled event sources, once
// per tick. Time is injectable for tests.
package cycle

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/plantbit/internal/ble"
	"github.com/sweeney/plantbit/internal/button"
	"github.com/sweeney/plantbit/internal/display"
	"github.com/sweeney/plantbit/internal/history"
	"github.com/sweeney/plantbit/internal/pump"
	"github.com/sweeney/plantbit/internal/sensor"
	"github.com/sweeney/plantbit/internal/telemetry"
)

const secondsPerDay = 24 * 3600

// Sleep-interval bounds accepted over BLE, in seconds.
const (
	minSleepSeconds = 10
	maxSleepSeconds = 3600
)

// Config holds the controller timings. Zero fields take the stock values.
type Config struct {
	// SleepInterval is the initial interval between wake cycles and
	// determines wakesPerDay for history rollover.
	SleepInterval time.Duration

	// ActiveWindow is the base length of the post-wake window.
	ActiveWindow time.Duration

	// EventExtend is granted for button events.
	EventExtend time.Duration

	// BLEExtend is granted for connect, remote commands, live connections,
	// and as a disconnect grace.
	BLEExtend time.Duration

	// ExtendMargin keeps a live connection from re-extending the deadline
	// on every poll tick: an extension only fires when the remaining time
	// has dropped below the grant minus this margin.
	ExtendMargin time.Duration

	// PumpDefault is the button-triggered watering duration.
	PumpDefault time.Duration

	// PumpCooldown is how long after watering readings stay unreliable.
	PumpCooldown time.Duration

	// IconFlash is how long status icons stay up.
	IconFlash time.Duration

	// Poll is the active-window tick (buttons, display responsiveness).
	Poll time.Duration

	// BLEPoll is the coarser cadence for BLE checks.
	BLEPoll time.Duration

	// IdlePoll is the button-poll cadence during idle sleep.
	IdlePoll time.Duration
}

func (c Config) withDefaults() Config {
	def := func(d *time.Duration, v time.Duration) {
		if *d == 0 {
			*d = v
		}
	}
	def(&c.SleepInterval, 60*time.Second)
	def(&c.ActiveWindow, 15*time.Second)
	def(&c.EventExtend, 5*time.Second)
	def(&c.BLEExtend, 30*time.Second)
	def(&c.ExtendMargin, time.Second)
	def(&c.PumpDefault, 2500*time.Millisecond)
	def(&c.PumpCooldown, 10*time.Second)
	def(&c.IconFlash, time.Second)
	def(&c.Poll, 10*time.Millisecond)
	def(&c.BLEPoll, 100*time.Millisecond)
	def(&c.IdlePoll, 100*time.Millisecond)
	return c
}

// Controller runs the wake cycles of one device.
type Controller struct {
	cfg     Config
	store   *history.Store
	adapter ble.Adapter
	sampler sensor.Sampler
	pump    pump.Actuator
	buttons button.Source
	disp    display.Display
	pub     telemetry.Publisher

	now   func() time.Time
	sleep func(time.Duration)

	// sleepInterval is the current (possibly renegotiated) interval.
	sleepInterval time.Duration

	// lastPump gates sampling; readings too soon after watering are wet
	// nonsense and are skipped.
	lastPump  time.Time
	hasPumped bool

	// lastSeen is the last moisture byte this controller itself published
	// or observed; an externally-written byte that differs is a refresh
	// request. A same-value rewrite is deliberately undetectable.
	lastSeen uint8
}

// New creates a Controller. A nil publisher disables telemetry and a nil
// display discards frames.
func New(cfg Config, store *history.Store, adapter ble.Adapter, sampler sensor.Sampler,
	actuator pump.Actuator, buttons button.Source, disp display.Display, pub telemetry.Publisher) *Controller {

	if pub == nil {
		pub = telemetry.NopPublisher{}
	}
	if disp == nil {
		disp = display.Nop{}
	}
	cfg = cfg.withDefaults()

	return &Controller{
		cfg:           cfg,
		store:         store,
		adapter:       adapter,
		sampler:       sampler,
		pump:          actuator,
		buttons:       buttons,
		disp:          disp,
		pub:           pub,
		now:           time.Now,
		sleep:         time.Sleep,
		sleepInterval: cfg.SleepInterval,
	}
}

// SleepInterval returns the current wake interval, which a BLE client may
// have renegotiated.
func (c *Controller) SleepInterval() time.Duration {
	return c.sleepInterval
}

// Run executes wake cycles until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	c.disp.Render(display.IconSmile)
	c.sleep(c.cfg.IconFlash)

	for ctx.Err() == nil {
		c.RunActiveWindow(ctx)
		if ctx.Err() != nil {
			break
		}
		c.Idle(ctx)
	}
	c.disp.Off()
}

// RunActiveWindow performs one wake: take a sample, advertise, serve button
// and BLE events until the deadline lapses, then close the window.
func (c *Controller) RunActiveWindow(ctx context.Context) {
	log.Printf("wake: interval=%v wakes/day=%d", c.sleepInterval, c.wakesPerDay())

	c.sampleAndPublish()
	deadline := c.now().Add(c.cfg.ActiveWindow)

	if err := c.adapter.StartAdvertising(); err != nil {
		log.Printf("advertise error (retrying next wake): %v", err)
	}

	wasConnected := false
	var lastBLECheck time.Time

	for c.now().Before(deadline) {
		if ctx.Err() != nil {
			break
		}

		samplePressed, pumpPressed, err := c.buttons.Read()
		if err != nil {
			log.Printf("button read error: %v", err)
		} else {
			if samplePressed {
				log.Printf("button: fresh reading")
				c.flashIcon(display.IconRead)
				c.sampleAndPublish()
				deadline = c.extendDeadline(deadline, c.cfg.EventExtend)
				c.waitRelease(func(s, p bool) bool { return s })
			}
			if pumpPressed {
				log.Printf("button: watering")
				c.runPump(c.cfg.PumpDefault, "button")
				c.sampleAndPublish()
				deadline = c.extendDeadline(deadline, c.cfg.EventExtend)
				c.waitRelease(func(s, p bool) bool { return p })
			}
		}

		if c.now().Sub(lastBLECheck) >= c.cfg.BLEPoll {
			lastBLECheck = c.now()
			deadline = c.checkBLE(deadline, &wasConnected)
		}

		c.sleep(c.cfg.Poll)
	}

	if err := c.adapter.StopAdvertising(); err != nil {
		log.Printf("stop advertising error: %v", err)
	}
	if err := c.adapter.DisconnectAll(); err != nil {
		log.Printf("disconnect error: %v", err)
	}
	// A pump command that arrived too late to be honored must not fire on
	// the next wake.
	c.adapter.Characteristics().ClearPump()
	log.Printf("active window closed")
}

// Idle waits out the sleep interval, polling buttons coarsely so a press
// wakes the device early.
func (c *Controller) Idle(ctx context.Context) {
	c.disp.Off()
	log.Printf("sleeping %v (buttons wake)", c.sleepInterval)

	end := c.now().Add(c.sleepInterval)
	for c.now().Before(end) {
		if ctx.Err() != nil {
			return
		}
		s, p, err := c.buttons.Read()
		if err == nil && (s || p) {
			log.Printf("woke by button")
			return
		}
		c.sleep(c.cfg.IdlePoll)
	}
}

// checkBLE handles the coarser-cadence BLE work for one tick and returns
// the possibly-extended deadline.
func (c *Controller) checkBLE(deadline time.Time, wasConnected *bool) time.Time {
	chars := c.adapter.Characteristics()

	if !c.adapter.Connected() {
		if *wasConnected {
			*wasConnected = false
			log.Printf("ble: disconnected, grace extension")
			deadline = c.extendDeadline(deadline, c.cfg.BLEExtend)
			if err := c.adapter.StartAdvertising(); err != nil {
				log.Printf("advertise error (retrying next wake): %v", err)
			}
		}
		return deadline
	}

	if !*wasConnected {
		*wasConnected = true
		log.Printf("ble: connected")
		c.flashIcon(display.IconBLE)
		c.disp.Render(display.HistoryFrame(c.store.History()))
		deadline = c.extendDeadline(deadline, c.cfg.BLEExtend)
	}

	// An externally-written moisture byte that differs from the last one
	// we observed is a refresh request. The byte itself is not data.
	if v := chars.Moisture(); v != c.lastSeen {
		c.lastSeen = v
		log.Printf("ble: refresh requested")
		c.sampleAndPublish()
	}

	// Pump command: nonzero means "run for that many seconds", honored
	// exactly once. The byte range already bounds it to 1..255. Clearing
	// immediately after watering keeps the next poll from re-firing it.
	if pv := chars.Pump(); pv > 0 {
		log.Printf("ble: watering for %ds", pv)
		c.runPump(time.Duration(pv)*time.Second, "ble")
		chars.ClearPump()
		c.sampleAndPublish()
		deadline = c.extendDeadline(deadline, c.cfg.BLEExtend)
	}

	// Sleep-interval negotiation. Out-of-range writes are ignored; the
	// configured interval is retained and no reply is sent. An adopted
	// interval changes wakesPerDay from here on but never rewrites
	// existing history.
	if sv := int(chars.SleepInterval()); sv >= minSleepSeconds && sv <= maxSleepSeconds {
		if d := time.Duration(sv) * time.Second; d != c.sleepInterval {
			c.sleepInterval = d
			log.Printf("ble: sleep interval set to %v, wakes/day now %d", d, c.wakesPerDay())
		}
	}

	// A live connection keeps the window open; the extension margin stops
	// this from creeping the deadline on every tick.
	return c.extendDeadline(deadline, c.cfg.BLEExtend)
}

// extendDeadline raises the deadline to now+grant, but only when the
// remaining time has dropped below grant minus the margin. It never lowers
// the deadline.
func (c *Controller) extendDeadline(deadline time.Time, grant time.Duration) time.Time {
	if deadline.Sub(c.now()) >= grant-c.cfg.ExtendMargin {
		return deadline
	}
	return c.now().Add(grant)
}

// takeSample reads moisture subject to the pump cooldown. During cooldown,
// or on a sampler error, there is no sample: history and characteristics
// stay untouched rather than carrying a stale or zero value.
func (c *Controller) takeSample() (uint8, bool) {
	if c.hasPumped {
		if since := c.now().Sub(c.lastPump); since < c.cfg.PumpCooldown {
			log.Printf("sample skipped: watered %v ago, cooldown %v", since.Round(time.Second), c.cfg.PumpCooldown)
			return 0, false
		}
	}

	m, err := c.sampler.Read()
	if err != nil {
		log.Printf("sample error: %v", err)
		return 0, false
	}
	if m > 100 {
		m = 100
	}
	return m, true
}

// sampleAndPublish takes a reading and, on success, records it in history,
// publishes the characteristic, redraws the graph, and reports telemetry.
func (c *Controller) sampleAndPublish() {
	m, ok := c.takeSample()
	if !ok {
		return
	}

	if err := c.store.RecordSample(m, c.wakesPerDay()); err != nil {
		log.Printf("history write error: %v", err)
	}

	c.adapter.Characteristics().PublishMoisture(m)
	c.lastSeen = m
	c.disp.Render(display.HistoryFrame(c.store.History()))

	hi, lo := c.store.Running()
	log.Printf("moisture: %d%% (wake %d/%d, hi %d lo %d)", m, c.store.WakeCount(), c.wakesPerDay(), hi, lo)

	if err := c.pub.PublishSample(telemetry.SampleEvent{
		Timestamp: c.now(),
		Moisture:  m,
		High:      hi,
		Low:       lo,
		WakeCount: c.store.WakeCount(),
	}); err != nil {
		log.Printf("telemetry publish error: %v", err)
	}
}

// runPump waters for the given duration. The wait is intentionally
// blocking: concurrent pump-plus-interaction is not a supported mode.
func (c *Controller) runPump(d time.Duration, trigger string) {
	c.flashIcon(display.IconPump)
	if err := c.pump.Activate(d); err != nil {
		log.Printf("pump error: %v", err)
	}
	c.lastPump = c.now()
	c.hasPumped = true

	if err := c.pub.PublishPump(telemetry.PumpEvent{
		Timestamp: c.now(),
		Duration:  d,
		Trigger:   trigger,
	}); err != nil {
		log.Printf("telemetry publish error: %v", err)
	}
}

// flashIcon shows an icon for the configured duration, blocking.
func (c *Controller) flashIcon(icon display.Frame) {
	c.disp.Render(icon)
	c.sleep(c.cfg.IconFlash)
}

// waitRelease blocks until the pressed button is released; debounce by
// holding. A read error ends the wait.
func (c *Controller) waitRelease(pressed func(sample, pump bool) bool) {
	for {
		s, p, err := c.buttons.Read()
		if err != nil || !pressed(s, p) {
			return
		}
		c.sleep(c.cfg.Poll)
	}
}

func (c *Controller) wakesPerDay() uint16 {
	secs := int(c.sleepInterval / time.Second)
	if secs <= 0 {
		return 1
	}
	n := secondsPerDay / secs
	if n < 1 {
		n = 1
	}
	return uint16(n)
}
