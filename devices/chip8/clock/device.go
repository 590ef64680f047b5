// Package clock implements the fixed rate frame clock that paces the machine.
package clock

import (
	"time"

	"github.com/hexaflex/chip8/devices"
)

// DefaultRate is the CHIP-8 timer frequency in herz.
const DefaultRate = 60

// Device defines all internal doodads for the clock.
type Device struct {
	rate    int            // Ticks per second.
	ticks   chan time.Time // Tick delivery; holds at most one pending tick.
	endPoll chan struct{}  // poll exit signaller.
	done    chan struct{}  // closed when poll has returned.
}

var _ devices.Device = &Device{}

// New creates a clock ticking at the given rate in herz.
// A rate <= 0 selects DefaultRate.
func New(rate int) *Device {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Device{rate: rate}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.Clock
}

// Interval returns the time between two ticks.
func (d *Device) Interval() time.Duration {
	return time.Second / time.Duration(d.rate)
}

// C returns the channel on which ticks are delivered. Ticks are dropped
// rather than queued when the receiver falls behind.
func (d *Device) C() <-chan time.Time {
	return d.ticks
}

// Startup starts the ticker.
func (d *Device) Startup() error {
	d.ticks = make(chan time.Time, 1)
	d.endPoll = make(chan struct{})
	d.done = make(chan struct{})
	go d.poll()
	return nil
}

// Shutdown stops the ticker.
func (d *Device) Shutdown() error {
	if d.endPoll == nil {
		return nil
	}

	close(d.endPoll)
	<-d.done
	d.endPoll = nil
	return nil
}

// poll forwards ticker events until shutdown.
func (d *Device) poll() {
	defer close(d.done)

	timer := time.NewTicker(d.Interval())
	defer timer.Stop()

	for {
		select {
		case <-d.endPoll:
			return
		case now := <-timer.C:
			select {
			case d.ticks <- now:
			default:
			}
		}
	}
}
