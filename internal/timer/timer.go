// Package timer implements the per-stage countdown used by assessments.
package timer

import (
	"fmt"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// generations is shared by all countdowns so a tick addressed to one
// screen's timer can never match another's.
var generations atomic.Uint64

// Countdown counts whole seconds down to zero. The zero value is an
// inactive, unarmed countdown.
type Countdown struct {
	remaining int
	active    bool
	fired     bool
	gen       uint64
}

// Start arms the countdown for d (truncated to whole seconds), marks it
// active and takes a fresh generation so ticks from an earlier run are
// ignored.
func (c *Countdown) Start(d time.Duration) {
	c.remaining = int(d / time.Second)
	if c.remaining < 0 {
		c.remaining = 0
	}
	c.active = true
	c.fired = false
	c.gen = generations.Add(1)
}

// Tick advances one second. It reports true exactly once, on the tick that
// brings the countdown to zero. Inactive or already expired countdowns do
// not change.
func (c *Countdown) Tick() bool {
	if !c.active || c.fired {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.fired = true
		return true
	}
	return false
}

// SetActive gates ticking; loading and transition stages turn it off.
func (c *Countdown) SetActive(active bool) { c.active = active }

// Active reports whether ticks currently decrement.
func (c *Countdown) Active() bool { return c.active }

// Remaining returns the time left.
func (c *Countdown) Remaining() time.Duration {
	return time.Duration(c.remaining) * time.Second
}

// Expired reports whether the countdown has fired since the last Start.
func (c *Countdown) Expired() bool { return c.fired }

// Generation identifies the current run.
func (c *Countdown) Generation() uint64 { return c.gen }

// Format renders the remaining time as m:ss.
func (c *Countdown) Format() string {
	return fmt.Sprintf("%d:%02d", c.remaining/60, c.remaining%60)
}

// TickMsg is delivered once per second for the countdown run Gen.
type TickMsg struct {
	Gen uint64
}

// TickCmd schedules the next TickMsg for run gen. Receivers reschedule only
// while gen is current, so leaving or re-arming a stage ends the old chain.
func TickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}
