package draw

import "fmt"

// Countdown is the advisory timer shown after a draw. It is driven by one
// Tick per second and never touches task data.
type Countdown struct {
	total     int // seconds
	remaining int
	running   bool
}

// Start (re)starts the countdown at minutes.
func (c *Countdown) Start(minutes int) {
	c.total = max(minutes, 0) * 60
	c.remaining = c.total
	c.running = c.total > 0
}

// Tick advances one second. It reports true exactly once, on the tick that
// reaches zero.
func (c *Countdown) Tick() bool {
	if !c.running {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		return true
	}
	return false
}

// Cancel stops the countdown and resets it to zero.
func (c *Countdown) Cancel() {
	c.total, c.remaining, c.running = 0, 0, false
}

// Running reports whether the countdown is ticking.
func (c *Countdown) Running() bool { return c.running }

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// Progress returns the elapsed fraction in [0, 1].
func (c *Countdown) Progress() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.total-c.remaining) / float64(c.total)
}

// String formats the remaining time as MM:SS.
func (c *Countdown) String() string {
	return fmt.Sprintf("%02d:%02d", c.remaining/60, c.remaining%60)
}
