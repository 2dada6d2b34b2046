package timer

// Countdown is a one-shot seconds countdown, used for the rest period between
// sets of an exercise. The zero value is inactive.
type Countdown struct {
	remaining int
	active    bool
}

// Arm starts the countdown from seconds. Non-positive values leave it
// untouched and report false.
func (c *Countdown) Arm(seconds int) bool {
	if seconds <= 0 {
		return false
	}
	c.remaining = seconds
	c.active = true
	return true
}

// Tick decrements an active countdown and reports whether it just finished.
func (c *Countdown) Tick() (finished bool) {
	if !c.active {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.active = false
		return true
	}
	return false
}

// Skip deactivates the countdown immediately, whatever time remains.
func (c *Countdown) Skip() {
	c.active = false
}

// Clear deactivates the countdown and discards the remaining time.
func (c *Countdown) Clear() {
	c.active = false
	c.remaining = 0
}

// Active reports whether the countdown is running.
func (c *Countdown) Active() bool { return c.active }

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int { return c.remaining }
