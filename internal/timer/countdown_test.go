package timer

import "testing"

// TestCountdownRunsToZero verifies an armed countdown finishes on its last tick.
func TestCountdownRunsToZero(t *testing.T) {
	var c Countdown
	if !c.Arm(3) {
		t.Fatal("Arm(3) = false")
	}
	for i := 0; i < 2; i++ {
		if c.Tick() {
			t.Fatalf("tick %d finished early", i)
		}
	}
	if !c.Tick() {
		t.Fatal("third tick did not finish the countdown")
	}
	if c.Active() || c.Remaining() != 0 {
		t.Errorf("active=%v remaining=%d after finishing", c.Active(), c.Remaining())
	}
	if c.Tick() {
		t.Error("tick on a finished countdown reported finished again")
	}
}

// TestCountdownArmRejectsNonPositive verifies zero and negative durations are ignored.
func TestCountdownArmRejectsNonPositive(t *testing.T) {
	var c Countdown
	if c.Arm(0) || c.Arm(-10) {
		t.Error("Arm accepted a non-positive duration")
	}
	if c.Active() {
		t.Error("countdown active after rejected Arm")
	}
}

// TestCountdownSkipKeepsRemaining verifies skip stops without clearing time.
func TestCountdownSkipKeepsRemaining(t *testing.T) {
	var c Countdown
	c.Arm(60)
	c.Tick()
	c.Skip()
	if c.Active() {
		t.Error("countdown still active after Skip")
	}
	if c.Remaining() != 59 {
		t.Errorf("remaining = %d, want 59", c.Remaining())
	}
	c.Tick()
	if c.Remaining() != 59 {
		t.Errorf("skipped countdown kept ticking: %d", c.Remaining())
	}
	c.Clear()
	if c.Remaining() != 0 {
		t.Errorf("remaining after Clear = %d", c.Remaining())
	}
}
