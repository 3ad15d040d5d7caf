package game

import "time"

// Clock is polled by the searcher for its per-turn budget.
type Clock interface {
	Remaining() time.Duration
	ElapsedThisTurn() time.Duration
}

// TurnClock is one player's chess clock. Time only runs between StartTurn
// and EndTurn.
type TurnClock struct {
	remaining time.Duration
	increment time.Duration
	turnStart time.Time
	running   bool
	now       func() time.Time
}

func NewTurnClock(total, increment time.Duration) *TurnClock {
	return &TurnClock{
		remaining: total,
		increment: increment,
		now:       time.Now,
	}
}

// WithNow replaces the time source, for tests.
func (c *TurnClock) WithNow(now func() time.Time) *TurnClock {
	c.now = now
	return c
}

func (c *TurnClock) StartTurn() {
	c.turnStart = c.now()
	c.running = true
}

// EndTurn stops the clock and reports whether the player ran out of time.
func (c *TurnClock) EndTurn() (flagged bool) {
	if !c.running {
		return c.remaining <= 0
	}
	c.remaining -= c.now().Sub(c.turnStart)
	c.running = false
	if c.remaining <= 0 {
		c.remaining = 0
		return true
	}
	c.remaining += c.increment
	return false
}

// Remaining is the time left at the start of the current turn.
func (c *TurnClock) Remaining() time.Duration {
	return c.remaining
}

func (c *TurnClock) ElapsedThisTurn() time.Duration {
	if !c.running {
		return 0
	}
	return c.now().Sub(c.turnStart)
}
