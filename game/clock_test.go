package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestTurnClock(t *testing.T) {
	t.Run("deducts elapsed time and adds the increment", func(t *testing.T) {
		ft := &fakeTime{t: time.Unix(0, 0)}
		c := NewTurnClock(time.Minute, time.Second).WithNow(ft.now)

		c.StartTurn()
		ft.advance(3 * time.Second)
		require.Equal(t, 3*time.Second, c.ElapsedThisTurn(), "Elapsed time should follow the time source")
		require.Equal(t, time.Minute, c.Remaining(), "Remaining time should be fixed during the turn")

		flagged := c.EndTurn()
		require.False(t, flagged, "Player should still have time")
		require.Equal(t, 58*time.Second, c.Remaining(), "Remaining should drop by elapsed minus increment")
		require.Zero(t, c.ElapsedThisTurn(), "Stopped clock should report no elapsed time")
	})

	t.Run("flags when time runs out", func(t *testing.T) {
		ft := &fakeTime{t: time.Unix(0, 0)}
		c := NewTurnClock(time.Second, time.Second).WithNow(ft.now)

		c.StartTurn()
		ft.advance(2 * time.Second)

		require.True(t, c.EndTurn(), "Overrunning the clock should flag")
		require.Zero(t, c.Remaining(), "Flagged clock should not go negative or gain the increment")
	})

	t.Run("ending a stopped turn is a no-op", func(t *testing.T) {
		c := NewTurnClock(time.Second, 0)

		require.False(t, c.EndTurn())
		require.Equal(t, time.Second, c.Remaining())
	})
}
