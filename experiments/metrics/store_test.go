package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s, err := OpenStore("")
	require.NoError(t, err, "In-memory store should open")
	defer s.Close()

	game := func(id int, winner string) GameRecord {
		return GameRecord{ID: id, White: 1, Black: 2, GameMetric: GameMetric{Winner: winner, Duration: time.Second, TotalMoves: 10}}
	}

	t.Run("missing game", func(t *testing.T) {
		_, _, err := s.Game("strength", 1)
		require.ErrorIs(t, err, ErrNoRecord, "Unknown game should report ErrNoRecord")
	})

	t.Run("saving and loading a game", func(t *testing.T) {
		moves := []MoveRecord{{Game: 1, MoveMetric: MoveMetric{Ply: 1, Move: "e2e4"}}}
		require.NoError(t, s.SaveGame("strength", game(1, "white"), moves))

		got, gotMoves, err := s.Game("strength", 1)
		require.NoError(t, err)
		require.Equal(t, game(1, "white"), got, "Stored game should round trip")
		require.Equal(t, moves, gotMoves, "Stored moves should round trip")
	})

	t.Run("listing games of one experiment", func(t *testing.T) {
		require.NoError(t, s.SaveGame("strength", game(3, ""), nil))
		require.NoError(t, s.SaveGame("strength", game(2, "black"), nil))
		require.NoError(t, s.SaveGame("throughput", game(1, "black"), nil))

		games, moves, err := s.Games("strength")
		require.NoError(t, err)
		require.Len(t, games, 3, "Only games of the experiment should be listed")
		require.Equal(t, []int{1, 2, 3}, []int{games[0].ID, games[1].ID, games[2].ID}, "Games should be in ID order")
		require.Len(t, moves, 1, "Moves of every listed game should be returned")
	})
}
