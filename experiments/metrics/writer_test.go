package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "strength")
	require.NoError(t, err)
	require.DirExists(t, w.Dir(), "Writer should create its experiment directory")

	t.Run("writing agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Duration: 50 * time.Millisecond, Clock: time.Minute},
			{ID: 2, Iterations: 500, Exploration: 1.41},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3, "Should write a header and one row per config")
		require.Equal(t, []string{"1", "50ms", "0", "0", "1m0s", "0s"}, rows[1])
		require.Equal(t, "1.41", rows[2][3], "Exploration constant should be written as given")
	})

	t.Run("writing game records", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID: 7, White: 1, Black: 2,
			GameMetric: GameMetric{Winner: "black", Method: "Checkmate", StartTime: start, EndTime: start.Add(time.Minute), Duration: time.Minute, TotalMoves: 40},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "7", rows[1][0])
		require.Equal(t, "black", rows[1][3], "Winner should be recorded")
		require.Equal(t, "40", rows[1][9], "Move count should be recorded")
	})

	t.Run("writing move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{
			{Game: 7, MoveMetric: MoveMetric{Ply: 1, Player: "white", Move: "e2e4", SearchMetric: SearchMetric{Iterations: 1200, BestValue: 0.05}}},
			{Game: 7, MoveMetric: MoveMetric{Ply: 2, Player: "black", Move: "e7e5"}},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "e2e4", rows[1][3])
		require.Equal(t, "1200", rows[1][6], "Iterations should be recorded")
		require.Equal(t, "0.0500", rows[1][9], "Best value should be rounded to four places")
	})
}
