package experiments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amaarquadri/PerfectInformationGame/engine"
)

func TestWriter(t *testing.T) {
	base := t.TempDir()
	w, err := NewWriter(base)
	require.NoError(t, err)

	records := []engine.MatchRecord{
		{
			Outcome:  1,
			Duration: 1500 * time.Millisecond,
			Moves: []engine.MoveRecord{
				{Step: 1, Maximizer: true, Duration: 800 * time.Millisecond},
				{Step: 2, Maximizer: false, Duration: 700 * time.Millisecond},
			},
		},
		{Outcome: 0, Duration: time.Second},
	}

	require.NoError(t, w.WriteMatches(records))
	require.NoError(t, w.WriteMoves(records))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1, "One timestamped directory per writer")
	dir := filepath.Join(base, entries[0].Name())

	matches, err := os.ReadFile(filepath.Join(dir, "matches.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"game,outcome,moves,duration_ms\n1,1,2,1500\n2,0,0,1000\n",
		string(matches))

	moves, err := os.ReadFile(filepath.Join(dir, "moves.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"game,step,maximizer,duration_ms\n1,1,true,800\n1,2,false,700\n",
		string(moves))
}
