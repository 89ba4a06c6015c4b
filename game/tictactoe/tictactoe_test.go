package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amaarquadri/PerfectInformationGame/game"
)

func playAll(cells ...int) State {
	s := New()
	for _, cell := range cells {
		s = s.Play(cell)
	}
	return s
}

func TestNewBoard(t *testing.T) {
	s := New()

	require.False(t, s.Terminal())
	require.True(t, s.MaximizerToMove(), "Crosses open the game")
	require.Len(t, s.Successors(), 9)
}

func TestWins(t *testing.T) {
	t.Run("crosses complete a row", func(t *testing.T) {
		s := playAll(0, 3, 1, 4, 2)

		require.True(t, s.Terminal())
		require.Equal(t, game.Player1Win, s.Outcome())
		require.Nil(t, s.Successors(), "A finished game has no moves")
	})

	t.Run("noughts complete a column", func(t *testing.T) {
		s := playAll(0, 2, 4, 5, 3, 8)

		require.True(t, s.Terminal())
		require.Equal(t, game.Player2Win, s.Outcome())
	})

	t.Run("crosses complete a diagonal", func(t *testing.T) {
		s := playAll(0, 1, 4, 2, 8)

		require.True(t, s.Terminal())
		require.Equal(t, game.Player1Win, s.Outcome())
	})
}

func TestDraw(t *testing.T) {
	// X O X
	// X O O
	// O X X
	s := playAll(0, 1, 2, 4, 3, 5, 7, 6, 8)

	require.True(t, s.Terminal())
	require.Equal(t, game.Draw, s.Outcome())
}

func TestPlayOccupiedCellPanics(t *testing.T) {
	s := New().Play(4)

	require.Panics(t, func() { s.Play(4) })
}

func TestSuccessorsMatchMoveMask(t *testing.T) {
	s := playAll(0, 4, 8)
	mask := s.MoveMask()

	open := 0
	for _, legal := range mask {
		if legal {
			open++
		}
	}
	require.Equal(t, open, len(s.Successors()))
	require.False(t, mask[0])
	require.False(t, mask[4])
	require.False(t, mask[8])
}

func TestHashDistinguishesSuccessors(t *testing.T) {
	seen := map[game.StateHash]bool{New().Hash(): true}
	for _, successor := range New().Successors() {
		h := successor.Hash()
		require.False(t, seen[h], "Each position must hash uniquely")
		seen[h] = true
	}
}

func TestEncode(t *testing.T) {
	s := playAll(0, 4)
	encoded := s.Encode()

	require.Len(t, encoded, 9)
	require.Equal(t, float32(1), encoded[0], "Crosses encode as +1")
	require.Equal(t, float32(-1), encoded[4], "Noughts encode as -1")
	require.Equal(t, float32(0), encoded[8], "Empty cells encode as 0")
}

func TestString(t *testing.T) {
	s := playAll(0, 4)

	require.Equal(t, "X..\n.O.\n...", s.String())
}
