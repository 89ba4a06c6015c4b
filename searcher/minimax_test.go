package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amaarquadri/PerfectInformationGame/game"
	"github.com/amaarquadri/PerfectInformationGame/game/tictactoe"
)

// plainMiniMax is an unpruned reference to check the pruning search
// against: every branch is evaluated exactly.
func plainMiniMax(position game.State, depth int, heuristic Heuristic) float64 {
	if position.Terminal() {
		return position.Outcome()
	}
	if depth == 0 {
		return heuristic(position)
	}
	best := math.Inf(-1)
	if !position.MaximizerToMove() {
		best = math.Inf(1)
	}
	for _, successor := range position.Successors() {
		value := plainMiniMax(successor, depth-1, heuristic)
		if position.MaximizerToMove() && value > best || !position.MaximizerToMove() && value < best {
			best = value
		}
	}
	return best
}

func TestSolverDrawsTicTacToe(t *testing.T) {
	move, value, err := NewSolver().ChooseMove(tictactoe.New())

	require.NoError(t, err)
	require.NotNil(t, move)
	require.Equal(t, game.Draw, value, "Optimal play from the empty board is a draw")
}

func TestSolverTakesTheWin(t *testing.T) {
	// X X .        X to move, cell 2 wins on the spot.
	// O O .
	// . . .
	state := tictactoe.New().Play(0).Play(3).Play(1).Play(4)

	move, value, err := NewSolver().ChooseMove(state)

	require.NoError(t, err)
	require.Equal(t, game.Player1Win, value)
	require.True(t, move.Terminal(), "The winning move ends the game immediately")
	require.Equal(t, game.Player1Win, move.(tictactoe.State).Outcome())
}

func TestMiniMaxTerminalPosition(t *testing.T) {
	g := &mockGame{outcome: map[string]float64{"t": 1}}

	_, _, err := NewSolver().ChooseMove(g.state("t"))

	require.ErrorIs(t, err, ErrTerminalPosition)
}

func TestMiniMaxRequiresHeuristic(t *testing.T) {
	require.Panics(t, func() { NewMiniMax(nil, 3) })
}

func TestMiniMaxMatchesUnprunedReference(t *testing.T) {
	heuristic := func(state game.State) float64 {
		// A deliberately uneven horizon score so pruning has something to
		// disagree with if it were wrong.
		return float64(state.Hash()%7)/7 - 0.5
	}

	for _, depth := range []int{1, 2, 3, 4} {
		m := NewMiniMax(heuristic, depth)
		state := tictactoe.New().Play(4).Play(0)

		_, value, err := m.ChooseMove(state)
		require.NoError(t, err)

		want := math.Inf(-1)
		for _, successor := range state.Successors() {
			v := plainMiniMax(successor, depth-1, heuristic)
			if v > want {
				want = v
			}
		}
		require.Equal(t, want, value, "Pruned and unpruned search must agree at depth %d", depth)
	}
}

func TestMiniMaxFromEvaluator(t *testing.T) {
	g := &mockGame{
		succ:      map[string][]string{"r": {"a", "b"}},
		outcome:   map[string]float64{},
		minimizer: map[string]bool{},
	}
	eval := stubEvaluator{values: map[string]float64{"a": -0.4, "b": 0.6}}

	move, value, err := MiniMaxFromEvaluator(eval, 1).ChooseMove(g.state("r"))

	require.NoError(t, err)
	require.Equal(t, 0.6, value, "Value head should stand in at the depth horizon")
	require.Equal(t, g.state("b"), move)
}
