package searcher

import (
	"fmt"
	"math"

	"github.com/amaarquadri/PerfectInformationGame/evaluator"
	"github.com/amaarquadri/PerfectInformationGame/game"
)

// Heuristic estimates a position's value in [-1, 1] from the maximizing
// player's perspective, used at the depth horizon of a bounded search.
type Heuristic func(game.State) float64

// MiniMax is the depth-boxed exact controller: classic minimax with
// branch pruning. With an unbounded depth and no heuristic it is a full
// solver that recurses to exact terminal outcomes only.
type MiniMax struct {
	heuristic Heuristic
	depth     int
}

// NewMiniMax returns a search truncated at the given depth, where the
// heuristic stands in for unexplored subtrees.
func NewMiniMax(heuristic Heuristic, depth int) *MiniMax {
	if heuristic == nil {
		panic("depth-bounded minimax requires a heuristic")
	}
	return &MiniMax{heuristic: heuristic, depth: depth}
}

// NewSolver returns an exact solver: unbounded depth, terminal leaves only.
func NewSolver() *MiniMax {
	return &MiniMax{depth: math.MaxInt}
}

// MiniMaxFromEvaluator uses an evaluator's value head as the horizon
// heuristic. An evaluator failure mid-search is unrecoverable.
func MiniMaxFromEvaluator(eval evaluator.Evaluator, depth int) *MiniMax {
	heuristic := func(state game.State) float64 {
		predictions, err := eval.Evaluate([]game.State{state})
		if err != nil {
			panic(fmt.Sprintf("evaluator failed during search: %v", err))
		}
		return predictions[0].Value
	}
	return &MiniMax{heuristic: heuristic, depth: depth}
}

// ChooseMove returns the position after the best move and its value.
func (m *MiniMax) ChooseMove(state game.State) (game.State, float64, error) {
	if state.Terminal() {
		return nil, 0, ErrTerminalPosition
	}

	maximizing := state.MaximizerToMove()
	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	var bestMove game.State

	for _, successor := range state.Successors() {
		value := m.evaluate(successor, m.depth-1, best)
		if maximizing && value > best || !maximizing && value < best {
			best = value
			bestMove = successor
		}
	}
	return bestMove, best, nil
}

// evaluate scores a position, pruning any branch whose value already beats
// valueToBeat, the best value found among the siblings at the level above:
// the opponent would never allow this branch, so its exact value is moot.
func (m *MiniMax) evaluate(position game.State, depth int, valueToBeat float64) float64 {
	if position.Terminal() {
		return position.Outcome()
	}
	if depth == 0 {
		return m.heuristic(position)
	}

	maximizing := position.MaximizerToMove()
	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}

	for _, successor := range position.Successors() {
		value := m.evaluate(successor, depth-1, best)
		if maximizing && value > best {
			if value > valueToBeat {
				return value
			}
			best = value
		}
		if !maximizing && value < best {
			if value < valueToBeat {
				return value
			}
			best = value
		}
	}
	return best
}
