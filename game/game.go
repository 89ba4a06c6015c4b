// Package game defines the contract between the search core and concrete
// games: an opaque immutable position with terminal, mover, successor and
// outcome queries, plus an optional encoding surface for evaluator-guided
// search.
package game

// StateHash identifies a position for tree re-rooting and transposition
// bookkeeping. Two states with equal hashes are treated as the same position.
type StateHash uint64

// Outcomes from the maximizing player's perspective.
const (
	Player1Win = 1.0
	Draw       = 0.0
	Player2Win = -1.0
)

// State is an immutable position in a two-player zero-sum
// perfect-information game. Operations on a State never mutate it; the
// search core treats values as opaque and only calls these methods.
type State interface {
	// Terminal reports whether the game is over at this position.
	Terminal() bool
	// MaximizerToMove reports whether player 1 (the maximizing side) moves.
	MaximizerToMove() bool
	// Successors returns the positions reachable in one legal move, in a
	// fixed order that is stable for equal positions.
	Successors() []State
	// Outcome returns the terminal value in {-1, 0, +1} from the maximizing
	// player's perspective. Only valid when Terminal() is true.
	Outcome() float64
	// Hash returns a position identifier used to match re-rooting moves.
	Hash() StateHash
}

// Encodable is implemented by games that support evaluator-guided search:
// positions carry a fixed-size encoding and a legality mask over the game's
// move-encoding space, which an evaluator needs to restrict its policy
// output to legal moves.
type Encodable interface {
	State
	// Encode returns a flat numeric encoding of the position.
	Encode() []float32
	// MoveMask returns a boolean mask over the fixed move-encoding space;
	// true entries correspond, in order, to the successors of the position.
	MoveMask() []bool
}
