// Package connect4 implements 7x6 connect four on bitboards. Columns
// occupy 7 bits each (6 playable rows plus a sentinel row), the standard
// layout that lets one shift-and-mask test find four in a row.
package connect4

import (
	"math/bits"
	"strings"

	"github.com/amaarquadri/PerfectInformationGame/game"
)

const (
	Columns = 7
	Rows    = 6
)

// bottomMask has the lowest bit of every column set.
var bottomMask uint64

func init() {
	for col := 0; col < Columns; col++ {
		bottomMask |= 1 << (col * (Rows + 1))
	}
}

type State struct {
	// mover holds the stones of the side to move, mask all stones.
	mover uint64
	mask  uint64
	plies int
}

// New returns the empty board with player 1 to move.
func New() State {
	return State{}
}

func fourInARow(board uint64) bool {
	// Vertical, horizontal and both diagonals.
	for _, shift := range []int{1, Rows + 1, Rows, Rows + 2} {
		m := board & (board >> shift)
		if m&(m>>(2*shift)) != 0 {
			return true
		}
	}
	return false
}

// opponent returns the stones of the side that just moved.
func (s State) opponent() uint64 {
	return s.mover ^ s.mask
}

func (s State) Terminal() bool {
	return fourInARow(s.opponent()) || s.plies == Columns*Rows
}

func (s State) MaximizerToMove() bool {
	return s.plies%2 == 0
}

func (s State) columnOpen(col int) bool {
	top := uint64(1) << (col*(Rows+1) + Rows - 1)
	return s.mask&top == 0
}

func (s State) Successors() []game.State {
	if s.Terminal() {
		return nil
	}
	successors := make([]game.State, 0, Columns)
	for col := 0; col < Columns; col++ {
		if !s.columnOpen(col) {
			continue
		}
		successors = append(successors, s.Drop(col))
	}
	return successors
}

// Drop plays a stone for the side to move in the given column.
func (s State) Drop(col int) State {
	if !s.columnOpen(col) {
		panic("column is full")
	}
	newMask := s.mask | (s.mask + (1 << (col * (Rows + 1))))
	return State{
		mover: s.opponent(),
		mask:  newMask,
		plies: s.plies + 1,
	}
}

func (s State) Outcome() float64 {
	if fourInARow(s.opponent()) {
		// The side that just moved connected four.
		if s.MaximizerToMove() {
			return game.Player2Win
		}
		return game.Player1Win
	}
	return game.Draw
}

func (s State) Hash() game.StateHash {
	// mover+mask+bottom uniquely identifies a position including the side
	// to move (the standard connect-four position key).
	return game.StateHash(s.mover + s.mask + bottomMask)
}

func (s State) Encode() []float32 {
	encoded := make([]float32, Columns*Rows)
	maximizer := s.mover
	minimizer := s.opponent()
	if !s.MaximizerToMove() {
		maximizer, minimizer = minimizer, maximizer
	}
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			bit := uint64(1) << (col*(Rows+1) + row)
			switch {
			case maximizer&bit != 0:
				encoded[col*Rows+row] = 1
			case minimizer&bit != 0:
				encoded[col*Rows+row] = -1
			}
		}
	}
	return encoded
}

// MoveMask marks the open columns; the mask order matches Successors.
func (s State) MoveMask() []bool {
	mask := make([]bool, Columns)
	for col := 0; col < Columns; col++ {
		mask[col] = s.columnOpen(col)
	}
	return mask
}

// Plies returns the number of stones on the board.
func (s State) Plies() int {
	return bits.OnesCount64(s.mask)
}

func (s State) String() string {
	var b strings.Builder
	maximizer := s.mover
	minimizer := s.opponent()
	if !s.MaximizerToMove() {
		maximizer, minimizer = minimizer, maximizer
	}
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			bit := uint64(1) << (col*(Rows+1) + row)
			switch {
			case maximizer&bit != 0:
				b.WriteByte('X')
			case minimizer&bit != 0:
				b.WriteByte('O')
			default:
				b.WriteByte('.')
			}
		}
		if row != 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
