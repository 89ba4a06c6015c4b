// Package tictactoe implements the 3x3 game on bitboards. It is the
// reference game for exact-solver tests: optimal play from the empty board
// is a draw.
package tictactoe

import (
	"strings"

	"github.com/amaarquadri/PerfectInformationGame/game"
)

// Cells are numbered 0..8, row-major. Each side's pieces live in one
// 9-bit bitboard.
type State struct {
	crosses uint16 // player 1
	noughts uint16 // player 2
	oToMove bool
}

var lines = [8]uint16{
	0b000000111, 0b000111000, 0b111000000, // rows
	0b001001001, 0b010010010, 0b100100100, // columns
	0b100010001, 0b001010100, // diagonals
}

const full uint16 = 0b111111111

// New returns the empty board with crosses to move.
func New() State {
	return State{}
}

func won(board uint16) bool {
	for _, line := range lines {
		if board&line == line {
			return true
		}
	}
	return false
}

func (s State) Terminal() bool {
	return won(s.crosses) || won(s.noughts) || s.crosses|s.noughts == full
}

func (s State) MaximizerToMove() bool {
	return !s.oToMove
}

func (s State) Successors() []game.State {
	occupied := s.crosses | s.noughts
	if s.Terminal() {
		return nil
	}
	successors := make([]game.State, 0, 9)
	for cell := 0; cell < 9; cell++ {
		bit := uint16(1) << cell
		if occupied&bit != 0 {
			continue
		}
		child := s
		if s.oToMove {
			child.noughts |= bit
		} else {
			child.crosses |= bit
		}
		child.oToMove = !s.oToMove
		successors = append(successors, child)
	}
	return successors
}

func (s State) Outcome() float64 {
	switch {
	case won(s.crosses):
		return game.Player1Win
	case won(s.noughts):
		return game.Player2Win
	default:
		return game.Draw
	}
}

func (s State) Hash() game.StateHash {
	h := game.StateHash(s.crosses) | game.StateHash(s.noughts)<<9
	if s.oToMove {
		h |= 1 << 18
	}
	return h
}

func (s State) Encode() []float32 {
	encoded := make([]float32, 9)
	for cell := 0; cell < 9; cell++ {
		bit := uint16(1) << cell
		switch {
		case s.crosses&bit != 0:
			encoded[cell] = 1
		case s.noughts&bit != 0:
			encoded[cell] = -1
		}
	}
	return encoded
}

// MoveMask marks the empty cells; the mask order matches Successors.
func (s State) MoveMask() []bool {
	occupied := s.crosses | s.noughts
	mask := make([]bool, 9)
	for cell := 0; cell < 9; cell++ {
		mask[cell] = occupied&(1<<cell) == 0
	}
	return mask
}

// Play places the mover's piece on the given cell. Used by tests and the
// demo binary to set up positions.
func (s State) Play(cell int) State {
	bit := uint16(1) << cell
	if (s.crosses|s.noughts)&bit != 0 {
		panic("cell is occupied")
	}
	child := s
	if s.oToMove {
		child.noughts |= bit
	} else {
		child.crosses |= bit
	}
	child.oToMove = !s.oToMove
	return child
}

func (s State) String() string {
	var b strings.Builder
	for cell := 0; cell < 9; cell++ {
		bit := uint16(1) << cell
		switch {
		case s.crosses&bit != 0:
			b.WriteByte('X')
		case s.noughts&bit != 0:
			b.WriteByte('O')
		default:
			b.WriteByte('.')
		}
		if cell%3 == 2 && cell != 8 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
