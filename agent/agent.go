// Package agent wraps the search controllers behind a single move-choosing
// interface for match play, self-play training and pondering.
package agent

import (
	"github.com/amaarquadri/PerfectInformationGame/game"
	"github.com/amaarquadri/PerfectInformationGame/searcher"
)

// Agent chooses the next position from the current one.
type Agent interface {
	ChooseMove(state game.State) (game.State, error)
}

type searchAgent struct {
	mcts *searcher.MCTS
}

// NewSearchAgent returns an agent for actual game play: it always takes
// the highest-weight move.
func NewSearchAgent(mcts *searcher.MCTS) Agent {
	return searchAgent{mcts: mcts}
}

func (a searchAgent) ChooseMove(state game.State) (game.State, error) {
	position, _, err := a.mcts.ChooseMove(state)
	return position, err
}

type minimaxAgent struct {
	minimax *searcher.MiniMax
}

// NewMinimaxAgent returns an agent backed by the exact or depth-bounded
// alpha-beta controller.
func NewMinimaxAgent(minimax *searcher.MiniMax) Agent {
	return minimaxAgent{minimax: minimax}
}

func (a minimaxAgent) ChooseMove(state game.State) (game.State, error) {
	position, _, err := a.minimax.ChooseMove(state)
	return position, err
}
