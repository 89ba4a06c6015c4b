package agent

import (
	"github.com/amaarquadri/PerfectInformationGame/game"
	"github.com/amaarquadri/PerfectInformationGame/searcher"
)

// ponderMover is the move-choosing surface shared by the single and
// parallel pondering sessions.
type ponderMover interface {
	ChooseMove(opponent game.State) game.State
}

type ponderAgent struct {
	session ponderMover
	// expected is the position the session's root currently sits on; an
	// incoming state equal to it means the engine opens and there is no
	// opponent move to report.
	expected game.State
}

// NewPonderAgent adapts a started pondering session to the Agent
// interface. start must be the position the session was built from.
func NewPonderAgent(session ponderMover, start game.State) Agent {
	return &ponderAgent{session: session, expected: start}
}

func (a *ponderAgent) ChooseMove(state game.State) (game.State, error) {
	if state.Terminal() {
		return nil, searcher.ErrTerminalPosition
	}

	var opponent game.State
	if state.Hash() != a.expected.Hash() {
		opponent = state
	}
	chosen := a.session.ChooseMove(opponent)
	a.expected = chosen
	return chosen, nil
}
