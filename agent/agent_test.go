package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amaarquadri/PerfectInformationGame/game"
	"github.com/amaarquadri/PerfectInformationGame/game/tictactoe"
	"github.com/amaarquadri/PerfectInformationGame/searcher"
)

// nearWin is X to move with an immediate win on cell 2.
func nearWin() tictactoe.State {
	return tictactoe.New().Play(0).Play(3).Play(1).Play(4)
}

func TestSearchAgent(t *testing.T) {
	a := NewSearchAgent(searcher.NewMCTS(searcher.WithDuration(50 * time.Millisecond)))

	move, err := a.ChooseMove(nearWin())

	require.NoError(t, err)
	require.True(t, move.Terminal())
	require.Equal(t, game.Player1Win, move.(tictactoe.State).Outcome())
}

func TestMinimaxAgent(t *testing.T) {
	a := NewMinimaxAgent(searcher.NewSolver())

	move, err := a.ChooseMove(nearWin())

	require.NoError(t, err)
	require.True(t, move.Terminal())
	require.Equal(t, game.Player1Win, move.(tictactoe.State).Outcome())
}

// scriptedSession returns canned positions and records what it was told.
type scriptedSession struct {
	replies  []game.State
	reported []game.State
}

func (s *scriptedSession) ChooseMove(opponent game.State) game.State {
	s.reported = append(s.reported, opponent)
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply
}

func TestPonderAgent(t *testing.T) {
	start := tictactoe.New()
	engineOpening := start.Play(4)
	opponentReply := engineOpening.Play(0)
	engineSecond := opponentReply.Play(8)

	session := &scriptedSession{replies: []game.State{engineOpening, engineSecond}}
	a := NewPonderAgent(session, start)

	t.Run("the starting position means the engine opens", func(t *testing.T) {
		move, err := a.ChooseMove(start)

		require.NoError(t, err)
		require.Equal(t, game.State(engineOpening), move)
		require.Nil(t, session.reported[0], "No opponent move to report on the engine's opening")
	})

	t.Run("a changed position is reported as the opponent's move", func(t *testing.T) {
		move, err := a.ChooseMove(opponentReply)

		require.NoError(t, err)
		require.Equal(t, game.State(engineSecond), move)
		require.Equal(t, game.State(opponentReply), session.reported[1])
	})

	t.Run("a terminal position is an error", func(t *testing.T) {
		finished := nearWin().Play(2)

		_, err := a.ChooseMove(finished)

		require.ErrorIs(t, err, searcher.ErrTerminalPosition)
	})
}

func TestTrainingAgent(t *testing.T) {
	mcts := searcher.NewMCTS(searcher.WithDuration(30 * time.Millisecond))
	a := NewTrainingAgent(mcts, 1.0, 7)

	state := game.State(tictactoe.New())
	for i := 0; i < 2; i++ {
		move, err := a.ChooseMove(state)
		require.NoError(t, err)
		require.False(t, move.Terminal())
		state = move
	}

	samples := a.Samples()
	require.Len(t, samples, 2, "Every searched position becomes a sample")
	for _, sample := range samples {
		require.NotNil(t, sample.Position)
		sum := 0.0
		for _, p := range sample.Policy {
			require.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9, "Recorded policies are normalized")
	}
}

func TestTrainingAgentFinishGame(t *testing.T) {
	mcts := searcher.NewMCTS(searcher.WithDuration(30 * time.Millisecond))
	a := NewTrainingAgent(mcts, 1.0, 11)

	_, err := a.ChooseMove(tictactoe.New())
	require.NoError(t, err)
	_, err = a.ChooseMove(tictactoe.New().Play(4))
	require.NoError(t, err)
	a.FinishGame(game.Player1Win)

	_, err = a.ChooseMove(tictactoe.New())
	require.NoError(t, err)
	a.FinishGame(game.Player2Win)

	samples := a.Samples()
	require.Len(t, samples, 3)
	require.Equal(t, game.Player1Win, samples[0].Outcome,
		"The first game's outcome reaches all of its samples")
	require.Equal(t, game.Player1Win, samples[1].Outcome)
	require.Equal(t, game.Player2Win, samples[2].Outcome,
		"A later game never rewrites earlier samples")
}

func TestAdjustTemperature(t *testing.T) {
	policy := []float64{0.75, 0.25}

	t.Run("temperature one is the identity", func(t *testing.T) {
		adjusted := adjustTemperature(policy, 1.0)

		require.InDelta(t, 0.75, adjusted[0], 1e-12)
		require.InDelta(t, 0.25, adjusted[1], 1e-12)
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		adjusted := adjustTemperature(policy, 0.5)

		require.Greater(t, adjusted[0], 0.75)
		require.InDelta(t, 1.0, adjusted[0]+adjusted[1], 1e-12)
	})

	t.Run("high temperature flattens", func(t *testing.T) {
		adjusted := adjustTemperature(policy, 4.0)

		require.Less(t, adjusted[0], 0.75)
		require.Greater(t, adjusted[1], 0.25)
	})
}
