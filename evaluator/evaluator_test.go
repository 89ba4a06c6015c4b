package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amaarquadri/PerfectInformationGame/game"
	"github.com/amaarquadri/PerfectInformationGame/game/tictactoe"
)

func TestValidate(t *testing.T) {
	batch := []game.State{tictactoe.New()}

	t.Run("accepts a well-shaped response", func(t *testing.T) {
		predictions := []Prediction{{Policy: make([]float64, 9), Value: 0.5}}

		require.NoError(t, Validate(batch, predictions))
	})

	t.Run("rejects a count mismatch", func(t *testing.T) {
		require.Error(t, Validate(batch, nil))
	})

	t.Run("rejects a policy not covering the legal moves", func(t *testing.T) {
		predictions := []Prediction{{Policy: make([]float64, 3)}}

		require.Error(t, Validate(batch, predictions))
	})

	t.Run("rejects a value outside the game range", func(t *testing.T) {
		predictions := []Prediction{{Policy: make([]float64, 9), Value: 1.5}}

		require.Error(t, Validate(batch, predictions))
	})

	t.Run("skips terminal positions", func(t *testing.T) {
		finished := tictactoe.New().Play(0).Play(3).Play(1).Play(4).Play(2)
		require.True(t, finished.Terminal())

		require.NoError(t, Validate([]game.State{finished}, []Prediction{{}}))
	})
}

func TestUniform(t *testing.T) {
	state := tictactoe.New().Play(4)

	predictions, err := NewUniform().Evaluate([]game.State{state})

	require.NoError(t, err)
	require.Len(t, predictions, 1)
	require.Equal(t, 0.0, predictions[0].Value, "Baseline has no opinion on the value")
	require.Len(t, predictions[0].Policy, 8)
	for _, p := range predictions[0].Policy {
		require.InDelta(t, 1.0/8, p, 1e-12, "Prior should be flat over legal moves")
	}
}
