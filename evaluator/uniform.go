package evaluator

import "github.com/amaarquadri/PerfectInformationGame/game"

// Uniform is a baseline evaluator: a flat prior over legal moves and a
// neutral value for every position. Search guided by it degenerates to pure
// UCT exploration, which makes it useful as a stand-in before a trained
// evaluator exists and as a fixture in tests.
type Uniform struct{}

func NewUniform() Uniform {
	return Uniform{}
}

func (Uniform) Evaluate(batch []game.State) ([]Prediction, error) {
	predictions := make([]Prediction, len(batch))
	for i, state := range batch {
		if state.Terminal() {
			continue
		}
		legal := len(state.Successors())
		policy := make([]float64, legal)
		for j := range policy {
			policy[j] = 1 / float64(legal)
		}
		predictions[i] = Prediction{Policy: policy}
	}
	return predictions, nil
}
