package agent

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/amaarquadri/PerfectInformationGame/game"
	"github.com/amaarquadri/PerfectInformationGame/searcher"
)

// Sample is one self-play training example: a position, the search's
// normalized move distribution for it, and (filled in by FinishGame) the
// final outcome of the game it was drawn from.
type Sample struct {
	Position game.State
	Policy   []float64
	Outcome  float64
}

// TrainingAgent generates self-play training data: moves are drawn at
// random from the temperature-adjusted search distribution, and every
// searched position is recorded as a training sample.
type TrainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	src         rand.Source
	samples     []Sample
	// pending indexes the first sample of the game in progress.
	pending int
}

func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) *TrainingAgent {
	return &TrainingAgent{
		mcts:        mcts,
		temperature: temperature,
		src:         rand.NewSource(seed),
	}
}

func (a *TrainingAgent) ChooseMove(state game.State) (game.State, error) {
	root, _, err := a.mcts.Search(state)
	if err != nil {
		return nil, err
	}

	policy := searcher.MovePolicy(root)
	a.samples = append(a.samples, Sample{Position: state, Policy: policy})

	// TODO: apply a temperature schedule as training progresses
	adjusted := adjustTemperature(policy, a.temperature)
	i, ok := sampleuv.NewWeighted(adjusted, a.src).Take()
	if !ok {
		return nil, errors.New("move policy has no positive weight")
	}
	return root.ChildAt(i).Position(), nil
}

// FinishGame backfills the final outcome into every sample recorded for
// the game in progress, completing them as training examples.
func (a *TrainingAgent) FinishGame(outcome float64) {
	for i := a.pending; i < len(a.samples); i++ {
		a.samples[i].Outcome = outcome
	}
	a.pending = len(a.samples)
}

// Samples returns the recorded training samples. Samples from games not
// yet finished with FinishGame carry a zero outcome.
func (a *TrainingAgent) Samples() []Sample {
	return a.samples
}

// adjustTemperature sharpens (t < 1) or flattens (t > 1) a move
// distribution and renormalizes.
func adjustTemperature(policy []float64, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(policy))
	for i, p := range policy {
		adjusted[i] = math.Pow(p, exponent)
		sum += adjusted[i]
	}
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}
