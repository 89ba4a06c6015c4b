// Package evaluator defines the contract for position evaluators used by
// evaluator-guided search, together with a uniform baseline and an HTTP
// transport for remote (e.g. trained-network) evaluators.
package evaluator

import (
	"fmt"

	"github.com/amaarquadri/PerfectInformationGame/game"
)

// Prediction is an evaluator's output for a single position: a prior
// probability distribution over the position's legal moves, in the same
// order as the game's successor enumeration, and a scalar value estimate in
// [-1, 1] from the maximizing player's perspective.
type Prediction struct {
	Policy []float64 `json:"policy"`
	Value  float64   `json:"value"`
}

// Evaluator produces predictions for a batch of positions. Implementations
// must return exactly one prediction per input, with each policy already
// restricted and renormalized over the legal moves of its position.
type Evaluator interface {
	Evaluate(batch []game.State) ([]Prediction, error)
}

// Validate checks the shape of a batched evaluator response against its
// inputs. Shape mismatches are unrecoverable: a misconfigured evaluator
// would otherwise silently steer the whole search.
func Validate(batch []game.State, predictions []Prediction) error {
	if len(predictions) != len(batch) {
		return fmt.Errorf("evaluator returned %d predictions for %d positions", len(predictions), len(batch))
	}
	for i, prediction := range predictions {
		if batch[i].Terminal() {
			continue
		}
		if legal := len(batch[i].Successors()); len(prediction.Policy) != legal {
			return fmt.Errorf("evaluator policy for position %d has %d entries, want %d", i, len(prediction.Policy), legal)
		}
		if v := prediction.Value; v < -1 || v > 1 {
			return fmt.Errorf("evaluator value %f for position %d outside [-1, 1]", v, i)
		}
	}
	return nil
}
