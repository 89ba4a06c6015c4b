package searcher

import (
	"hash/fnv"

	"github.com/amaarquadri/PerfectInformationGame/evaluator"
	"github.com/amaarquadri/PerfectInformationGame/game"
)

// mockGame is a hand-built game graph keyed by state name: succ lists each
// state's successors in order, outcome marks terminal states with their
// value, and minimizer marks states where player 2 moves.
type mockGame struct {
	succ      map[string][]string
	outcome   map[string]float64
	minimizer map[string]bool
}

type mockState struct {
	g  *mockGame
	id string
}

func (g *mockGame) state(id string) mockState {
	return mockState{g: g, id: id}
}

func (s mockState) Terminal() bool {
	_, ok := s.g.outcome[s.id]
	return ok
}

func (s mockState) MaximizerToMove() bool {
	return !s.g.minimizer[s.id]
}

func (s mockState) Successors() []game.State {
	ids := s.g.succ[s.id]
	successors := make([]game.State, len(ids))
	for i, id := range ids {
		successors[i] = mockState{g: s.g, id: id}
	}
	return successors
}

func (s mockState) Outcome() float64 {
	return s.g.outcome[s.id]
}

func (s mockState) Hash() game.StateHash {
	h := fnv.New64a()
	h.Write([]byte(s.id))
	return game.StateHash(h.Sum64())
}

// stubEvaluator serves canned predictions by state name; unnamed states
// get a uniform policy and neutral value.
type stubEvaluator struct {
	values   map[string]float64
	policies map[string][]float64
}

func (e stubEvaluator) Evaluate(batch []game.State) ([]evaluator.Prediction, error) {
	predictions := make([]evaluator.Prediction, len(batch))
	for i, state := range batch {
		s := state.(mockState)
		if s.Terminal() {
			continue
		}
		prediction := evaluator.Prediction{Value: e.values[s.id]}
		if policy, ok := e.policies[s.id]; ok {
			prediction.Policy = policy
		} else {
			legal := len(s.Successors())
			prediction.Policy = make([]float64, legal)
			for j := range prediction.Policy {
				prediction.Policy[j] = 1 / float64(legal)
			}
		}
		predictions[i] = prediction
	}
	return predictions, nil
}
