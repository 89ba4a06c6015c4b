package searcher

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amaarquadri/PerfectInformationGame/evaluator"
	"github.com/amaarquadri/PerfectInformationGame/game"
)

// ErrTerminalPosition is returned when a move is requested on a finished
// game; callers must check terminal state first.
var ErrTerminalPosition = errors.New("cannot choose a move on a terminal position")

type Option func(*MCTS)

// MCTS is the time-boxed synchronous controller: it grows a tree from the
// given position until the budget elapses or the position is solved, then
// picks the optimal move.
type MCTS struct {
	duration  time.Duration
	c         float64
	d         float64
	batchSize int
	workers   int
	evaluate  evaluator.Evaluator
	metrics   MetricsCollector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithExploration sets the UCT exploration constant c.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		m.c = c
	}
}

// WithPriorWeight sets the weight d of the evaluator prior in selection
// scores. Only meaningful together with WithEvaluator.
func WithPriorWeight(d float64) Option {
	return func(m *MCTS) {
		m.d = d
	}
}

// WithRolloutBatch sets how many random playouts one expansion runs.
func WithRolloutBatch(batchSize int) Option {
	return func(m *MCTS) {
		if batchSize > 0 {
			m.batchSize = batchSize
		}
	}
}

// WithWorkers sets the size of the worker pool playout batches run on.
func WithWorkers(workers int) Option {
	return func(m *MCTS) {
		if workers > 0 {
			m.workers = workers
		}
	}
}

// WithEvaluator switches the search from rollout estimation to
// evaluator-guided estimation.
func WithEvaluator(evaluate evaluator.Evaluator) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		duration:  3 * time.Second,
		c:         ExplorationC,
		d:         PriorWeightD,
		batchSize: 1,
		workers:   1,
		metrics:   NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// NewRoot builds a search root for the configured variant.
func (m *MCTS) NewRoot(state game.State) (Node, error) {
	if m.evaluate != nil {
		return NewHeuristicRoot(state, m.evaluate, m.c, m.d)
	}
	return NewRolloutRoot(state, m.c, m.batchSize, m.workers), nil
}

// Search grows a tree from state for the configured duration and returns
// the searched root, from which callers read a move policy.
func (m *MCTS) Search(state game.State) (Node, SearchMetrics, error) {
	if state.Terminal() {
		return nil, SearchMetrics{}, ErrTerminalPosition
	}

	root, err := m.NewRoot(state)
	if err != nil {
		return nil, SearchMetrics{}, err
	}

	m.metrics.Start()
	m.searchFor(root, m.duration)
	return root, m.metrics.Complete(), nil
}

// ChooseMove searches from state for the configured duration and returns
// the resulting position of the chosen move.
func (m *MCTS) ChooseMove(state game.State) (game.State, SearchMetrics, error) {
	root, metrics, err := m.Search(state)
	if err != nil {
		return nil, SearchMetrics{}, err
	}

	best := BestNode(root)
	log.Debug().
		Int64("expansions", metrics.Expansions).
		Bool("solved", metrics.Solved).
		Float64("evaluation", best.Evaluation()).
		Msg("chose move")
	return best.Position(), metrics, nil
}

// searchFor runs expansion steps until the budget elapses or the tree is
// fully solved. Individual expansion steps are not time-boxed; only the
// aggregate budget is.
func (m *MCTS) searchFor(root Node, budget time.Duration) {
	deadline := time.Now().Add(budget)
	for time.Now().Before(deadline) {
		node := NextExpansion(root)
		if node == nil {
			m.metrics.SetSolved()
			return
		}
		node.Expand()
		m.metrics.AddExpansion()
	}
}
