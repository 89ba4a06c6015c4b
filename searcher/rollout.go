package searcher

import (
	"math"

	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/amaarquadri/PerfectInformationGame/game"
)

// rolloutConfig is shared by every node of one rollout tree.
type rolloutConfig struct {
	c         float64 // UCT exploration constant
	batchSize int     // playouts per expansion
	workers   int     // worker pool size for playout batches
}

// rolloutNode estimates position values by averaging the outcomes of
// random playouts run through its subtree.
type rolloutNode struct {
	position   game.State
	parent     *rolloutNode
	children   []*rolloutNode
	maximizing bool
	solved     bool
	sum        float64 // sum of observed outcomes; exact value once solved
	count      float64 // number of playouts; +Inf once solved
	config     *rolloutConfig
}

// NewRolloutRoot builds the root of a rollout search tree. batchSize
// playouts run per expansion, spread over a pool of workers goroutines
// when workers > 1.
func NewRolloutRoot(position game.State, c float64, batchSize, workers int) Node {
	if batchSize < 1 {
		batchSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	config := &rolloutConfig{c: c, batchSize: batchSize, workers: workers}
	return newRolloutNode(position, nil, config)
}

func newRolloutNode(position game.State, parent *rolloutNode, config *rolloutConfig) *rolloutNode {
	n := &rolloutNode{
		position:   position,
		parent:     parent,
		maximizing: position.MaximizerToMove(),
		config:     config,
	}
	if position.Terminal() {
		n.solved = true
		n.sum = position.Outcome()
		n.count = math.Inf(1)
	}
	return n
}

func (n *rolloutNode) Position() game.State { return n.position }
func (n *rolloutNode) Maximizing() bool     { return n.maximizing }
func (n *rolloutNode) Solved() bool         { return n.solved }
func (n *rolloutNode) Expansions() float64  { return n.count }
func (n *rolloutNode) NumChildren() int     { return len(n.children) }
func (n *rolloutNode) ChildAt(i int) Node   { return n.children[i] }
func (n *rolloutNode) Detach()              { n.parent = nil }

func (n *rolloutNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *rolloutNode) Evaluation() float64 {
	if n.solved {
		return n.sum
	}
	return n.sum / n.count
}

func (n *rolloutNode) EnsureChildren() {
	if n.children != nil {
		return
	}
	successors := n.position.Successors()
	n.children = make([]*rolloutNode, len(successors))
	for i, successor := range successors {
		n.children[i] = newRolloutNode(successor, n, n.config)
	}
}

func (n *rolloutNode) MarkSolved(value float64) {
	n.sum = value
	n.count = math.Inf(1)
	n.solved = true
}

// SelectionScore is classic UCT: c * sqrt(ln(N) / n_i), infinite for an
// unvisited child so it is explored first.
func (n *rolloutNode) SelectionScore(i int) float64 {
	child := n.children[i]
	if child.count == 0 {
		return math.Inf(1)
	}
	return n.config.c * math.Sqrt(math.Log(n.count)/child.count)
}

// Expand runs a batch of independent random playouts from this position
// and backs the summed outcomes up to the root.
func (n *rolloutNode) Expand() {
	if n.solved {
		panic("cannot expand a solved node")
	}

	sum := n.runPlayouts()

	for node := n; node != nil; node = node.parent {
		node.sum += sum
		node.count += float64(n.config.batchSize)
	}
}

func (n *rolloutNode) runPlayouts() float64 {
	if n.config.batchSize == 1 || n.config.workers == 1 {
		sum := 0.0
		for i := 0; i < n.config.batchSize; i++ {
			sum += playout(n.position)
		}
		return sum
	}

	// Playouts are stateless and share nothing; only their scalar outcomes
	// cross the pool boundary.
	outcomes := make([]float64, n.config.batchSize)
	g := errgroup.Group{}
	g.SetLimit(n.config.workers)
	for i := range outcomes {
		i := i
		g.Go(func() error {
			outcomes[i] = playout(n.position)
			return nil
		})
	}
	_ = g.Wait()

	sum := 0.0
	for _, outcome := range outcomes {
		sum += outcome
	}
	return sum
}

// playout plays uniformly random moves to termination and returns the
// outcome from the maximizing player's perspective.
func playout(position game.State) float64 {
	for !position.Terminal() {
		successors := position.Successors()
		position = successors[frand.Intn(len(successors))]
	}
	return position.Outcome()
}

// Merge adds each clone's playouts in excess of the shared baseline (this
// node's own statistics) exactly once, then reconciles children top-down.
func (n *rolloutNode) Merge(clones []Node) {
	baseCount, baseSum := n.count, n.sum
	for _, clone := range clones {
		c := clone.(*rolloutNode)
		if c.solved && !n.solved {
			// A clone proved this subtree; the proof supersedes counting.
			n.MarkSolved(c.sum)
			break
		}
		if c.count > baseCount {
			n.count += c.count - baseCount
			n.sum += c.sum - baseSum
		}
	}

	mergeChildClones(n, clones)
}

func (n *rolloutNode) adoptFrom(clone Node) {
	c := clone.(*rolloutNode)
	n.children = c.children
	for _, child := range n.children {
		child.parent = n
	}
}

func (n *rolloutNode) clone(parent Node) Node {
	copied := &rolloutNode{
		position:   n.position,
		maximizing: n.maximizing,
		solved:     n.solved,
		sum:        n.sum,
		count:      n.count,
		config:     n.config,
	}
	if parent != nil {
		copied.parent = parent.(*rolloutNode)
	}
	if n.children != nil {
		copied.children = make([]*rolloutNode, len(n.children))
		for i, child := range n.children {
			copied.children[i] = child.clone(copied).(*rolloutNode)
		}
	}
	return copied
}
