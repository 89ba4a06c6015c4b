package searcher

import (
	"fmt"
	"math"

	"github.com/amaarquadri/PerfectInformationGame/evaluator"
	"github.com/amaarquadri/PerfectInformationGame/game"
)

// heuristicConfig is shared by every node of one evaluator-guided tree.
type heuristicConfig struct {
	c        float64 // UCT exploration constant
	d        float64 // weight of the evaluator prior
	evaluate evaluator.Evaluator
}

// heuristicNode caches an evaluator's value estimate, refined into a
// minimax value once children exist, plus the evaluator's prior over its
// own children used to bias selection.
type heuristicNode struct {
	position   game.State
	parent     *heuristicNode
	children   []*heuristicNode
	maximizing bool
	solved     bool
	value      float64
	policy     []float64 // prior over children, evaluator output
	expansions float64   // +Inf once solved
	config     *heuristicConfig
}

// NewHeuristicRoot builds the root of an evaluator-guided search tree. The
// evaluator is called once here; a shape mismatch or transport failure is
// surfaced immediately rather than poisoning the search.
func NewHeuristicRoot(position game.State, eval evaluator.Evaluator, c, d float64) (Node, error) {
	config := &heuristicConfig{c: c, d: d, evaluate: eval}
	if position.Terminal() {
		return newSolvedHeuristicNode(position, nil, config), nil
	}

	batch := []game.State{position}
	predictions, err := eval.Evaluate(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate root position: %w", err)
	}
	if err := evaluator.Validate(batch, predictions); err != nil {
		return nil, err
	}
	return newHeuristicNode(position, nil, predictions[0], config), nil
}

func newHeuristicNode(position game.State, parent *heuristicNode, prediction evaluator.Prediction, config *heuristicConfig) *heuristicNode {
	if position.Terminal() {
		return newSolvedHeuristicNode(position, parent, config)
	}
	return &heuristicNode{
		position:   position,
		parent:     parent,
		maximizing: position.MaximizerToMove(),
		value:      prediction.Value,
		policy:     prediction.Policy,
		config:     config,
	}
}

func newSolvedHeuristicNode(position game.State, parent *heuristicNode, config *heuristicConfig) *heuristicNode {
	return &heuristicNode{
		position:   position,
		parent:     parent,
		maximizing: position.MaximizerToMove(),
		solved:     true,
		value:      position.Outcome(),
		expansions: math.Inf(1),
		config:     config,
	}
}

func (n *heuristicNode) Position() game.State { return n.position }
func (n *heuristicNode) Maximizing() bool     { return n.maximizing }
func (n *heuristicNode) Solved() bool         { return n.solved }
func (n *heuristicNode) Evaluation() float64  { return n.value }
func (n *heuristicNode) Expansions() float64  { return n.expansions }
func (n *heuristicNode) NumChildren() int     { return len(n.children) }
func (n *heuristicNode) ChildAt(i int) Node   { return n.children[i] }
func (n *heuristicNode) Detach()              { n.parent = nil }

func (n *heuristicNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// EnsureChildren batch-evaluates all successors in a single evaluator
// call: one call per expansion, not one per playout.
func (n *heuristicNode) EnsureChildren() {
	if n.children != nil {
		return
	}

	successors := n.position.Successors()
	if len(n.policy) != len(successors) {
		panic(fmt.Sprintf("evaluator policy has %d entries for %d legal moves", len(n.policy), len(successors)))
	}

	predictions, err := n.config.evaluate.Evaluate(successors)
	if err != nil {
		panic(fmt.Sprintf("evaluator failed during search: %v", err))
	}
	if len(predictions) != len(successors) {
		panic(fmt.Sprintf("evaluator returned %d predictions for %d positions", len(predictions), len(successors)))
	}

	n.children = make([]*heuristicNode, len(successors))
	for i, successor := range successors {
		n.children[i] = newHeuristicNode(successor, n, predictions[i], n.config)
	}
	n.expansions = 1
}

func (n *heuristicNode) MarkSolved(value float64) {
	n.value = value
	n.expansions = math.Inf(1)
	n.solved = true
}

// SelectionScore adds the evaluator's prior to the UCT exploration term
// (the PUCT family): c * sqrt(ln(N) / (n_i + 1)) + d * prior_i.
func (n *heuristicNode) SelectionScore(i int) float64 {
	exploration := n.config.c * math.Sqrt(math.Log(n.expansions)/(n.children[i].expansions+1))
	return exploration + n.config.d*n.policy[i]
}

// Expand materializes the children and re-derives this node's value as the
// minimax over theirs. The new value climbs the ancestor chain only while
// it improves on an ancestor's current best; expansion counts climb all
// the way to the root regardless.
func (n *heuristicNode) Expand() {
	if n.solved {
		panic("cannot expand a solved node")
	}
	if n.children != nil {
		panic("node already has children")
	}

	n.EnsureChildren()
	if n.children == nil {
		panic("expansion created no children")
	}

	critical := n.childrenMinimax()
	n.value = critical

	node := n.parent
	for node != nil {
		affected := (node.maximizing && critical > node.value) ||
			(!node.maximizing && critical < node.value)
		if !affected {
			// An unaffected ancestor shields all further ancestors from
			// the new value; only the counters keep climbing.
			break
		}
		node.value = critical
		node.expansions++
		node = node.parent
	}
	for node != nil {
		node.expansions++
		node = node.parent
	}
}

func (n *heuristicNode) childrenMinimax() float64 {
	best := math.Inf(-1)
	if !n.maximizing {
		best = math.Inf(1)
	}
	for _, child := range n.children {
		if n.maximizing && child.value > best || !n.maximizing && child.value < best {
			best = child.value
		}
	}
	return best
}

// Merge reconciles children first, then re-derives this node's value and
// expansion count from the merged children.
func (n *heuristicNode) Merge(clones []Node) {
	mergeChildClones(n, clones)

	if len(n.children) == 0 {
		// Neither this node nor any clone expanded here; the cached
		// evaluator output is identical across clones.
		return
	}

	n.value = n.childrenMinimax()
	if !n.solved {
		// Solved children report infinite effort; only solved subtrees may
		// carry an infinite count, so they are left out of the sum.
		expansions := 1.0
		for _, child := range n.children {
			if child.solved {
				continue
			}
			expansions += child.expansions
		}
		n.expansions = expansions
	}
}

func (n *heuristicNode) adoptFrom(clone Node) {
	c := clone.(*heuristicNode)
	n.children = c.children
	for _, child := range n.children {
		child.parent = n
	}
}

func (n *heuristicNode) clone(parent Node) Node {
	copied := &heuristicNode{
		position:   n.position,
		maximizing: n.maximizing,
		solved:     n.solved,
		value:      n.value,
		policy:     n.policy, // read-only after creation
		expansions: n.expansions,
		config:     n.config,
	}
	if parent != nil {
		copied.parent = parent.(*heuristicNode)
	}
	if n.children != nil {
		copied.children = make([]*heuristicNode, len(n.children))
		for i, child := range n.children {
			copied.children[i] = child.clone(copied).(*heuristicNode)
		}
	}
	return copied
}
