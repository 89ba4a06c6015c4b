// Package searcher implements game-tree search over the game.State
// contract: Monte Carlo tree search with either random-rollout or
// evaluator-guided statistics, an exact alpha-beta solver, and synchronous
// and pondering (background) controllers.
package searcher

import "github.com/amaarquadri/PerfectInformationGame/game"

// Hyperparameters for tree search.

// ExplorationC is the default UCT exploration constant.
const ExplorationC = 1.41421356237 // sqrt(2)

// PriorWeightD is the default weight of the evaluator prior in the
// selection score of heuristic nodes.
const PriorWeightD = 1.0

// Node is one searched position. The two variants (rollout statistics and
// evaluator-guided statistics) implement the same contract so the
// selection, backup, best-move and merge drivers are written once.
type Node interface {
	// Position returns the game state this node represents.
	Position() game.State
	// Parent returns the owning node, or nil for a root.
	Parent() Node
	// Maximizing reports whether the mover at this position is player 1.
	Maximizing() bool
	// Solved reports whether the exact game value of this subtree is proven.
	Solved() bool
	// Evaluation returns the current value estimate from the maximizing
	// player's perspective; exact once Solved.
	Evaluation() float64
	// Expansions returns the search effort invested in this subtree.
	// +Inf once Solved, so a solved subtree is never re-selected.
	Expansions() float64
	// EnsureChildren materializes the children, one per legal successor in
	// the game's enumeration order. Idempotent.
	EnsureChildren()
	// NumChildren returns the number of children, 0 before EnsureChildren.
	NumChildren() int
	// ChildAt returns the i-th child.
	ChildAt(i int) Node
	// SelectionScore returns the exploration bonus for the i-th child.
	SelectionScore(i int) float64
	// Expand performs one unit of search work at this node and backs the
	// result up through the ancestors. Panics if the node is solved or,
	// for the heuristic variant, already has children.
	Expand()
	// MarkSolved records the proven game value for this subtree.
	MarkSolved(value float64)
	// Merge folds statistics from independently searched clones of this
	// node into it. All clones share this node's state as their baseline.
	Merge(clones []Node)
	// Detach clears the parent link, making this node a root.
	Detach()

	clone(parent Node) Node
	adoptFrom(clone Node)
}

func optimalValue(maximizing bool) float64 {
	if maximizing {
		return game.Player1Win
	}
	return game.Player2Win
}

// Reroot finds the child of root matching the given position and detaches
// it as the new root, discarding the rest of the tree. A missing match
// means the two sides disagree about legal moves or position identity; that
// is an integration bug, not a recoverable condition.
func Reroot(root Node, position game.State) Node {
	root.EnsureChildren()
	for i := 0; i < root.NumChildren(); i++ {
		child := root.ChildAt(i)
		if child.Position().Hash() == position.Hash() {
			child.Detach()
			return child
		}
	}
	panic("no child matches the reported move")
}
