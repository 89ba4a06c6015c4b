package searcher

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// MovePolicy converts a searched root into a normalized probability
// distribution over its children, suitable both for choosing a move and as
// a training target for an evaluator's policy head.
//
// For a solved root only outcome-preserving children get weight, biased
// toward the fastest win or the longest holdout. For an unsolved root a
// child's weight is its search effort, with proven-losing children zeroed
// and solved non-losing children damped by the current winning chance: the
// better the position looks, the less appealing a forced draw.
func MovePolicy(root Node) []float64 {
	root.EnsureChildren()
	weights := make([]float64, root.NumChildren())
	optimal := optimalValue(root.Maximizing())

	if root.Solved() {
		for i := range weights {
			child := root.ChildAt(i)
			if !child.Solved() || child.Evaluation() != root.Evaluation() {
				continue
			}
			depth := float64(depthToEnd(child))
			if root.Evaluation() == optimal {
				weights[i] = math.Exp(-depth)
			} else {
				weights[i] = math.Exp(depth)
			}
		}
	} else {
		winningChance := root.Evaluation()*optimal/2 + 0.5
		for i := range weights {
			child := root.ChildAt(i)
			switch {
			case !child.Solved():
				weights[i] = child.Expansions()
			case child.Evaluation() == -optimal:
				// Guaranteed loss, never worth weight.
			default:
				weights[i] = root.Expansions() * (1 - winningChance)
			}
		}
	}

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		// No child has earned weight yet (a barely-searched root, or only
		// proven losses): fall back to a uniform draw over the non-losing
		// children, or over all of them when every move provably loses.
		for i := range weights {
			child := root.ChildAt(i)
			if !child.Solved() || child.Evaluation() != -optimal {
				weights[i] = 1
				sum++
			}
		}
		if sum == 0 {
			for i := range weights {
				weights[i] = 1
			}
			sum = float64(len(weights))
		}
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// BestNode returns the child with the maximum policy weight.
func BestNode(root Node) Node {
	weights := MovePolicy(root)
	best := 0
	for i, w := range weights {
		if w > weights[best] {
			best = i
		}
	}
	return root.ChildAt(best)
}

// SampleBestNode draws a child at random in proportion to the policy
// weights, for exploration during self-play data generation.
func SampleBestNode(root Node, src rand.Source) Node {
	weights := MovePolicy(root)
	i, ok := sampleuv.NewWeighted(weights, src).Take()
	if !ok {
		panic("move policy has no positive weight")
	}
	return root.ChildAt(i)
}

// depthToEnd measures the proof path under a solved node: the shortest
// when the mover is winning, the longest when drawing or losing, counted
// only over solved descendants that preserve the node's proven value.
func depthToEnd(node Node) int {
	if !node.Solved() {
		panic("depthToEnd on an unsolved node")
	}
	if node.NumChildren() == 0 {
		return 0
	}

	winning := node.Evaluation() == optimalValue(node.Maximizing())
	best := -1
	for i := 0; i < node.NumChildren(); i++ {
		child := node.ChildAt(i)
		if !child.Solved() || child.Evaluation() != node.Evaluation() {
			continue
		}
		depth := depthToEnd(child)
		if best < 0 || (winning && depth < best) || (!winning && depth > best) {
			best = depth
		}
	}
	if best < 0 {
		// Solved without a matching child can only happen at a terminal
		// position, handled above.
		panic("solved node has no child matching its value")
	}
	return 1 + best
}
