package searcher

import "math"

// NextExpansion walks from root to the node where the next unit of search
// work should happen, closing out provably solved subtrees along the way.
// It returns nil when the tree rooted at root is fully solved.
//
// The descent picks, at each level, the child with the extremal combined
// score (estimated value plus exploration bonus, sign-adjusted for the
// mover), with two overrides: an unvisited child is taken immediately, and
// a solved child already achieving the mover's optimal outcome proves this
// node, which re-enters selection at the parent. The climb back up is a
// plain loop rather than call-stack recursion; trees grow deep.
func NextExpansion(root Node) Node {
	node := root
	for node != nil {
		if node.Solved() {
			// Reachable only on entry: an ascent never lands on a node it
			// has just marked solved without moving to its parent first.
			return nil
		}
		if node.Expansions() == 0 {
			return node
		}

		node.EnsureChildren()
		maximizing := node.Maximizing()
		optimal := optimalValue(maximizing)

		best := Node(nil)
		bestScore := math.Inf(-1)
		if !maximizing {
			bestScore = math.Inf(1)
		}

		proved := false
		for i := 0; i < node.NumChildren(); i++ {
			child := node.ChildAt(i)
			if child.Solved() {
				if child.Evaluation() == optimal {
					// The mover already has a proven optimal reply here, so
					// this node is decided; push the proof toward the root.
					node.MarkSolved(optimal)
					node = node.Parent()
					proved = true
					break
				}
				// A solved suboptimal child is never worth re-searching,
				// but a sibling may still do better.
				continue
			}

			// An infinite bonus marks an unvisited child; take it before
			// touching Evaluation, which would divide by zero.
			score := node.SelectionScore(i)
			if math.IsInf(score, 1) {
				return child
			}

			combined := child.Evaluation() + score
			if !maximizing {
				combined = child.Evaluation() - score
			}
			if maximizing && combined > bestScore || !maximizing && combined < bestScore {
				bestScore = combined
				best = child
			}
		}
		if proved {
			continue
		}

		if best == nil {
			// Every child is solved without an optimal one for the mover:
			// the node's exact value is the minimax over the children.
			node.MarkSolved(childrenMinimax(node))
			node = node.Parent()
			continue
		}

		node = best
	}
	return nil
}

func childrenMinimax(node Node) float64 {
	maximizing := node.Maximizing()
	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	for i := 0; i < node.NumChildren(); i++ {
		v := node.ChildAt(i).Evaluation()
		if maximizing && v > best || !maximizing && v < best {
			best = v
		}
	}
	return best
}
