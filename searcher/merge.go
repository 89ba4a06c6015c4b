package searcher

// mergeChildClones reconciles the child lists of a node and its clones.
// Children are adopted root-first from the first clone that has any, so
// the merged tree never needs to union differing topologies: clones all
// grew from the same baseline, and whichever expanded a node first fixed
// the child order for everyone. Statistics then merge recursively per
// matching child.
func mergeChildClones(node Node, clones []Node) {
	if node.NumChildren() == 0 {
		adopted := -1
		for i, clone := range clones {
			if clone.NumChildren() > 0 {
				// The adopted clone's subtree becomes this node's subtree
				// wholesale; counting it again would double its playouts.
				node.adoptFrom(clone)
				adopted = i
				break
			}
		}
		if adopted < 0 {
			return
		}
		clones = clones[adopted+1:]
	}

	for i := 0; i < node.NumChildren(); i++ {
		childClones := make([]Node, 0, len(clones))
		for _, clone := range clones {
			if clone.NumChildren() > 0 {
				childClones = append(childClones, clone.ChildAt(i))
			}
		}
		node.ChildAt(i).Merge(childClones)
	}
}

// CloneTree deep-copies a search tree so an independent session can grow
// it without sharing any mutable state with the original.
func CloneTree(root Node) Node {
	return root.clone(nil)
}
