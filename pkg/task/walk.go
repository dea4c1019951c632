package task

// Walk visits every node of forest in pre-order, children in their given
// order, regardless of [Item.Expanded]. fn receives the node and its depth
// (roots are level 0); returning false stops the walk.
//
// A node reached a second time, through a cycle or because it is shared by
// two parents, is skipped, so Walk always terminates.
func Walk(forest Forest, fn func(it *Item, level int) bool) {
	seen := make(map[*Item]struct{})
	var visit func(items []*Item, level int) bool
	visit = func(items []*Item, level int) bool {
		for _, it := range items {
			if it == nil {
				continue
			}
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}
			if !fn(it, level) {
				return false
			}
			if !visit(it.Children, level+1) {
				return false
			}
		}
		return true
	}
	visit(forest, 0)
}

// FindByID returns the first node in pre-order whose ID equals id. The
// search descends into collapsed subtrees. The returned pointer is the
// node inside forest, not a copy.
func FindByID(forest Forest, id ID) (*Item, bool) {
	var found *Item
	Walk(forest, func(it *Item, _ int) bool {
		if it.ID == id {
			found = it
			return false
		}
		return true
	})
	return found, found != nil
}

// Count returns the number of distinct nodes in forest.
func Count(forest Forest) int {
	n := 0
	Walk(forest, func(*Item, int) bool {
		n++
		return true
	})
	return n
}

// Depth returns the number of levels in forest: 0 for an empty forest,
// 1 when there are only roots.
func Depth(forest Forest) int {
	depth := 0
	Walk(forest, func(_ *Item, level int) bool {
		depth = max(depth, level+1)
		return true
	})
	return depth
}

// Path returns the chain of nodes from a root down to the node with the
// given id, or nil when no such node exists.
func Path(forest Forest, id ID) []*Item {
	var stack []*Item
	var found []*Item
	Walk(forest, func(it *Item, level int) bool {
		stack = append(stack[:level], it)
		if it.ID == id {
			found = append([]*Item(nil), stack...)
			return false
		}
		return true
	})
	return found
}
