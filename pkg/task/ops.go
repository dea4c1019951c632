package task

// Clone returns a deep copy of forest. Nodes reached a second time (shared
// or cyclic references) are dropped from the copy, matching what [Walk]
// visits.
func Clone(forest Forest) Forest {
	return mapForest(forest, func(*Item) bool { return true }, nil)
}

// ExpandAll returns a copy of forest with every parent marked expanded.
func ExpandAll(forest Forest) Forest {
	return mapForest(forest, func(*Item) bool { return true }, func(orig, c *Item) {
		if orig.HasChildren() {
			c.Expanded = Bool(true)
		}
	})
}

// CollapseAll returns a copy of forest with every parent marked collapsed,
// so only the roots remain visible.
func CollapseAll(forest Forest) Forest {
	return mapForest(forest, func(*Item) bool { return true }, func(orig, c *Item) {
		if orig.HasChildren() {
			c.Expanded = Bool(false)
		}
	})
}

// SetExpanded returns a copy of forest in which the first node with the
// given id has its expanded flag set to expanded. The boolean result is
// false, and the copy unchanged, when no node has that id.
func SetExpanded(forest Forest, id ID, expanded bool) (Forest, bool) {
	found := false
	out := mapForest(forest, func(*Item) bool { return true }, func(_, c *Item) {
		if !found && c.ID == id {
			c.Expanded = Bool(expanded)
			found = true
		}
	})
	return out, found
}

// Toggle flips the expanded flag of the node with the given id.
func Toggle(forest Forest, id ID) (Forest, bool) {
	it, ok := FindByID(forest, id)
	if !ok {
		return Clone(forest), false
	}
	return SetExpanded(forest, id, !it.IsExpanded())
}

// Filter returns a copy of forest holding the nodes for which keep returns
// true, together with their ancestors so the tree shape is preserved.
// Subtrees with no matching node are dropped.
func Filter(forest Forest, keep func(*Item) bool) Forest {
	if keep == nil {
		return Clone(forest)
	}
	memo := make(map[*Item]bool)
	var matches func(it *Item, path map[*Item]bool) bool
	matches = func(it *Item, path map[*Item]bool) bool {
		if v, ok := memo[it]; ok {
			return v
		}
		if path[it] {
			return false
		}
		path[it] = true
		ok := keep(it)
		for _, c := range it.Children {
			if c != nil && matches(c, path) {
				ok = true
			}
		}
		delete(path, it)
		memo[it] = ok
		return ok
	}
	return mapForest(forest, func(it *Item) bool {
		return matches(it, make(map[*Item]bool))
	}, nil)
}

// mapForest copies the nodes accepted by include in pre-order, applying
// edit to each copy before its children are copied.
func mapForest(forest Forest, include func(*Item) bool, edit func(orig, c *Item)) Forest {
	seen := make(map[*Item]struct{})
	var copyItems func(items []*Item) []*Item
	copyItems = func(items []*Item) []*Item {
		var out []*Item
		for _, it := range items {
			if it == nil {
				continue
			}
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}
			if !include(it) {
				continue
			}
			c := it.Shallow()
			if edit != nil {
				edit(it, &c)
			}
			c.Children = copyItems(it.Children)
			out = append(out, &c)
		}
		return out
	}
	return Forest(copyItems(forest))
}
