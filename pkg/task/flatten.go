package task

// Row is one visible line of a Gantt chart: a copy of the task's own fields
// plus where it sits in the tree.
type Row struct {
	Item
	Level       int  // 0 for roots
	HasChildren bool // true when the task has children, shown or not
}

// Flatten turns forest into display rows in pre-order.
//
// Every root is emitted. A node's children are emitted only when the node
// is expanded (see [Item.IsExpanded]); collapsed subtrees are skipped
// entirely. Rows carry copies, so the caller's tree is never modified.
// A nil or empty forest yields an empty result.
func Flatten(forest Forest) []Row {
	rows := make([]Row, 0, len(forest))
	seen := make(map[*Item]struct{})

	var visit func(items []*Item, level int)
	visit = func(items []*Item, level int) {
		for _, it := range items {
			if it == nil {
				continue
			}
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}

			rows = append(rows, Row{
				Item:        it.Shallow(),
				Level:       level,
				HasChildren: it.HasChildren(),
			})
			if it.HasChildren() && it.IsExpanded() {
				visit(it.Children, level+1)
			}
		}
	}
	visit(forest, 0)
	return rows
}
