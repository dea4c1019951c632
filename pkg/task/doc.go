// Package task defines the task forest that Gantt charts are built from and
// the tree operations the layout engine needs.
//
// # Model
//
// A [Forest] is an ordered list of root [Item] values. Each item owns its
// Children; identifiers are compared as text ([ID]). Dates are already
// normalized by the time they reach this package (see pkg/timeline and
// pkg/io), and an unparseable date is simply [timeline.Invalid].
//
// # Traversal
//
// All traversals are pre-order with children in their given order:
//
//   - [Walk] visits every node, including those under collapsed parents
//   - [Flatten] produces display [Row] values, skipping collapsed subtrees
//   - [FindByID] returns the first node with a given id
//   - [OverallRangeAt] pads the min start / max end by a buffer of days
//
// Every traversal keeps a visited set keyed by node pointer. Cyclic or
// shared nodes are visited once, which keeps the operations total on
// malformed input; [Validate] reports those shapes as errors.
//
// # Immutability
//
// No function in this package modifies its input. [ExpandAll],
// [CollapseAll], [SetExpanded], [Toggle] and [Filter] return copies.
//
// # Example
//
//	forest := task.Forest{{
//	    ID: "1", Start: d("2025-01-01"), End: d("2025-01-03"),
//	    Children: []*task.Item{{ID: "2", Start: d("2025-01-02"), End: d("2025-01-05")}},
//	}}
//	task.OverallRangeAt(forest, 0, now) // 2025-01-01 .. 2025-01-05
//	task.Flatten(forest)                // levels [0, 1]
package task
