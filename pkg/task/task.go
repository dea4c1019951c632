package task

import (
	"maps"
	"time"

	"github.com/matzehuels/ganttline/pkg/timeline"
)

// ID identifies a task. Integer ids from task files are stored as their
// decimal text so that 1 and "1" name the same task.
type ID string

// Type is an opaque category tag. The engine only distinguishes milestones,
// which render as a marker instead of a bar.
type Type string

const (
	TypeTask      Type = "task"
	TypeMilestone Type = "milestone"
	TypeProject   Type = "project"
)

// Item is one node of a task forest.
//
// Start and End are normalized dates; End is inclusive. Either may be
// [timeline.Invalid] when the source text could not be parsed. A parent
// exclusively owns its Children; the engine never mutates them.
type Item struct {
	ID       ID
	Title    string
	Start    time.Time
	End      time.Time
	Progress *float64 // 0..100, display only
	Color    string
	Type     Type

	// Expanded is nil when unspecified, which counts as expanded.
	// An explicit false hides the subtree from [Flatten].
	Expanded *bool

	Children []*Item

	// Extra holds caller-defined fields carried through unchanged.
	Extra map[string]any
}

// Forest is an ordered list of root tasks.
type Forest []*Item

// IsExpanded reports whether the item's children should be shown.
func (it *Item) IsExpanded() bool { return it.Expanded == nil || *it.Expanded }

// HasChildren reports whether the item has at least one child.
func (it *Item) HasChildren() bool { return len(it.Children) > 0 }

// IsMilestone reports whether the item is tagged as a milestone.
func (it *Item) IsMilestone() bool { return it.Type == TypeMilestone }

// Duration returns the inclusive day count from Start to End.
// See [timeline.Duration].
func (it *Item) Duration() int { return timeline.Duration(it.Start, it.End) }

// Shallow returns a copy of the item's own fields with Children removed.
// Extra is cloned so the copy can be changed without touching the original.
func (it *Item) Shallow() Item {
	c := *it
	c.Children = nil
	c.Extra = maps.Clone(it.Extra)
	if it.Progress != nil {
		p := *it.Progress
		c.Progress = &p
	}
	if it.Expanded != nil {
		e := *it.Expanded
		c.Expanded = &e
	}
	return c
}

// Bool returns a pointer to v, for setting [Item.Expanded].
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v, for setting [Item.Progress].
func Float(v float64) *float64 { return &v }
