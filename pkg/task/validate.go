package task

import (
	"errors"

	gerrors "github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// Validate checks the preconditions the layout engine assumes but does not
// enforce. Every problem found is reported; the result joins one coded
// error per problem (see [gerrors.Is]):
//
//   - CYCLE when a node is its own ancestor or is shared by two parents
//   - EMPTY_ID / INVALID_INPUT for unusable ids
//   - DUPLICATE_ID when two nodes share an id
//   - INVALID_DATE when Start or End could not be parsed
//   - INVERTED_RANGE when End falls on an earlier day than Start
//
// Validate returns nil for an empty forest.
func Validate(forest Forest) error {
	var errs []error
	errs = append(errs, checkStructure(forest)...)

	ids := make(map[ID]int)
	Walk(forest, func(it *Item, _ int) bool {
		if err := gerrors.ValidateTaskID(string(it.ID)); err != nil {
			errs = append(errs, err)
		} else if ids[it.ID]++; ids[it.ID] == 2 {
			errs = append(errs, gerrors.New(gerrors.ErrCodeDuplicateID, "duplicate task id %q", it.ID))
		}

		if !timeline.Valid(it.Start) {
			errs = append(errs, gerrors.New(gerrors.ErrCodeInvalidDate, "task %q: invalid start date", it.ID))
		}
		if !timeline.Valid(it.End) {
			errs = append(errs, gerrors.New(gerrors.ErrCodeInvalidDate, "task %q: invalid end date", it.ID))
		}
		if timeline.Valid(it.Start) && timeline.Valid(it.End) && it.Duration() < 1 {
			errs = append(errs, gerrors.New(gerrors.ErrCodeInvertedRange,
				"task %q: end %s is before start %s", it.ID,
				timeline.FormatDate(it.End, ""), timeline.FormatDate(it.Start, "")))
		}
		return true
	})

	return errors.Join(errs...)
}

// checkStructure reports nodes that are reachable more than once. The tree
// is walked with white/gray/black coloring: meeting a gray node means a
// cycle, meeting a black node means two parents share it.
func checkStructure(forest Forest) []error {
	const (
		white = iota
		gray
		black
	)

	var errs []error
	color := make(map[*Item]int)

	var dfs func(it *Item)
	dfs = func(it *Item) {
		color[it] = gray
		for _, c := range it.Children {
			if c == nil {
				continue
			}
			switch color[c] {
			case white:
				dfs(c)
			case gray:
				errs = append(errs, gerrors.New(gerrors.ErrCodeCycle, "task %q is its own ancestor", c.ID))
			case black:
				errs = append(errs, gerrors.New(gerrors.ErrCodeCycle, "task %q appears under more than one parent", c.ID))
			}
		}
		color[it] = black
	}

	for _, root := range forest {
		if root == nil {
			continue
		}
		switch color[root] {
		case white:
			dfs(root)
		default:
			errs = append(errs, gerrors.New(gerrors.ErrCodeCycle, "task %q appears more than once", root.ID))
		}
	}
	return errs
}
