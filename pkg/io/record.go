package io

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// Keys names the record fields that hold a task's id and dates.
// Empty fields fall back to the defaults "id", "startDate" and "endDate".
type Keys struct {
	ID    string
	Start string
	End   string
}

// Default field names.
const (
	DefaultIDKey    = "id"
	DefaultStartKey = "startDate"
	DefaultEndKey   = "endDate"
)

// Fixed field names.
const (
	keyTitle    = "title"
	keyProgress = "progress"
	keyColor    = "color"
	keyType     = "type"
	keyExpanded = "expanded"
	keyChildren = "children"
	keyTasks    = "tasks"
)

// DefaultKeys returns the default field names.
func DefaultKeys() Keys {
	return Keys{ID: DefaultIDKey, Start: DefaultStartKey, End: DefaultEndKey}
}

func (k Keys) withDefaults() Keys {
	if k.ID == "" {
		k.ID = DefaultIDKey
	}
	if k.Start == "" {
		k.Start = DefaultStartKey
	}
	if k.End == "" {
		k.End = DefaultEndKey
	}
	return k
}

// =============================================================================
// Decoding
// =============================================================================

// forestFromDocument accepts either a bare list of task records or an
// object with a "tasks" list.
func forestFromDocument(doc any, keys Keys) (task.Forest, error) {
	if m, ok := doc.(map[string]any); ok {
		list, found := m[keyTasks]
		if !found {
			return nil, errors.New(errors.ErrCodeInvalidInput, "document has no %q list", keyTasks)
		}
		doc = list
	}
	if doc == nil {
		return task.Forest{}, nil
	}
	items, err := itemsFromList(doc, keys.withDefaults(), "")
	if err != nil {
		return nil, err
	}
	return task.Forest(items), nil
}

func itemsFromList(v any, keys Keys, parent string) ([]*task.Item, error) {
	records, err := asRecords(v)
	if err != nil {
		if parent != "" {
			return nil, fmt.Errorf("task %s: children: %w", parent, err)
		}
		return nil, err
	}
	items := make([]*task.Item, 0, len(records))
	for i, rec := range records {
		it, err := itemFromRecord(rec, keys)
		if err != nil {
			return nil, fmt.Errorf("task #%d: %w", i+1, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func asRecords(v any) ([]map[string]any, error) {
	switch list := v.(type) {
	case []map[string]any:
		return list, nil
	case []any:
		out := make([]map[string]any, 0, len(list))
		for i, e := range list {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "entry %d is %T, want an object", i+1, e)
			}
			out = append(out, m)
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "expected a list of tasks, got %T", v)
}

func itemFromRecord(rec map[string]any, keys Keys) (*task.Item, error) {
	it := &task.Item{}

	if raw, ok := rec[keys.ID]; ok && raw != nil {
		id, err := text(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keys.ID, err)
		}
		it.ID = task.ID(id)
	} else {
		it.ID = task.ID(uuid.NewString())
	}

	it.Start = dateValue(rec[keys.Start])
	it.End = dateValue(rec[keys.End])

	for k, v := range rec {
		if v == nil {
			continue
		}
		switch k {
		case keys.ID, keys.Start, keys.End:
		case keyTitle:
			s, err := text(v)
			if err != nil {
				return nil, fmt.Errorf("task %s: title: %w", it.ID, err)
			}
			it.Title = s
		case keyProgress:
			p, err := number(v)
			if err != nil {
				return nil, fmt.Errorf("task %s: progress: %w", it.ID, err)
			}
			it.Progress = &p
		case keyColor:
			it.Color = fmt.Sprint(v)
		case keyType:
			it.Type = task.Type(fmt.Sprint(v))
		case keyExpanded:
			b, ok := v.(bool)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "task %s: expanded must be a boolean", it.ID)
			}
			it.Expanded = &b
		case keyChildren:
			kids, err := itemsFromList(v, keys, string(it.ID))
			if err != nil {
				return nil, err
			}
			it.Children = kids
		default:
			if it.Extra == nil {
				it.Extra = make(map[string]any)
			}
			it.Extra[k] = plain(v)
		}
	}
	return it, nil
}

// text converts ids and titles to their text form. Integral numbers print
// without a fraction so that 1 and "1" name the same task.
func text(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10), nil
		}
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unsupported value of type %T", v)
}

func number(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Float64()
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case float64:
		return x, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "not a number: %v", v)
}

// dateValue normalizes a date field. TOML local dates carry a placeholder
// zone and are moved to time.Local keeping their wall-clock value.
func dateValue(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		if name, _ := t.Zone(); strings.HasSuffix(name, "-local") {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
		}
	}
	return timeline.Normalize(v)
}

// plain converts json.Number values into int64 or float64 so that extra
// fields can be written back out in any format.
func plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	}
	return v
}

// =============================================================================
// Encoding
// =============================================================================

// recordsFromForest is the inverse of forestFromDocument. Dates are written
// with timeline.Encode, so times of day survive a round trip; invalid dates
// and unset optional fields are omitted.
func recordsFromForest(forest task.Forest, keys Keys) []map[string]any {
	keys = keys.withDefaults()
	out := make([]map[string]any, 0, len(forest))
	for _, it := range forest {
		if it == nil {
			continue
		}
		out = append(out, recordFromItem(it, keys))
	}
	return out
}

func recordFromItem(it *task.Item, keys Keys) map[string]any {
	rec := make(map[string]any, len(it.Extra)+8)
	for k, v := range it.Extra {
		rec[k] = v
	}
	rec[keys.ID] = string(it.ID)
	rec[keyTitle] = it.Title
	if timeline.Valid(it.Start) {
		rec[keys.Start] = timeline.Encode(it.Start)
	}
	if timeline.Valid(it.End) {
		rec[keys.End] = timeline.Encode(it.End)
	}
	if it.Progress != nil {
		rec[keyProgress] = *it.Progress
	}
	if it.Color != "" {
		rec[keyColor] = it.Color
	}
	if it.Type != "" {
		rec[keyType] = string(it.Type)
	}
	if it.Expanded != nil {
		rec[keyExpanded] = *it.Expanded
	}
	if len(it.Children) > 0 {
		rec[keyChildren] = recordsFromForest(task.Forest(it.Children), keys)
	}
	return rec
}
