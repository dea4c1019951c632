// Package io reads and writes task forests as JSON, YAML or TOML files.
//
// # Overview
//
// Task files hold the hierarchical task list a chart is drawn from. The
// three encodings share one record layout, so a forest can be converted
// between them without loss:
//
//	{
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "title": "Design",
//	      "startDate": "2025-01-01",
//	      "endDate": "2025-01-03",
//	      "progress": 40,
//	      "children": [
//	        {"id": 2, "title": "Review", "startDate": "2025-01-02", "endDate": "2025-01-05"}
//	      ]
//	    }
//	  ]
//	}
//
// JSON input may also be a bare array of tasks.
//
// # Fields
//
// Recognized fields:
//   - id: string or integer; integers are stored as text. A missing id is
//     replaced by a random UUID.
//   - startDate, endDate: dates as text, Unix milliseconds or native
//     YAML/TOML dates. endDate is inclusive.
//   - title, progress (0-100), color, type ("task", "milestone", "project")
//   - expanded: false hides the task's children in the chart
//   - children: nested tasks
//
// Any other field is preserved in [task.Item.Extra] and written back on
// export.
//
// # Custom Field Names
//
// Data produced by other tools often names the id and date fields
// differently. [Keys] overrides them:
//
//	forest, err := io.Import("plan.json", io.Keys{ID: "key", Start: "from", End: "to"})
//
// # Errors
//
// Decoding errors and structural problems (a task that is not an object,
// children that are not a list) fail the import. Unparseable dates do not:
// they become invalid dates, which pkg/task's Validate reports and the
// layout engine tolerates.
package io
