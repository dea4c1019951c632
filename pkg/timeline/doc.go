// Package timeline provides the calendar arithmetic behind Gantt layouts.
//
// # Overview
//
// Every other ganttline package reasons about dates through this package.
// It normalizes loosely typed date input into [time.Time], counts whole
// days between instants, enumerates day ranges for header rows and formats
// dates with Day.js-style or strftime patterns.
//
// # Invalid Dates
//
// Nothing in this package returns an error. Unparseable input becomes
// [Invalid] (the zero [time.Time]); callers check [Valid] before relying on
// a value. Arithmetic on invalid dates degrades to zero rather than failing:
// [Duration] returns 0, [DaysBetween] returns 0 and [RangeBetween] returns
// nil.
//
// # Inclusive Durations
//
// Task end dates are inclusive, so a task starting and ending on the same
// calendar day lasts one day:
//
//	timeline.Duration("2025-01-01", "2025-01-01") // 1
//	timeline.Duration("2025-01-01", "2025-01-03") // 3
//	timeline.Duration("2025-03-10", "2025-03-09") // 0 (inverted)
//
// # Clock
//
// Only [IsToday] reads the wall clock. [IsSameDay] is the deterministic
// form and should be preferred inside library code.
package timeline
