// Package export renders stored submissions as CSV or JSON.
//
// CSV columns are id, timestamp, completionTime, then one column per
// question id that appears in the data. Multi-select answers are joined
// with "; " inside a quoted field. A list with no submissions gives the
// header row only.
package export
