package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which day names are
	// abbreviated and exercise details are hidden.
	LayoutCompactWidth = 70
)

// Log display limits.
const (
	// LogTailLines is how many lines of the log file the diagnostics view reads.
	LogTailLines = 400
)

// chromeHeight is the number of lines used by the header, day bar, status
// line and footer around the main content.
const chromeHeight = 6
