package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100
)

// Chrome heights, in lines.
const (
	headerLines   = 1
	cmdBarLines   = 1
	tableChrome   = 4 // top border, header row, header separator, bottom border
	minTableRows  = 1
	logTailLines  = 200
	historyLines  = 12
	helpModalSize = 44
)
