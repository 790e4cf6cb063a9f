package ui

// Terminal size limits.
const (
	// MinWidth is the narrowest terminal the menu renders in.
	MinWidth = 80

	// MinHeight is the shortest terminal the menu renders in.
	MinHeight = 20
)

// Fixed rows around the menu list: header, breadcrumb, status and key hints.
const chromeRows = 4

// Dialog widths.
const (
	helpModalWidth   = 48
	editModalWidth   = 60
	optionHelpWidth  = 72
	exitDialogWidth  = 50
	optionHelpHeight = 16
)

// Row prefix width: "[*] " and "(...) " values are padded to this many cells
// so prompts line up.
const valueColumn = 12
