// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for viewport and panel sizing
const (
	// Viewport padding
	ViewportHorizontalPadding = 2

	// Card grid
	CardWidth   = 28 // outer width including border
	CardHeight  = 4  // border + name + species
	CardGap     = 1
	CardTextMax = CardWidth - 4

	// Fixed rows around the grid
	NavbarHeight  = 2
	HeaderHeight  = 4
	FooterHeight  = 4
	OverlayMargin = 4

	// Responsive breakpoints
	MinimumTerminalWidth  = 40
	MinimumTerminalHeight = 16
	DefaultTerminalWidth  = 100
	DefaultTerminalHeight = 30
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
}

// NewLayoutConfig creates a layout configuration for the given terminal
// size. Sizes below the minimum are clamped.
func NewLayoutConfig(width, height int) LayoutConfig {
	if width < MinimumTerminalWidth {
		width = MinimumTerminalWidth
	}
	if height < MinimumTerminalHeight {
		height = MinimumTerminalHeight
	}
	return LayoutConfig{TerminalWidth: width, TerminalHeight: height}
}

// ContentWidth returns the usable content width
func (l LayoutConfig) ContentWidth() int {
	return l.TerminalWidth - ViewportHorizontalPadding
}

// GridHeight returns the rows left for the card grid
func (l LayoutConfig) GridHeight() int {
	h := l.TerminalHeight - NavbarHeight - HeaderHeight - FooterHeight
	if h < CardHeight {
		return CardHeight
	}
	return h
}

// GridColumns returns how many cards fit side by side
func (l LayoutConfig) GridColumns() int {
	cols := (l.ContentWidth() + CardGap) / (CardWidth + CardGap)
	if cols < 1 {
		return 1
	}
	return cols
}

// OverlayWidth returns the width of the detail overlay
func (l LayoutConfig) OverlayWidth() int {
	w := l.TerminalWidth - OverlayMargin*2
	if w > 80 {
		return 80
	}
	return w
}
