// Package ui holds layout constants and the sizing/focus base shared by
// the terminal panels.
package ui

// Layout constants.
const (
	// ScrollMargin is the number of rows kept visible around the cursor.
	ScrollMargin = 2

	// BorderHeight is the vertical space taken by a rounded panel border.
	BorderHeight = 2

	// HeaderHeight is the header line plus its separator.
	HeaderHeight = 2

	// PanelOverhead is what a bordered panel with a header loses to chrome.
	PanelOverhead = BorderHeight + HeaderHeight

	// MinProgressBarWidth is the narrowest bar worth drawing.
	MinProgressBarWidth = 5
)

// Base carries the size and focus of a panel. Embed it in panel models.
type Base struct {
	width, height int
	focused       bool
}

// SetFocused sets whether the panel receives keys.
func (b *Base) SetFocused(focused bool) { b.focused = focused }

// IsFocused reports whether the panel receives keys.
func (b Base) IsFocused() bool { return b.focused }

// SetSize sets the outer dimensions of the panel.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the outer width.
func (b Base) Width() int { return b.width }

// Height returns the outer height.
func (b Base) Height() int { return b.height }

// ListHeight is the height left for rows once overhead is removed.
func (b Base) ListHeight(overhead int) int {
	return max(b.height-overhead, 0)
}
