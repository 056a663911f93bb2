// Package cursor tracks the highlighted row and scroll offset of a list.
package cursor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Cursor holds a row position and the first visible row. List length and
// viewport height are passed per call since both change over time.
type Cursor struct {
	pos    int
	offset int
	margin int
}

// New returns a cursor that keeps margin rows visible around it.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the highlighted row.
func (c Cursor) Pos() int { return c.pos }

// Offset returns the first visible row.
func (c Cursor) Offset() int { return c.offset }

// Move shifts the cursor by delta rows, clamped to the list.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump places the cursor at pos, clamped to the list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.EnsureVisible(listLen, height)
}

// EnsureVisible scrolls so the cursor and its margin are on screen.
func (c *Cursor) EnsureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// ClampToBounds pulls the cursor back inside a list of listLen rows.
func (c *Cursor) ClampToBounds(listLen int) {
	if listLen == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.pos = clamp(c.pos, listLen-1)
	c.offset = min(c.offset, c.pos)
}

// VisibleRange returns the [start, end) rows on screen.
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// KeyMap lists the navigation bindings understood by HandleKey.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
}

// DefaultKeyMap uses vim-style keys plus arrows.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		HalfUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
	}
}

// HandleKey applies a navigation key and reports whether it was one.
func (c *Cursor) HandleKey(msg tea.KeyMsg, km KeyMap, listLen, height int) bool {
	switch {
	case key.Matches(msg, km.Down):
		c.Move(1, listLen, height)
	case key.Matches(msg, km.Up):
		c.Move(-1, listLen, height)
	case key.Matches(msg, km.Top):
		c.Jump(0, listLen, height)
	case key.Matches(msg, km.Bottom):
		c.Jump(listLen-1, listLen, height)
	case key.Matches(msg, km.HalfDown):
		c.Move(max(height/2, 1), listLen, height)
	case key.Matches(msg, km.HalfUp):
		c.Move(-max(height/2, 1), listLen, height)
	default:
		return false
	}
	return true
}

func clamp(v, maxVal int) int {
	return min(max(v, 0), maxVal)
}
