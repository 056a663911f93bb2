package playlistview

import tea "github.com/charmbracelet/bubbletea"

// RowSource is the pull side of the row contract.
type RowSource interface {
	RowCount() int
	RowContent(index int) Row
}

// Surface is the presentation surface driven by the controller.
type Surface interface {
	// ReloadRows discards every row and re-pulls them from rows.
	ReloadRows(rows RowSource)
	// DeselectRow clears transient highlight state of a row.
	DeselectRow(index int)
	// SetAffordance moves the affordance to a. Animated transitions start
	// from whatever is currently on screen and must not block.
	SetAffordance(a Affordance, t Transition) tea.Cmd
	// PresentDetail shows d on top of the list.
	PresentDetail(d Detail) tea.Cmd
	// DismissDetail removes the presented detail, if any.
	DismissDetail()
}

// Detail is a screen presented by ShowDetail.
type Detail interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Close releases the detail's own subscription.
	Close()
}
