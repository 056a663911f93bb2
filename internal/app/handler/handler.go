// Package handler chains key handlers until one claims the key.
package handler

import tea "github.com/charmbracelet/bubbletea"

// Result is the outcome of a key handler.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled passes the key to the next handler.
var NotHandled = Result{}

// HandledNoCmd claims the key without a command.
var HandledNoCmd = Result{Handled: true}

// Handled claims the key and returns cmd.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// Handler attempts to handle a key press.
type Handler func(msg tea.KeyMsg) Result

// Chain offers msg to each handler in order and stops at the first one
// that handles it.
func Chain(msg tea.KeyMsg, handlers ...Handler) (bool, tea.Cmd) {
	for _, h := range handlers {
		if r := h(msg); r.Handled {
			return true, r.Cmd
		}
	}
	return false, nil
}
