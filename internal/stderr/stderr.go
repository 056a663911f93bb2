//go:build !windows

// Package stderr redirects file descriptor 2 into a channel so audio
// backends that write there directly cannot corrupt the terminal UI.
package stderr

import (
	"fmt"
	"os"
	"syscall"
)

// Capture holds a redirected stderr.
type Capture struct {
	lines  chan string
	orig   int
	read   *os.File
	write  *os.File
	closed bool
}

// Start redirects fd 2 to a pipe. The program can continue without
// capture if it fails.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("dup stderr: %w", err)
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, fmt.Errorf("redirect stderr: %w", err)
	}

	c := &Capture{
		lines: make(chan string, bufferSize),
		orig:  orig,
		read:  r,
		write: w,
	}
	go scan(r, c.lines)
	return c, nil
}

// Lines receives captured non-empty lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string {
	if c == nil {
		return nil
	}
	return c.lines
}

// WriteOriginal writes to the terminal's stderr, bypassing capture.
func (c *Capture) WriteOriginal(msg string) {
	if c == nil || c.closed {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores fd 2. Safe to call more than once and on a nil Capture.
func (c *Capture) Stop() {
	if c == nil || c.closed {
		return
	}
	c.closed = true
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	// closing the write end ends scan, which closes lines
	c.write.Close()
}
