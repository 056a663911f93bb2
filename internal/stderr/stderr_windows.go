//go:build windows

package stderr

import "os"

// Capture is a no-op on Windows; its audio backends do not write to fd 2.
type Capture struct{}

// Start returns a Capture that captures nothing.
func Start() (*Capture, error) { return &Capture{}, nil }

// Lines returns nil.
func (c *Capture) Lines() <-chan string { return nil }

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop does nothing.
func (c *Capture) Stop() {}
