//go:build !linux

package notify

// New returns a no-op Sender; desktop notifications need D-Bus.
func New() Sender {
	return noopSender{}
}
