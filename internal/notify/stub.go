//go:build !linux

package notify

// New returns Nop outside Linux.
func New() (Notifier, error) {
	return Nop{}, nil
}
