//go:build !linux && !darwin && !windows

package notify

type desktopNotifier struct{}

// Notify is a no-op on unsupported platforms.
func (desktopNotifier) Notify(title, body string) error { return nil }
