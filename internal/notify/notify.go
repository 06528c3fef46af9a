// Package notify delivers analysis alerts outside the overlay window, as
// desktop notifications and optional speech.
package notify

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(title, body string) error
}

// Speaker reads an alert aloud.
type Speaker interface {
	Speak(text string) error
}

// Desktop returns the platform desktop notifier.
func Desktop() Notifier {
	return desktopNotifier{}
}

// Silent returns notifier and speaker implementations that do nothing,
// used when the corresponding settings are off.
func Silent() (Notifier, Speaker) {
	return noopNotifier{}, noopSpeaker{}
}

type noopNotifier struct{}

func (noopNotifier) Notify(title, body string) error { return nil }

type noopSpeaker struct{}

func (noopSpeaker) Speak(text string) error { return nil }
