//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

type desktopNotifier struct{}

// Notify displays a desktop notification using macOS Notification Center.
func (desktopNotifier) Notify(title, body string) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	return exec.Command("osascript", "-e", script).Run()
}
