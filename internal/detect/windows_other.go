//go:build !windows

package detect

import "errors"

// Window describes one enumerated top-level window.
type Window struct {
	Handle uintptr
	Title  string
	X      int
	Y      int
	Width  int
	Height int
}

// ErrUnsupported reports that window enumeration needs Windows.
var ErrUnsupported = errors.New("window enumeration is only available on windows")

// ListWindows is unavailable off Windows; process detection still works.
func ListWindows() ([]Window, error) {
	return nil, ErrUnsupported
}

// FindWindowByTitle is unavailable off Windows.
func FindWindowByTitle(substr string) (Window, bool, error) {
	return Window{}, false, ErrUnsupported
}
