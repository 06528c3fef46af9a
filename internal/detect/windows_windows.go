//go:build windows

package detect

import (
	"strings"
	"syscall"
	"unsafe"
)

// Window describes one enumerated top-level window.
type Window struct {
	Handle uintptr
	Title  string
	X      int
	Y      int
	Width  int
	Height int
}

type winRect struct {
	Left, Top, Right, Bottom int32
}

var (
	user32             = syscall.NewLazyDLL("user32.dll")
	procEnumWindows    = user32.NewProc("EnumWindows")
	procGetWindowTextW = user32.NewProc("GetWindowTextW")
	procGetWindowRect  = user32.NewProc("GetWindowRect")
	procIsWindowVis    = user32.NewProc("IsWindowVisible")
)

// ListWindows enumerates visible, titled top-level windows. Used by the
// capture picker to let the user choose a game window by title.
func ListWindows() ([]Window, error) {
	var windows []Window

	callback := syscall.NewCallback(func(hwnd syscall.Handle, lparam uintptr) uintptr {
		visible, _, _ := procIsWindowVis.Call(uintptr(hwnd))
		if visible == 0 {
			return 1
		}

		title := make([]uint16, 256)
		n, _, _ := procGetWindowTextW.Call(uintptr(hwnd),
			uintptr(unsafe.Pointer(&title[0])), uintptr(len(title)))
		if n == 0 {
			return 1
		}

		var rect winRect
		procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&rect)))

		windows = append(windows, Window{
			Handle: uintptr(hwnd),
			Title:  syscall.UTF16ToString(title[:n]),
			X:      int(rect.Left),
			Y:      int(rect.Top),
			Width:  int(rect.Right - rect.Left),
			Height: int(rect.Bottom - rect.Top),
		})
		return 1
	})

	ret, _, err := procEnumWindows.Call(callback, 0)
	if ret == 0 {
		return nil, err
	}
	return windows, nil
}

// FindWindowByTitle returns the first window whose title contains the
// given substring.
func FindWindowByTitle(substr string) (Window, bool, error) {
	windows, err := ListWindows()
	if err != nil {
		return Window{}, false, err
	}
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), strings.ToLower(substr)) {
			return w, true, nil
		}
	}
	return Window{}, false, nil
}
