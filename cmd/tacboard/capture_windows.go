//go:build windows

package main

import (
	"log"

	"github.com/hexlab/tacboard/internal/capture"
	"github.com/hexlab/tacboard/internal/detect"
)

// platformCapturer captures the detected game's window via GDI.
func platformCapturer(match detect.Match) capture.Capturer {
	win, ok, err := detect.FindWindowByTitle(match.Profile.Name)
	if err != nil || !ok {
		// Fall back to any window owned by the matched process title.
		win, ok, err = detect.FindWindowByTitle(match.Process)
	}
	if err != nil || !ok {
		return nil
	}
	cap, err := capture.NewWindowCapturer(win.Handle)
	if err != nil {
		log.Printf("Warning: Failed to open window capture: %v", err)
		return nil
	}
	return cap
}
