//go:build !windows

package main

import (
	"github.com/hexlab/tacboard/internal/capture"
	"github.com/hexlab/tacboard/internal/detect"
)

// platformCapturer has no live window capture off Windows yet; the caller
// falls back to the test pattern.
func platformCapturer(match detect.Match) capture.Capturer {
	return nil
}
