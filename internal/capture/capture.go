// Package capture supplies the live video frames the board mirrors. The
// board itself never initiates capture; it samples whatever source is
// attached and falls back to a placeholder when none is.
package capture

import (
	"image"
	"sync"
	"time"
)

// Capturer grabs frames from a concrete capture backend (window BitBlt,
// test pattern, ...).
type Capturer interface {
	CaptureFrame() (*image.RGBA, error)
	GetDimensions() (width, height int)
}

// DefaultCacheDuration bounds how often the underlying capturer is hit when
// the render loop samples faster than capture is worth repeating.
const DefaultCacheDuration = 33 * time.Millisecond

// Source wraps a Capturer behind a short-lived frame cache and tolerates
// having no capturer attached at all. It is the one piece of board state
// touched from more than one goroutine (render loop and snapshot exporter),
// hence the lock.
type Source struct {
	mu       sync.Mutex
	capturer Capturer
	ttl      time.Duration

	frame   *image.RGBA
	frameAt time.Time
}

// NewSource returns a source with no capturer attached.
func NewSource() *Source {
	return &Source{ttl: DefaultCacheDuration}
}

// Attach sets the active capturer and drops any cached frame.
func (s *Source) Attach(c Capturer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capturer = c
	s.frame = nil
	s.frameAt = time.Time{}
}

// Detach removes the capturer; the board returns to the placeholder state.
func (s *Source) Detach() {
	s.Attach(nil)
}

// SetCacheDuration overrides the frame cache lifetime.
func (s *Source) SetCacheDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = d
}

// Ready reports whether at least one frame has been decoded.
func (s *Source) Ready() bool {
	return s.Frame() != nil
}

// Size returns the intrinsic pixel dimensions of the source, or zeros when
// nothing is attached.
func (s *Source) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capturer == nil {
		return 0, 0
	}
	return s.capturer.GetDimensions()
}

// Frame returns the current frame, re-capturing when the cache has
// expired. Capture failures keep the previous frame; a source that has
// never captured returns nil.
func (s *Source) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capturer == nil {
		return nil
	}
	if s.frame != nil && time.Since(s.frameAt) < s.ttl {
		return s.frame
	}
	frame, err := s.capturer.CaptureFrame()
	if err != nil {
		return s.frame
	}
	s.frame = frame
	s.frameAt = time.Now()
	return s.frame
}
