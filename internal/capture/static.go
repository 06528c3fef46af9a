package capture

import (
	"image"
	"image/color"
	"time"
)

// StaticCapturer serves a fixed frame. Used in tests and for rehearsing
// drawings over a screenshot instead of live video.
type StaticCapturer struct {
	frame *image.RGBA
}

// NewStaticCapturer wraps an image as a capture backend.
func NewStaticCapturer(frame *image.RGBA) *StaticCapturer {
	return &StaticCapturer{frame: frame}
}

func (c *StaticCapturer) CaptureFrame() (*image.RGBA, error) {
	return c.frame, nil
}

func (c *StaticCapturer) GetDimensions() (int, int) {
	b := c.frame.Bounds()
	return b.Dx(), b.Dy()
}

// TestPattern produces a slowly shifting gradient so the render path can be
// exercised without any game running.
type TestPattern struct {
	width  int
	height int
	start  time.Time
}

// NewTestPattern creates a synthetic source of the given dimensions.
func NewTestPattern(width, height int) *TestPattern {
	return &TestPattern{width: width, height: height, start: time.Now()}
}

func (p *TestPattern) GetDimensions() (int, int) {
	return p.width, p.height
}

func (p *TestPattern) CaptureFrame() (*image.RGBA, error) {
	phase := uint8(time.Since(p.start).Milliseconds() / 16)
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x) + phase,
				G: uint8(y),
				B: uint8(x^y) - phase,
				A: 255,
			})
		}
	}
	return img, nil
}
