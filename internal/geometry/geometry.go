// Package geometry provides the coordinate mapping between source video
// pixels, normalized annotation space and on-screen canvas pixels.
//
// Three spaces are involved:
//
//   - video space: pixels of the captured source frame
//   - normalized space: [0,1]x[0,1] anchored to the crop region
//   - screen space: pixels of the output surface
//
// The renderer and the input router must run every conversion through the
// same Placement value, otherwise drawn annotations and pointer input drift
// apart. FitPlacement is the only place the letterbox math lives.
package geometry

// NormPoint is a point in normalized annotation space. Both coordinates are
// in [0,1] when the point lies inside the rendered video area; points picked
// up in the letterbox/pillarbox bars fall outside that range and are kept
// as-is.
type NormPoint struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in source video pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether the rectangle has no usable area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Placement is the rectangle within the output surface where the cropped
// video is drawn. Derived fresh every frame, never stored.
type Placement struct {
	OffsetX    float64
	OffsetY    float64
	DrawWidth  float64
	DrawHeight float64
}

// FitPlacement computes the aspect-preserving placement of a cropW x cropH
// region inside a surfaceW x surfaceH surface. The result is centered,
// leaving letterbox bars top/bottom when the surface is proportionally
// taller than the crop and pillarbox bars left/right when it is wider.
// Returns ok=false for degenerate inputs; callers must skip drawing rather
// than divide by zero.
func FitPlacement(surfaceW, surfaceH, cropW, cropH float64) (Placement, bool) {
	if surfaceW <= 0 || surfaceH <= 0 || cropW <= 0 || cropH <= 0 {
		return Placement{}, false
	}
	cropAspect := cropW / cropH
	surfaceAspect := surfaceW / surfaceH

	var p Placement
	if surfaceAspect > cropAspect {
		// Surface proportionally wider: full height, pillarbox bars.
		p.DrawHeight = surfaceH
		p.DrawWidth = surfaceH * cropAspect
		p.OffsetX = (surfaceW - p.DrawWidth) / 2
	} else {
		// Surface proportionally taller (or equal): full width, letterbox bars.
		p.DrawWidth = surfaceW
		p.DrawHeight = surfaceW / cropAspect
		p.OffsetY = (surfaceH - p.DrawHeight) / 2
	}
	return p, true
}

// ToScreen maps a normalized point onto surface pixels.
func (p Placement) ToScreen(n NormPoint) (x, y float64) {
	return p.OffsetX + n.X*p.DrawWidth, p.OffsetY + n.Y*p.DrawHeight
}

// ToNormalized inverts ToScreen. Points in the letterbox/pillarbox bars map
// outside [0,1]; no clamping is applied.
func (p Placement) ToNormalized(x, y float64) NormPoint {
	return NormPoint{
		X: (x - p.OffsetX) / p.DrawWidth,
		Y: (y - p.OffsetY) / p.DrawHeight,
	}
}

// VideoToNormalized maps a source-video pixel into the normalized space of
// the given crop region.
func VideoToNormalized(videoX, videoY float64, crop Rect) NormPoint {
	return NormPoint{
		X: (videoX - crop.X) / crop.Width,
		Y: (videoY - crop.Y) / crop.Height,
	}
}

// NormalizedToVideo is the inverse of VideoToNormalized.
func NormalizedToVideo(n NormPoint, crop Rect) (videoX, videoY float64) {
	return crop.X + n.X*crop.Width, crop.Y + n.Y*crop.Height
}
