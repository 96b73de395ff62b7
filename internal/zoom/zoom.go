// Package zoom compiles declarative zoom regions into crop expressions and
// keyframe trajectories. Every function here is a pure function of its
// inputs; region lists are never mutated.
package zoom

import (
	"math"

	"github.com/clipforge/clipforge/internal/geom"
	"github.com/clipforge/clipforge/pkg/types"
)

// TransitionMs is the fixed lead-in/lead-out envelope applied on both
// sides of every zoom region.
const TransitionMs = 320.0

// DefaultSampleMs is the keyframe sampler tick, roughly one frame at 30fps.
const DefaultSampleMs = 33.0

// depthScales maps the discrete depth levels 1..6 to magnification
// factors. Depths outside the range clamp to the nearest level.
var depthScales = [6]float64{1.25, 1.5, 1.8, 2.0, 2.5, 3.0}

// ScaleForDepth returns the magnification factor for a depth level.
func ScaleForDepth(depth int) float64 {
	if depth < 1 {
		depth = 1
	}
	if depth > len(depthScales) {
		depth = len(depthScales)
	}
	return depthScales[depth-1]
}

// Strength returns how fully a region's zoom is applied at time t, in
// [0,1]. It is exactly 1 during [StartMs, EndMs], exactly 0 outside
// [StartMs-TransitionMs, EndMs+TransitionMs], and eases with smoothstep
// across the two transition windows.
func Strength(r types.ZoomRegion, tMs float64) float64 {
	switch {
	case tMs >= r.StartMs && tMs <= r.EndMs:
		return 1
	case tMs >= r.StartMs-TransitionMs && tMs < r.StartMs:
		return geom.Smoothstep((tMs - (r.StartMs - TransitionMs)) / TransitionMs)
	case tMs > r.EndMs && tMs <= r.EndMs+TransitionMs:
		return 1 - geom.Smoothstep((tMs-r.EndMs)/TransitionMs)
	default:
		return 0
	}
}

// Dominant returns the region with the strictly highest strength at time
// t. Ties keep the first region found in input order. The second return
// is false when every region has zero strength, meaning the full unzoomed
// frame is shown.
func Dominant(regions []types.ZoomRegion, tMs float64) (types.ZoomRegion, float64, bool) {
	var best types.ZoomRegion
	bestStrength := 0.0
	found := false
	for _, r := range regions {
		s := Strength(r, tMs)
		if s > bestStrength {
			best = r
			bestStrength = s
			found = true
		}
	}
	return best, bestStrength, found
}

// ClampFocus bounds a normalized focus point so the zoomed crop window
// never exceeds the frame. The usable margin from each edge is
// 1/(2*scale).
func ClampFocus(cx, cy, scale float64) (float64, float64) {
	margin := 1 / (2 * scale)
	return geom.Clamp(cx, margin, 1-margin), geom.Clamp(cy, margin, 1-margin)
}

// CropBox is a pixel-space crop window.
type CropBox struct {
	Width  int
	Height int
	X      int
	Y      int
}

// StaticCropBox returns the constant crop window for a region at full
// strength, with focus clamped before pixel rounding.
func StaticCropBox(r types.ZoomRegion, v types.VideoInfo) CropBox {
	scale := ScaleForDepth(r.Depth)
	cx, cy := ClampFocus(r.FocusX, r.FocusY, scale)

	w := int(math.Round(float64(v.Width) / scale))
	h := int(math.Round(float64(v.Height) / scale))
	x := int(math.Round(cx*float64(v.Width) - float64(w)/2))
	y := int(math.Round(cy*float64(v.Height) - float64(h)/2))

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return CropBox{Width: w, Height: h, X: x, Y: y}
}

// Keyframe is one sample of the zoom trajectory. Width, Height and the
// center coordinates are normalized to [0,1].
type Keyframe struct {
	TimeMs  float64
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64
}

// SampleKeyframes discretizes the zoom trajectory at a fixed tick,
// linearly blending between the full frame and the dominant region's
// target crop box by the instantaneous strength. This path serves engines
// without native expression support.
func SampleKeyframes(regions []types.ZoomRegion, v types.VideoInfo, stepMs float64) []Keyframe {
	if stepMs <= 0 {
		stepMs = DefaultSampleMs
	}

	var frames []Keyframe
	for t := 0.0; t <= v.DurationMs; t += stepMs {
		kf := Keyframe{TimeMs: t, Width: 1, Height: 1, CenterX: 0.5, CenterY: 0.5}

		if r, s, ok := Dominant(regions, t); ok {
			scale := ScaleForDepth(r.Depth)
			cx, cy := ClampFocus(r.FocusX, r.FocusY, scale)
			kf.Width = geom.Lerp(1, 1/scale, s)
			kf.Height = geom.Lerp(1, 1/scale, s)
			kf.CenterX = geom.Lerp(0.5, cx, s)
			kf.CenterY = geom.Lerp(0.5, cy, s)
		}

		frames = append(frames, kf)
	}
	return frames
}
