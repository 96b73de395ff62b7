package zoom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/clipforge/pkg/types"
)

var testVideo = types.VideoInfo{Width: 1920, Height: 1080, DurationMs: 60000, FPS: 30}

func region(startMs, endMs float64, depth int, cx, cy float64) types.ZoomRegion {
	return types.ZoomRegion{ID: "z1", StartMs: startMs, EndMs: endMs, Depth: depth, FocusX: cx, FocusY: cy}
}

func TestStrengthZeroOutsideEnvelope(t *testing.T) {
	r := region(1000, 3000, 3, 0.5, 0.5)

	assert.Equal(t, 0.0, Strength(r, 0))
	assert.Equal(t, 0.0, Strength(r, 679.9))
	assert.Equal(t, 0.0, Strength(r, 3320.1))
	assert.Equal(t, 0.0, Strength(r, 60000))
}

func TestStrengthExactlyOneInsideRegion(t *testing.T) {
	r := region(1000, 3000, 3, 0.5, 0.5)

	assert.Equal(t, 1.0, Strength(r, 1000))
	assert.Equal(t, 1.0, Strength(r, 2000))
	assert.Equal(t, 1.0, Strength(r, 3000))
}

func TestStrengthEasesThroughTransitions(t *testing.T) {
	r := region(1000, 3000, 3, 0.5, 0.5)

	// Halfway through the lead-in, smoothstep(0.5) = 0.5
	assert.InDelta(t, 0.5, Strength(r, 840), 1e-9)
	// Halfway through the lead-out
	assert.InDelta(t, 0.5, Strength(r, 3160), 1e-9)

	// Monotonic rise across the lead-in
	prev := -1.0
	for tm := 680.0; tm <= 1000; tm += 20 {
		s := Strength(r, tm)
		assert.Greater(t, s, prev)
		prev = s
	}
}

func TestDominantFirstWinsOnTie(t *testing.T) {
	a := types.ZoomRegion{ID: "a", StartMs: 1000, EndMs: 3000, Depth: 2, FocusX: 0.3, FocusY: 0.3}
	b := types.ZoomRegion{ID: "b", StartMs: 2000, EndMs: 4000, Depth: 4, FocusX: 0.7, FocusY: 0.7}

	// Both at full strength at t=2500; the first in input order wins.
	r, s, ok := Dominant([]types.ZoomRegion{a, b}, 2500)
	require.True(t, ok)
	assert.Equal(t, "a", r.ID)
	assert.Equal(t, 1.0, s)

	// Input order decides, not start time.
	r, _, ok = Dominant([]types.ZoomRegion{b, a}, 2500)
	require.True(t, ok)
	assert.Equal(t, "b", r.ID)
}

func TestDominantNoneAtZeroStrength(t *testing.T) {
	a := region(1000, 3000, 3, 0.5, 0.5)
	_, _, ok := Dominant([]types.ZoomRegion{a}, 10000)
	assert.False(t, ok)

	_, _, ok = Dominant(nil, 0)
	assert.False(t, ok)
}

func TestScaleForDepth(t *testing.T) {
	assert.Equal(t, 1.8, ScaleForDepth(3))
	assert.Equal(t, 1.25, ScaleForDepth(1))
	assert.Equal(t, 3.0, ScaleForDepth(6))

	// Out-of-range depths clamp
	assert.Equal(t, 1.25, ScaleForDepth(0))
	assert.Equal(t, 3.0, ScaleForDepth(9))
}

func TestClampFocus(t *testing.T) {
	cx, cy := ClampFocus(0.5, 0.06, 1.8)
	assert.Equal(t, 0.5, cx)
	assert.InDelta(t, 1.0/3.6, cy, 1e-12)

	cx, cy = ClampFocus(0.99, 0.01, 2.0)
	assert.Equal(t, 0.75, cx)
	assert.Equal(t, 0.25, cy)
}

func TestStaticCropBoxScenario(t *testing.T) {
	r := region(1000, 3000, 3, 0.5, 0.06)
	box := StaticCropBox(r, testVideo)

	assert.Equal(t, 1067, box.Width)
	assert.Equal(t, 600, box.Height)
	assert.Equal(t, 427, box.X)
	assert.Equal(t, 0, box.Y)
}

func TestSampleKeyframes(t *testing.T) {
	r := region(1000, 3000, 3, 0.5, 0.5)
	frames := SampleKeyframes([]types.ZoomRegion{r}, testVideo, DefaultSampleMs)
	require.NotEmpty(t, frames)

	// First sample is the full frame
	assert.Equal(t, 1.0, frames[0].Width)
	assert.Equal(t, 0.5, frames[0].CenterX)

	// A sample well inside the region holds the zoomed box
	var inside Keyframe
	for _, kf := range frames {
		if kf.TimeMs >= 1500 && kf.TimeMs <= 2500 {
			inside = kf
			break
		}
	}
	assert.InDelta(t, 1/1.8, inside.Width, 1e-9)
	assert.InDelta(t, 0.5, inside.CenterX, 1e-9)

	// Last sample does not overrun the clip
	assert.LessOrEqual(t, frames[len(frames)-1].TimeMs, testVideo.DurationMs)
}

func TestCurveValueAt(t *testing.T) {
	r := region(1000, 3000, 3, 0.5, 0.5)
	c := BuildCurves([]types.ZoomRegion{r}, testVideo)

	// Full frame outside the envelope
	assert.Equal(t, 1920.0, c.Width.ValueAt(0))
	assert.Equal(t, 0.0, c.X.ValueAt(0))

	// Zoomed during the active window
	assert.InDelta(t, 1920.0/1.8, c.Width.ValueAt(2000), 1e-9)
	assert.InDelta(t, 1080.0/1.8, c.Height.ValueAt(2000), 1e-9)

	// Halfway through the lead-in the width is halfway to the target
	wantMid := (1920.0 + 1920.0/1.8) / 2
	assert.InDelta(t, wantMid, c.Width.ValueAt(840), 1e-6)
}

func TestCurveEarlierRegionWinsOverlap(t *testing.T) {
	a := types.ZoomRegion{ID: "a", StartMs: 1000, EndMs: 3000, Depth: 2, FocusX: 0.5, FocusY: 0.5}
	b := types.ZoomRegion{ID: "b", StartMs: 2000, EndMs: 4000, Depth: 6, FocusX: 0.5, FocusY: 0.5}
	c := BuildCurves([]types.ZoomRegion{b, a}, testVideo)

	// In the overlap the earlier-starting region's piece matches first.
	assert.InDelta(t, 1920.0/1.5, c.Width.ValueAt(2500), 1e-9)
	// After a's envelope ends, b takes over.
	assert.InDelta(t, 1920.0/3.0, c.Width.ValueAt(3800), 1e-9)
}

func TestCurveExprShape(t *testing.T) {
	r := region(1000, 3000, 3, 0.5, 0.5)
	c := BuildCurves([]types.ZoomRegion{r}, testVideo)
	expr := c.Width.Expr()

	// Three branches, windows in seconds, full-frame default at the tail
	assert.Equal(t, 3, strings.Count(expr, "if(between(t,"))
	assert.Contains(t, expr, "between(t,0.6800,1.0000)")
	assert.Contains(t, expr, "between(t,1.0000,3.0000)")
	assert.Contains(t, expr, "between(t,3.0000,3.3200)")
	assert.True(t, strings.HasSuffix(expr, "1920.0000)))"))
}

func TestCropFilter(t *testing.T) {
	assert.Empty(t, CropFilter(nil, testVideo))

	r := region(1000, 3000, 3, 0.5, 0.5)
	filter := CropFilter([]types.ZoomRegion{r}, testVideo)

	assert.True(t, strings.HasPrefix(filter, "crop=w='"))
	assert.True(t, strings.HasSuffix(filter, ",scale=1920:1080"))
	assert.Contains(t, filter, ":x='")
	assert.Contains(t, filter, ":y='")
}
