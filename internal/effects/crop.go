// Package effects contains the stateless filter-string builders for the
// per-frame effect types. Each builder is a pure function of its config
// and the video metadata.
package effects

import (
	"fmt"

	"github.com/clipforge/clipforge/internal/geom"
	"github.com/clipforge/clipforge/pkg/types"
)

// CropBoxPixels converts a normalized crop rectangle to pixels. Width and
// height are forced even; odd dimensions are rejected by most codecs.
func CropBoxPixels(r types.CropRegion, v types.VideoInfo) (w, h, x, y int) {
	w = geom.Even(geom.ToPixels(r.Width, v.Width))
	h = geom.Even(geom.ToPixels(r.Height, v.Height))
	x = geom.ToPixels(r.X, v.Width)
	y = geom.ToPixels(r.Y, v.Height)
	return w, h, x, y
}

// CropFilter renders the crop filter for a normalized rectangle. With
// restoreScale the output is scaled back to the source resolution.
func CropFilter(r types.CropRegion, v types.VideoInfo, restoreScale bool) string {
	w, h, x, y := CropBoxPixels(r, v)
	filter := fmt.Sprintf("crop=%d:%d:%d:%d", w, h, x, y)
	if restoreScale {
		filter += fmt.Sprintf(",scale=%d:%d", v.Width, v.Height)
	}
	return filter
}
