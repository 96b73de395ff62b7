package effects

import (
	"fmt"
	"strings"

	"github.com/clipforge/clipforge/internal/geom"
	"github.com/clipforge/clipforge/pkg/types"
)

const (
	defaultFontSize   = 32
	defaultTextColor  = "white"
	defaultArrowColor = "red"
	defaultArrowSize  = 60
	arrowThickness    = 8
)

// drawtextEscaper handles the characters the drawtext expression syntax
// treats specially. Backslash must be replaced first.
var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
	`%`, `\%`,
	"\n", `\n`,
)

// EscapeText escapes annotation text for embedding in a drawtext filter.
func EscapeText(s string) string {
	return drawtextEscaper.Replace(s)
}

// AnnotationFilters renders one filter per annotation region, each gated
// by an enable window covering [StartMs, EndMs]. Regions of unknown type
// contribute nothing.
func AnnotationFilters(regions []types.AnnotationRegion, v types.VideoInfo) []string {
	var filters []string
	for _, r := range regions {
		switch r.Type {
		case types.AnnotationText:
			filters = append(filters, textFilter(r, v))
		case types.AnnotationArrow:
			filters = append(filters, arrowFilter(r, v))
		}
	}
	return filters
}

func enableWindow(r types.AnnotationRegion) string {
	return fmt.Sprintf("enable='between(t,%.3f,%.3f)'", r.StartMs/1000, r.EndMs/1000)
}

func textFilter(r types.AnnotationRegion, v types.VideoInfo) string {
	size := r.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	color := r.Color
	if color == "" {
		color = defaultTextColor
	}

	x := geom.ToPixels(r.X/100, v.Width)
	y := geom.ToPixels(r.Y/100, v.Height)

	filter := fmt.Sprintf(
		"drawtext=text='%s':x=%d:y=%d:fontsize=%d:fontcolor=%s",
		EscapeText(r.Text), x, y, size, color,
	)
	if r.BoxColor != "" {
		filter += fmt.Sprintf(":box=1:boxcolor=%s:boxborderw=8", r.BoxColor)
	}
	return filter + ":" + enableWindow(r)
}

// arrowFilter approximates an arrow as a thick filled rectangle running
// from the anchor point along the compass direction. Unrecognized
// directions draw to the right.
func arrowFilter(r types.AnnotationRegion, v types.VideoInfo) string {
	length := r.ArrowSize
	if length <= 0 {
		length = defaultArrowSize
	}
	color := r.Color
	if color == "" {
		color = defaultArrowColor
	}

	ax := geom.ToPixels(r.X/100, v.Width)
	ay := geom.ToPixels(r.Y/100, v.Height)

	dx, dy := arrowVector(r.ArrowDirection)
	ex := ax + dx*length
	ey := ay + dy*length

	x, y, w, h := boxBetween(ax, ay, ex, ey)
	return fmt.Sprintf("drawbox=x=%d:y=%d:w=%d:h=%d:color=%s:t=fill:%s",
		x, y, w, h, color, enableWindow(r))
}

// arrowVector maps the 8 compass directions to unit steps.
func arrowVector(direction string) (int, int) {
	switch direction {
	case "up":
		return 0, -1
	case "down":
		return 0, 1
	case "left":
		return -1, 0
	case "up-left":
		return -1, -1
	case "up-right":
		return 1, -1
	case "down-left":
		return -1, 1
	case "down-right":
		return 1, 1
	default: // right
		return 1, 0
	}
}

// boxBetween spans the two points with a rectangle at least arrowThickness
// wide on each axis.
func boxBetween(x0, y0, x1, y1 int) (x, y, w, h int) {
	x, w = spanAxis(x0, x1)
	y, h = spanAxis(y0, y1)
	return x, y, w, h
}

func spanAxis(a, b int) (start, extent int) {
	if b < a {
		a, b = b, a
	}
	extent = b - a
	if extent < arrowThickness {
		// Center the thickness across the anchor line
		a -= (arrowThickness - extent) / 2
		extent = arrowThickness
	}
	if a < 0 {
		a = 0
	}
	return a, extent
}
