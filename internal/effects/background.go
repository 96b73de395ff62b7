package effects

import (
	"fmt"
	"math"
	"strings"

	"github.com/clipforge/clipforge/internal/geom"
	"github.com/clipforge/clipforge/pkg/types"
)

// gradientFallbackColor substitutes for gradient backdrops, which the
// engine cannot synthesize natively.
const gradientFallbackColor = "0x1a1a2e"

// BackgroundFilterGraph composites the video over a backdrop and returns
// the filter graph (output labelled [outv]) plus any extra input paths the
// invocation must supply. Padding is a percentage of min(width,height);
// zero padding and zero border radius short-circuit to a plain resize.
func BackgroundFilterGraph(cfg types.BackgroundConfig, v types.VideoInfo) (string, []string) {
	if cfg.Padding == 0 && cfg.BorderRadius == 0 {
		return fmt.Sprintf("[0:v]scale=%d:%d[outv]", v.Width, v.Height), nil
	}

	minDim := v.Width
	if v.Height < minDim {
		minDim = v.Height
	}
	pad := int(math.Round(cfg.Padding / 100 * float64(minDim)))
	fgW := geom.Even(v.Width - 2*pad)
	fgH := geom.Even(v.Height - 2*pad)

	var sb strings.Builder
	var extraInputs []string
	fgSource := "[0:v]"
	overlaySuffix := ""

	switch cfg.Type {
	case types.BackgroundBlur:
		// The backdrop is a blurred copy of the source itself.
		radius := cfg.BlurRadius
		if radius <= 0 {
			radius = 20
		}
		fmt.Fprintf(&sb, "[0:v]split=2[fgsrc][bgsrc];[bgsrc]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d,boxblur=%d[bg];",
			v.Width, v.Height, v.Width, v.Height, radius)
		fgSource = "[fgsrc]"
	case types.BackgroundImage:
		extraInputs = append(extraInputs, cfg.ImagePath)
		fmt.Fprintf(&sb, "[1:v]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d[bg];",
			v.Width, v.Height, v.Width, v.Height)
	case types.BackgroundGradient:
		fmt.Fprintf(&sb, "color=c=%s:s=%dx%d[bg];", gradientFallbackColor, v.Width, v.Height)
		overlaySuffix = ":shortest=1"
	default:
		color := cfg.Color
		if color == "" {
			color = "black"
		}
		fmt.Fprintf(&sb, "color=c=%s:s=%dx%d[bg];", color, v.Width, v.Height)
		overlaySuffix = ":shortest=1"
	}

	fmt.Fprintf(&sb, "%sscale=%d:%d", fgSource, fgW, fgH)
	if cfg.BorderRadius > 0 {
		fmt.Fprintf(&sb, ",format=rgba,geq=r='r(X,Y)':g='g(X,Y)':b='b(X,Y)':a='%s'",
			cornerMask(fgW, fgH, cfg.BorderRadius))
	}
	sb.WriteString("[fg];")

	fmt.Fprintf(&sb, "[bg][fg]overlay=%d:%d%s[outv]", pad, pad, overlaySuffix)
	return sb.String(), extraInputs
}

// cornerMask builds the per-pixel alpha expression for rounded corners: a
// pixel is transparent only when it lies inside a corner's exclusion
// quadrant and outside the rounding radius from that corner's inner point.
func cornerMask(w, h, radius int) string {
	corners := []string{
		cornerTerm(radius, radius, radius, "lt(X,%d)*lt(Y,%d)"),
		cornerTerm(w-radius, radius, radius, "gt(X,%d)*lt(Y,%d)"),
		cornerTerm(radius, h-radius, radius, "lt(X,%d)*gt(Y,%d)"),
		cornerTerm(w-radius, h-radius, radius, "gt(X,%d)*gt(Y,%d)"),
	}
	return fmt.Sprintf("if(%s,0,255)", strings.Join(corners, "+"))
}

func cornerTerm(cx, cy, radius int, quadrant string) string {
	return fmt.Sprintf(quadrant+"*gt((X-%d)*(X-%d)+(Y-%d)*(Y-%d),%d)",
		cx, cy, cx, cx, cy, cy, radius*radius)
}
