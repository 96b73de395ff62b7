package zoom

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/clipforge/clipforge/internal/geom"
	"github.com/clipforge/clipforge/pkg/types"
)

// Piece is one time window of a crop parameter curve, carrying both a
// numeric evaluator and the equivalent engine expression text. Keeping the
// two side by side means the sampled value and the emitted expression
// cannot drift apart.
type Piece struct {
	FromMs float64
	ToMs   float64
	Eval   func(tMs float64) float64
	Expr   string
}

// Curve is an ordered list of pieces with a full-frame default. The first
// piece whose window contains t wins, so earlier regions take precedence
// over overlapping later ones.
type Curve struct {
	Pieces  []Piece
	Default float64
}

// ValueAt evaluates the curve at time t.
func (c Curve) ValueAt(tMs float64) float64 {
	for _, p := range c.Pieces {
		if tMs >= p.FromMs && tMs <= p.ToMs {
			return p.Eval(tMs)
		}
	}
	return c.Default
}

// Expr renders the curve as a single closed-form engine expression over
// the time variable t (seconds). Pieces become successively nested
// conditional branches; the default value is the innermost fallback.
func (c Curve) Expr() string {
	expr := fmt.Sprintf("%.4f", c.Default)
	for i := len(c.Pieces) - 1; i >= 0; i-- {
		p := c.Pieces[i]
		expr = fmt.Sprintf("if(between(t,%.4f,%.4f),%s,%s)",
			p.FromMs/1000, p.ToMs/1000, p.Expr, expr)
	}
	return expr
}

// Curves holds the four crop parameter curves sharing the same time
// windows, guaranteeing the crop box stays consistent at every instant.
type Curves struct {
	Width  Curve
	Height Curve
	X      Curve
	Y      Curve
}

// BuildCurves compiles zoom regions, sorted by start time, into piecewise
// crop parameter curves. Each region contributes a lead-in, an active, and
// a lead-out piece per parameter.
func BuildCurves(regions []types.ZoomRegion, v types.VideoInfo) Curves {
	sorted := slices.Clone(regions)
	slices.SortStableFunc(sorted, func(a, b types.ZoomRegion) int {
		if a.StartMs < b.StartMs {
			return -1
		}
		if a.StartMs > b.StartMs {
			return 1
		}
		return 0
	})

	fullW := float64(v.Width)
	fullH := float64(v.Height)

	c := Curves{
		Width:  Curve{Default: fullW},
		Height: Curve{Default: fullH},
		X:      Curve{Default: 0},
		Y:      Curve{Default: 0},
	}

	for _, r := range sorted {
		scale := ScaleForDepth(r.Depth)
		cx, cy := ClampFocus(r.FocusX, r.FocusY, scale)

		targetW := fullW / scale
		targetH := fullH / scale
		targetX := cx*fullW - targetW/2
		targetY := cy*fullH - targetH/2

		appendRegionPieces(&c.Width, r, fullW, targetW)
		appendRegionPieces(&c.Height, r, fullH, targetH)
		appendRegionPieces(&c.X, r, 0, targetX)
		appendRegionPieces(&c.Y, r, 0, targetY)
	}
	return c
}

// appendRegionPieces adds the three pieces for one region to a parameter
// curve: lead-in eases full to target, active holds target, lead-out eases
// target back to full.
func appendRegionPieces(c *Curve, r types.ZoomRegion, full, target float64) {
	leadInStart := r.StartMs - TransitionMs
	leadOutEnd := r.EndMs + TransitionMs

	c.Pieces = append(c.Pieces,
		Piece{
			FromMs: leadInStart,
			ToMs:   r.StartMs,
			Eval: func(tMs float64) float64 {
				return geom.Lerp(full, target, geom.Smoothstep((tMs-leadInStart)/TransitionMs))
			},
			Expr: easeExpr(full, target, leadInStart/1000),
		},
		Piece{
			FromMs: r.StartMs,
			ToMs:   r.EndMs,
			Eval:   func(float64) float64 { return target },
			Expr:   fmt.Sprintf("%.4f", target),
		},
		Piece{
			FromMs: r.EndMs,
			ToMs:   leadOutEnd,
			Eval: func(tMs float64) float64 {
				return geom.Lerp(target, full, geom.Smoothstep((tMs-r.EndMs)/TransitionMs))
			},
			Expr: easeExpr(target, full, r.EndMs/1000),
		},
	)
}

// easeExpr renders a smoothstep interpolation from one value to another as
// an engine expression, with progress anchored at anchorSec and spanning
// the transition window.
func easeExpr(from, to, anchorSec float64) string {
	p := fmt.Sprintf("clip((t-%.4f)/%.4f,0,1)", anchorSec, TransitionMs/1000)
	return fmt.Sprintf("(%.4f+(%.4f)*%s*%s*(3-2*%s))", from, to-from, p, p, p)
}

// CropFilter renders the complete zoom filter: an expression-driven crop
// followed by a scale back to the source resolution. Returns the empty
// string when there are no regions.
func CropFilter(regions []types.ZoomRegion, v types.VideoInfo) string {
	if len(regions) == 0 {
		return ""
	}
	c := BuildCurves(regions, v)
	return fmt.Sprintf("crop=w='%s':h='%s':x='%s':y='%s',scale=%d:%d",
		c.Width.Expr(), c.Height.Expr(), c.X.Expr(), c.Y.Expr(), v.Width, v.Height)
}
