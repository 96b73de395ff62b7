// Package trim computes the kept segments that survive cut regions and
// plans how to extract and rejoin them.
package trim

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/clipforge/clipforge/internal/encode"
	"github.com/clipforge/clipforge/pkg/types"
)

// ErrNoSegments is returned when every instant of the clip is covered by
// cut regions and nothing survives to concatenate.
var ErrNoSegments = errors.New("no kept segments to concatenate")

// Segment is a contiguous span of the source clip, in seconds, that
// survives trimming.
type Segment struct {
	Start float64
	End   float64
}

// KeptSegments returns the spans that survive the cut regions, in order.
// Cuts may arrive unsorted; they are walked in start order with a cursor
// from zero. Zero cuts yields one segment covering the whole clip.
func KeptSegments(cuts []types.TrimRegion, durationMs float64) []Segment {
	sorted := slices.Clone(cuts)
	slices.SortStableFunc(sorted, func(a, b types.TrimRegion) int {
		if a.StartMs < b.StartMs {
			return -1
		}
		if a.StartMs > b.StartMs {
			return 1
		}
		return 0
	})

	var segments []Segment
	cursor := 0.0
	for _, cut := range sorted {
		if cursor < cut.StartMs {
			segments = append(segments, Segment{Start: cursor / 1000, End: cut.StartMs / 1000})
		}
		if cut.EndMs > cursor {
			cursor = cut.EndMs
		}
	}
	if cursor < durationMs {
		segments = append(segments, Segment{Start: cursor / 1000, End: durationMs / 1000})
	}
	return segments
}

// EffectiveDurationMs is the clip duration after trimming. Overlapping cut
// regions are not deduplicated before subtracting, so overlaps are
// double-subtracted; downstream duration accounting depends on this.
func EffectiveDurationMs(cuts []types.TrimRegion, durationMs float64) float64 {
	return durationMs - lo.SumBy(cuts, func(r types.TrimRegion) float64 {
		return r.EndMs - r.StartMs
	})
}

// FilterGraph builds the extract-and-concat filter graph over the kept
// segments. The output video stream is labelled [outv] and, when audio is
// enabled, the audio stream [outa].
func FilterGraph(segments []Segment, withAudio bool) (string, error) {
	if len(segments) == 0 {
		return "", errors.WithStack(ErrNoSegments)
	}

	// A single segment anchored at zero only needs a trailing trim.
	if len(segments) == 1 && segments[0].Start == 0 {
		seg := segments[0]
		var sb strings.Builder
		fmt.Fprintf(&sb, "[0:v]trim=end=%.3f,setpts=PTS-STARTPTS[outv]", seg.End)
		if withAudio {
			fmt.Fprintf(&sb, ";[0:a]atrim=end=%.3f,asetpts=PTS-STARTPTS[outa]", seg.End)
		}
		return sb.String(), nil
	}

	var sb strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&sb, "[0:v]trim=start=%.3f:end=%.3f,setpts=PTS-STARTPTS[v%d];",
			seg.Start, seg.End, i)
		if withAudio {
			fmt.Fprintf(&sb, "[0:a]atrim=start=%.3f:end=%.3f,asetpts=PTS-STARTPTS[a%d];",
				seg.Start, seg.End, i)
		}
	}

	for i := range segments {
		fmt.Fprintf(&sb, "[v%d]", i)
		if withAudio {
			fmt.Fprintf(&sb, "[a%d]", i)
		}
	}
	audioStreams := 0
	if withAudio {
		audioStreams = 1
	}
	fmt.Fprintf(&sb, "concat=n=%d:v=1:a=%d[outv]", len(segments), audioStreams)
	if withAudio {
		sb.WriteString("[outa]")
	}
	return sb.String(), nil
}

// Command plans the engine invocation removing the given cut regions.
// With no cuts the command degenerates to a stream copy.
func Command(inputPath, outputPath string, cuts []types.TrimRegion, durationMs float64, withAudio bool, enc encode.Settings) ([]string, error) {
	if len(cuts) == 0 {
		return []string{"ffmpeg", "-y", "-i", inputPath, "-c", "copy", outputPath}, nil
	}
	return BuildArgs(inputPath, outputPath, KeptSegments(cuts, durationMs), withAudio, enc)
}

// BuildArgs plans the engine invocation extracting the kept segments. A
// single segment uses seek-based extraction, far cheaper than a filter
// pass; otherwise the segments are extracted and concatenated through the
// filter graph.
func BuildArgs(inputPath, outputPath string, segments []Segment, withAudio bool, enc encode.Settings) ([]string, error) {
	if len(segments) == 0 {
		return nil, errors.WithStack(ErrNoSegments)
	}

	if len(segments) == 1 {
		seg := segments[0]
		return []string{
			"ffmpeg", "-y",
			"-ss", fmt.Sprintf("%.3f", seg.Start),
			"-to", fmt.Sprintf("%.3f", seg.End),
			"-i", inputPath,
			"-c", "copy",
			"-avoid_negative_ts", "1",
			outputPath,
		}, nil
	}

	graph, err := FilterGraph(segments, withAudio)
	if err != nil {
		return nil, err
	}

	args := []string{
		"ffmpeg", "-y",
		"-i", inputPath,
		"-filter_complex", graph,
		"-map", "[outv]",
	}
	if withAudio {
		args = append(args, "-map", "[outa]")
	}
	args = append(args, enc.Args()...)
	args = append(args, outputPath)
	return args, nil
}
