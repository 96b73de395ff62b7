// Package pipeline decides how many engine passes a config needs and in
// what order, emitting one PipelineStep per external invocation. Steps
// must be executed strictly in sequence: later steps read the
// intermediate files earlier steps produce.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/clipforge/clipforge/internal/effects"
	"github.com/clipforge/clipforge/internal/encode"
	"github.com/clipforge/clipforge/internal/trim"
	"github.com/clipforge/clipforge/internal/zoom"
	"github.com/clipforge/clipforge/pkg/types"
)

const engineCommand = "ffmpeg"

// Plan compiles a processing config into an ordered list of engine
// invocations. Planning never touches the filesystem; intermediate files
// are only named here, created by the engine and owned by the caller.
func Plan(cfg types.ProcessingConfig) ([]types.PipelineStep, error) {
	if cfg.Video == nil {
		return nil, errors.New("video metadata is required for planning")
	}
	v := *cfg.Video
	enc := encode.ForOutput(cfg.OutputPath)

	needsTrim := len(cfg.Trim) > 0
	needsZoom := len(cfg.Zoom) > 0
	needsCrop := cfg.Crop != nil
	needsBackground := cfg.Background != nil
	needsAnnotations := len(cfg.Annotations) > 0
	needsResize := cfg.OutputWidth > 0 && cfg.OutputHeight > 0
	otherEffects := needsZoom || needsCrop || needsBackground || needsAnnotations || needsResize

	var steps []types.PipelineStep
	currentInput := cfg.InputPath
	intermediates := 0

	// A pending seek window is carried when exactly one kept segment
	// coexists with other effects: the next pass applies it as input
	// options instead of spending a dedicated trim pass.
	var pendingSeek *trim.Segment

	if needsTrim {
		segments := trim.KeptSegments(cfg.Trim, v.DurationMs)
		switch {
		case len(segments) == 0:
			return nil, errors.Wrap(trim.ErrNoSegments, "cut regions cover the entire clip")
		case len(segments) == 1 && !otherEffects:
			args, err := trim.BuildArgs(currentInput, cfg.OutputPath, segments, true, enc)
			if err != nil {
				return nil, err
			}
			return append(steps, types.PipelineStep{
				Description: describeTrim(cfg.Trim, segments),
				Args:        args,
			}), nil
		case len(segments) == 1:
			seg := segments[0]
			pendingSeek = &seg
		default:
			target := cfg.OutputPath
			if otherEffects {
				target = intermediatePath(cfg.OutputPath, &intermediates)
			}
			args, err := trim.BuildArgs(currentInput, target, segments, true, enc)
			if err != nil {
				return nil, err
			}
			steps = append(steps, types.PipelineStep{
				Description: describeTrim(cfg.Trim, segments),
				Args:        args,
			})
			if !otherEffects {
				return steps, nil
			}
			currentInput = target
		}
	}

	// Crop, zoom, and annotations are per-frame filters sharing one pass,
	// applied in that order.
	var filters []string
	var applied []string
	if needsCrop {
		filters = append(filters, effects.CropFilter(*cfg.Crop, v, true))
		applied = append(applied, "crop")
	}
	if needsZoom {
		filters = append(filters, zoom.CropFilter(cfg.Zoom, v))
		applied = append(applied, "zoom")
	}
	if needsAnnotations {
		ann := effects.AnnotationFilters(cfg.Annotations, v)
		filters = append(filters, ann...)
		if len(ann) > 0 {
			applied = append(applied, "annotations")
		}
	}
	if needsResize {
		filters = append(filters, fmt.Sprintf("scale=%d:%d",
			cfg.OutputWidth-(cfg.OutputWidth%2), cfg.OutputHeight-(cfg.OutputHeight%2)))
		applied = append(applied, "resize")
	}

	if needsBackground {
		// Background composites need their own pass: the backdrop may be a
		// second input stream, a different invocation shape from a plain
		// per-frame filter list.
		if len(filters) > 0 {
			target := intermediatePath(cfg.OutputPath, &intermediates)
			steps = append(steps, filterStep(currentInput, target, filters, applied, pendingSeek, enc))
			pendingSeek = nil
			currentInput = target
		}

		graph, extraInputs := effects.BackgroundFilterGraph(*cfg.Background, v)
		steps = append(steps, backgroundStep(currentInput, cfg.OutputPath, graph, extraInputs, *cfg.Background, pendingSeek, enc))
		return steps, nil
	}

	if len(filters) > 0 {
		steps = append(steps, filterStep(currentInput, cfg.OutputPath, filters, applied, pendingSeek, enc))
		return steps, nil
	}

	if len(steps) == 0 {
		// Nothing to do: still emit a deterministic final artifact.
		steps = append(steps, types.PipelineStep{
			Description: "Copy source to output",
			Args:        []string{engineCommand, "-y", "-i", currentInput, "-c", "copy", cfg.OutputPath},
		})
	}
	return steps, nil
}

// filterStep emits a single-pass -vf invocation over the merged per-frame
// filters, applying a pending seek window as input options.
func filterStep(input, output string, filters, applied []string, seek *trim.Segment, enc encode.Settings) types.PipelineStep {
	args := []string{engineCommand, "-y"}
	args = append(args, seekArgs(seek)...)
	args = append(args,
		"-i", input,
		"-vf", strings.Join(filters, ","),
	)
	args = append(args, enc.Args()...)
	args = append(args, output)

	desc := fmt.Sprintf("Apply %s filters", strings.Join(applied, ", "))
	if seek != nil {
		desc += " over the kept segment"
	}
	return types.PipelineStep{Description: desc, Args: args}
}

// backgroundStep emits the compositing pass, wiring any extra backdrop
// inputs and mapping audio through untouched.
func backgroundStep(input, output, graph string, extraInputs []string, cfg types.BackgroundConfig, seek *trim.Segment, enc encode.Settings) types.PipelineStep {
	args := []string{engineCommand, "-y"}
	args = append(args, seekArgs(seek)...)
	args = append(args, "-i", input)
	for _, extra := range extraInputs {
		args = append(args, "-i", extra)
	}
	args = append(args,
		"-filter_complex", graph,
		"-map", "[outv]",
		"-map", "0:a?",
	)
	args = append(args, enc.Args()...)
	args = append(args, output)

	return types.PipelineStep{
		Description: fmt.Sprintf("Composite video over %s background", cfg.Type),
		Args:        args,
	}
}

func seekArgs(seek *trim.Segment) []string {
	if seek == nil {
		return nil
	}
	return []string{
		"-ss", fmt.Sprintf("%.3f", seek.Start),
		"-to", fmt.Sprintf("%.3f", seek.End),
	}
}

func describeTrim(cuts []types.TrimRegion, segments []trim.Segment) string {
	return fmt.Sprintf("Remove %d cut region(s), keeping %d segment(s)", len(cuts), len(segments))
}

// intermediatePath derives a scratch file name from the final output by
// inserting a _step<N> suffix before the extension. N increments per
// intermediate created, not per step.
func intermediatePath(outputPath string, counter *int) string {
	*counter++
	ext := filepath.Ext(outputPath)
	base := strings.TrimSuffix(outputPath, ext)
	return fmt.Sprintf("%s_step%d%s", base, *counter, ext)
}
