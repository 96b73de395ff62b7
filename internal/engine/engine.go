// Package engine executes planned pipeline steps against the external
// renderer, strictly in order. Step N+1 reads the file step N produced,
// so steps are never parallelized.
package engine

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/clipforge/clipforge/pkg/types"
)

// Runner executes pipeline steps sequentially.
type Runner struct {
	logger zerolog.Logger
}

// NewRunner creates a step runner.
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{
		logger: logger.With().Str("component", "engine").Logger(),
	}
}

// Run executes every step in order, stopping at the first failure. The
// external exit status is propagated unchanged in the returned error.
func (r *Runner) Run(ctx context.Context, steps []types.PipelineStep) error {
	for i, step := range steps {
		if len(step.Args) == 0 {
			return errors.Errorf("step %d has no arguments", i+1)
		}

		r.logger.Info().
			Int("step", i+1).
			Int("total", len(steps)).
			Str("description", step.Description).
			Msg("running step")
		r.logger.Debug().Strs("args", step.Args).Msg("engine invocation")

		cmd := exec.CommandContext(ctx, step.Args[0], step.Args[1:]...)
		output, err := cmd.CombinedOutput()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return errors.Wrapf(err, "step %d (%s) failed with exit code %d: %s",
					i+1, step.Description, exitErr.ExitCode(), lastLine(output))
			}
			return errors.Wrapf(err, "step %d (%s) failed", i+1, step.Description)
		}
	}
	return nil
}

// lastLine trims engine output down to its final non-empty line, usually
// the actual error message.
func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
