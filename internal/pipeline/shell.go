package pipeline

import (
	"strings"

	"github.com/clipforge/clipforge/pkg/types"
)

// shellSafe reports whether an argument can appear in a shell command
// line without quoting.
func shellSafe(arg string) bool {
	if arg == "" {
		return false
	}
	for _, r := range arg {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./:+,=@%", r):
		default:
			return false
		}
	}
	return true
}

// quoteArg single-quotes an argument for POSIX shells, escaping embedded
// single quotes.
func quoteArg(arg string) string {
	if shellSafe(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// ShellCommand renders a step as a copy-pasteable shell command line.
func ShellCommand(step types.PipelineStep) string {
	quoted := make([]string, len(step.Args))
	for i, arg := range step.Args {
		quoted[i] = quoteArg(arg)
	}
	return strings.Join(quoted, " ")
}
