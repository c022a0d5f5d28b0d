// Package buildsys defines the narrow interface through which the build
// tool is driven. The tool's own configure/compile/install behavior is an
// external collaborator, never reimplemented here.
package buildsys

import (
	"context"
	"fmt"
	"strings"
)

// BuildSystem captures the lifecycle calls into an external build tool.
// Each call blocks until the underlying process exits or ctx is cancelled.
type BuildSystem interface {
	// Configure runs the tool's configure step against the sandbox.
	Configure(ctx context.Context, args ...string) error

	// Build compiles the configured tree.
	Build(ctx context.Context, args ...string) error

	// Install places build artifacts into the package output location.
	Install(ctx context.Context, args ...string) error

	// Environment helper.
	Env(key, val string)

	// OutputDir is where install places artifacts.
	OutputDir() string
}

// ToolError reports a non-zero exit from the external tool, carrying its
// diagnostic output verbatim.
type ToolError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }
