package lifecycle

import (
	"context"
	"errors"

	"github.com/packbuild/pak/pkgs/buildsys"
)

// fakeBuilder implements buildsys.BuildSystem for testing, recording the
// steps invoked against it.
type fakeBuilder struct {
	calls      []string
	failStep   string
	output     string
	installDir string

	// onStep, when set, runs before each step; used to trigger
	// cancellation mid-pass.
	onStep func(step string)
}

var _ buildsys.BuildSystem = (*fakeBuilder)(nil)

func (f *fakeBuilder) Configure(ctx context.Context, args ...string) error {
	return f.step(ctx, "configure")
}

func (f *fakeBuilder) Build(ctx context.Context, args ...string) error {
	return f.step(ctx, "build")
}

func (f *fakeBuilder) Install(ctx context.Context, args ...string) error {
	return f.step(ctx, "install")
}

func (f *fakeBuilder) Env(key, val string) {}

func (f *fakeBuilder) OutputDir() string { return f.installDir }

func (f *fakeBuilder) step(ctx context.Context, name string) error {
	if f.onStep != nil {
		f.onStep(name)
	}
	if err := ctx.Err(); err != nil {
		return &buildsys.ToolError{Tool: "fake", Args: []string{name}, Err: err}
	}
	f.calls = append(f.calls, name)
	if f.failStep == name {
		return &buildsys.ToolError{
			Tool:   "fake",
			Args:   []string{name},
			Output: f.output,
			Err:    errors.New("exit status 1"),
		}
	}
	return nil
}

// factory returns a BuilderFactory handing out this fake.
func (f *fakeBuilder) factory() BuilderFactory {
	return func(sourceDir, buildDir, installDir, nativeFile string) buildsys.BuildSystem {
		f.installDir = installDir
		return f
	}
}
