// Package lifecycle orchestrates the phases that turn a recipe into a
// packaged artifact: SetVersion, Validate, Generate, Build and Package,
// in that order, each a thin call into the external build tool.
package lifecycle

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/qiniu/x/log"

	"github.com/packbuild/pak/internal/env"
	"github.com/packbuild/pak/internal/pkgid"
	"github.com/packbuild/pak/internal/sandbox"
	"github.com/packbuild/pak/internal/toolchain"
	"github.com/packbuild/pak/internal/version"
	"github.com/packbuild/pak/pkgs/buildsys"
	"github.com/packbuild/pak/pkgs/buildsys/meson"
	"github.com/packbuild/pak/recipe"
)

// Config carries the ambient configuration of one pass. It is explicit
// by design: the orchestrator holds no process-wide state.
type Config struct {
	// Platform is the target the package is built for.
	Platform recipe.Platform

	// Overrides are user-supplied option values, name to raw value.
	Overrides map[string]string

	// ManagerMajor is the host package manager's major version; it
	// selects the version resolution strategy.
	ManagerMajor int

	// SkipBuild bypasses the Build phase. The bypass is recorded on the
	// result, never swallowed.
	SkipBuild bool

	// WorkDir overrides the workspace root. Defaults to env.WorkDir().
	WorkDir string
}

// Result summarizes a completed (or partially completed) pass.
type Result struct {
	Name     string
	Version  string
	Identity pkgid.Identity

	// OutputDir is the package output location written by Install.
	OutputDir string

	// BuildSkipped records that build verification was bypassed.
	BuildSkipped bool
}

// BuilderFactory creates the build system driving one sandbox. Tests
// substitute a fake; the default builds with Meson.
type BuilderFactory func(sourceDir, buildDir, installDir, nativeFile string) buildsys.BuildSystem

// DefaultBuilderFactory drives Meson.
func DefaultBuilderFactory(sourceDir, buildDir, installDir, nativeFile string) buildsys.BuildSystem {
	return meson.New(sourceDir, buildDir, installDir).NativeFile(nativeFile)
}

// Pass is a single orchestration run over one recipe. A Pass is not safe
// for concurrent use and must not be reused after Run returns.
type Pass struct {
	rcp        *recipe.Recipe
	cfg        Config
	newBuilder BuilderFactory

	opts recipe.OptionSet

	phase Phase
	ran   map[Phase]bool

	sb     *sandbox.Sandbox
	bs     buildsys.BuildSystem
	tc     *toolchain.Config
	result Result
}

// New prepares a pass. Option overrides are resolved here, so an invalid
// configuration surfaces before any external process is invoked.
func New(rcp *recipe.Recipe, cfg Config, factory BuilderFactory) (*Pass, error) {
	if factory == nil {
		factory = DefaultBuilderFactory
	}
	if cfg.WorkDir == "" {
		dir, err := env.WorkDir()
		if err != nil {
			return nil, err
		}
		cfg.WorkDir = dir
	}
	opts, err := recipe.Resolve(rcp.DeclaredOptions(), cfg.Overrides, cfg.Platform)
	if err != nil {
		return nil, err
	}
	return &Pass{
		rcp:        rcp,
		cfg:        cfg,
		newBuilder: factory,
		opts:       opts,
		phase:      PhaseIdle,
		ran:        make(map[Phase]bool),
		result:     Result{Name: rcp.Name},
	}, nil
}

// Options returns the resolved active option set.
func (p *Pass) Options() recipe.OptionSet { return p.opts }

// PackageID computes the canonical package identity. It is independent
// of the pass's current phase and may be called at any time.
func (p *Pass) PackageID() pkgid.Identity {
	return pkgid.Reduce(p.opts, p.cfg.Platform, p.rcp.HeaderOnly)
}

// Run drives the full lifecycle through Package.
func (p *Pass) Run(ctx context.Context) (*Result, error) {
	return p.RunThrough(ctx, PhasePackage)
}

// RunThrough drives the lifecycle up to and including the given phase,
// which must be Build or Package. Phases execute strictly sequentially;
// a failed phase halts the pass with nothing packaged.
func (p *Pass) RunThrough(ctx context.Context, last Phase) (res *Result, err error) {
	if last != PhaseBuild && last != PhasePackage {
		return nil, fmt.Errorf("cannot run through phase %s", last)
	}
	defer func() {
		if p.sb != nil {
			p.sb.Close()
		}
	}()

	if err := p.setVersion(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := p.generate(ctx); err != nil {
		return nil, err
	}
	if p.cfg.SkipBuild {
		p.skipBuild()
	} else if err := p.build(ctx); err != nil {
		return nil, err
	}
	if last == PhasePackage {
		if err := p.pack(ctx); err != nil {
			return nil, err
		}
	}
	p.phase = PhaseDone
	return &p.result, nil
}

// enter enforces the phase ordering invariants: no phase runs twice
// within one pass, and no phase runs out of sequence.
func (p *Pass) enter(next Phase) error {
	if p.ran[next] {
		return fmt.Errorf("%w: %s", ErrInvariant, next)
	}
	if next != p.phase+1 {
		return fmt.Errorf("%w: %s after %s", ErrOrdering, next, p.phase)
	}
	p.ran[next] = true
	p.phase = next
	return nil
}

// setVersion resolves the recipe version. It runs exactly once, before
// any phase that names the output package.
func (p *Pass) setVersion() error {
	if err := p.enter(PhaseSetVersion); err != nil {
		return err
	}
	ver, err := version.Resolve(p.rcp, p.cfg.ManagerMajor)
	if err != nil {
		return err
	}
	p.result.Version = ver
	log.Infof("%s/%s: version resolved", p.rcp.Name, ver)
	return nil
}

// compilerDefaultStd is the language standard assumed for a compiler
// when the platform does not pin one.
var compilerDefaultStd = map[string]int{
	"gcc":         17,
	"clang":       17,
	"apple-clang": 17,
	"msvc":        14,
}

// validate checks the declared language standard floor against the
// effective compiler configuration.
func (p *Pass) validate() error {
	if err := p.enter(PhaseValidate); err != nil {
		return err
	}
	floor := p.rcp.MinCppstd
	if floor == 0 {
		return nil
	}
	effective := p.cfg.Platform.Cppstd
	if effective == 0 {
		effective = compilerDefaultStd[p.cfg.Platform.Compiler]
	}
	if effective < floor {
		return fmt.Errorf("%w: compiler %s provides c++%d, recipe requires at least c++%d",
			ErrValidation, p.cfg.Platform.Compiler, effective, floor)
	}
	return nil
}

// generate creates the build sandbox, exports the recipe's sources into
// it and writes the toolchain configuration and generator outputs. It
// must complete before Build.
func (p *Pass) generate(ctx context.Context) error {
	if err := p.enter(PhaseGenerate); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	identity := p.PackageID()
	installDir, err := env.InstallDir(p.cfg.WorkDir, p.rcp.Name, p.result.Version, identity.Digest())
	if err != nil {
		return err
	}
	boxDir, err := env.SandboxDir(p.cfg.WorkDir, p.rcp.Name, p.result.Version, identity.Digest())
	if err != nil {
		return err
	}

	sb, err := sandbox.Create(boxDir)
	if err != nil {
		return err
	}
	p.sb = sb

	if err := sb.ExportSources(p.rcp.Dir(), p.rcp.Exports); err != nil {
		return err
	}

	p.tc = toolchain.Generate(p.opts, p.cfg.Platform)
	nativeFile, err := p.tc.WriteFile(sb.Dir)
	if err != nil {
		return err
	}
	if err := toolchain.EmitAll(sb.Dir, p.rcp); err != nil {
		return err
	}

	p.bs = p.newBuilder(sb.Dir, filepath.Join(sb.Dir, "build"), installDir, nativeFile)
	p.result.Identity = identity
	p.result.OutputDir = installDir
	log.Infof("%s/%s: toolchain generated in %s", p.rcp.Name, p.result.Version, sb.Dir)
	return nil
}

// skipBuild records that build verification was bypassed and advances
// the state machine so Package may proceed.
func (p *Pass) skipBuild() {
	p.ran[PhaseBuild] = true
	p.phase = PhaseBuild
	p.result.BuildSkipped = true
	log.Warnf("%s/%s: build verification bypassed", p.rcp.Name, p.result.Version)
}

// build configures and compiles the sandbox.
func (p *Pass) build(ctx context.Context) error {
	if err := p.enter(PhaseBuild); err != nil {
		return err
	}
	if p.tc == nil || p.bs == nil {
		return fmt.Errorf("%w: build invoked without a generated toolchain", ErrOrdering)
	}
	if err := p.runTool(ctx, p.bs.Configure); err != nil {
		return err
	}
	if err := p.runTool(ctx, p.bs.Build); err != nil {
		return err
	}
	log.Infof("%s/%s: build succeeded", p.rcp.Name, p.result.Version)
	return nil
}

// pack installs build artifacts into the package output location. Build
// must have completed or been explicitly skipped. When it was skipped,
// the tree is configured here so install still has a build directory to
// work from; compilation and tests stay bypassed.
func (p *Pass) pack(ctx context.Context) error {
	if err := p.enter(PhasePackage); err != nil {
		return err
	}
	if !p.ran[PhaseBuild] {
		return fmt.Errorf("%w: package invoked before build", ErrOrdering)
	}
	if p.bs == nil {
		return fmt.Errorf("%w: package invoked without a generated toolchain", ErrOrdering)
	}
	if p.result.BuildSkipped {
		if err := p.runTool(ctx, p.bs.Configure); err != nil {
			return err
		}
	}
	if err := p.runTool(ctx, p.bs.Install); err != nil {
		return err
	}
	log.Infof("%s/%s: packaged into %s", p.rcp.Name, p.result.Version, p.result.OutputDir)
	return nil
}

// runTool invokes one external tool step, translating failures into the
// error taxonomy. Cancellation wins over a build failure: a process
// killed by the caller's context reports ErrCancelled.
func (p *Pass) runTool(ctx context.Context, step func(context.Context, ...string) error) error {
	err := step(ctx)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return fmt.Errorf("%w: %w", ErrBuild, err)
}
