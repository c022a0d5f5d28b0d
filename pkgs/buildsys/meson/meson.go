// Package meson drives Meson builds through the setup/compile/install
// workflow.
package meson

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/qiniu/x/log"

	"github.com/packbuild/pak/pkgs/buildsys"
)

const bin = "meson"

// Meson wraps the Meson command line with chainable configuration.
type Meson struct {
	sourceDir  string
	buildDir   string
	installDir string
	nativeFile string
	env        map[string]string
}

var _ buildsys.BuildSystem = (*Meson)(nil)

// New creates a Meson helper rooted at the given directories.
func New(sourceDir, buildDir, installDir string) *Meson {
	return &Meson{
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
		env:        map[string]string{},
	}
}

// NativeFile sets the machine file passed to setup.
func (m *Meson) NativeFile(path string) *Meson {
	m.nativeFile = path
	return m
}

// Env sets key=value for every command spawned later.
func (m *Meson) Env(key, value string) {
	m.env[key] = value
}

// OutputDir returns the install prefix.
func (m *Meson) OutputDir() string { return m.installDir }

// Configure runs meson setup against the source tree.
func (m *Meson) Configure(ctx context.Context, args ...string) error {
	return m.run(ctx, m.configureArgs(args))
}

// Build runs meson compile in the build directory.
func (m *Meson) Build(ctx context.Context, args ...string) error {
	return m.run(ctx, m.buildArgs(args))
}

// Install runs meson install, placing artifacts under the install prefix.
func (m *Meson) Install(ctx context.Context, args ...string) error {
	return m.run(ctx, m.installArgs(args))
}

func (m *Meson) configureArgs(extra []string) []string {
	args := []string{"setup", m.buildDir, m.sourceDir}
	if m.installDir != "" {
		args = append(args, "--prefix", m.installDir)
	}
	if m.nativeFile != "" {
		args = append(args, "--native-file", m.nativeFile)
	}
	return append(args, extra...)
}

func (m *Meson) buildArgs(extra []string) []string {
	return append([]string{"compile", "-C", m.buildDir}, extra...)
}

func (m *Meson) installArgs(extra []string) []string {
	return append([]string{"install", "-C", m.buildDir}, extra...)
}

func (m *Meson) run(ctx context.Context, args []string) error {
	log.Debugf("%s %s", bin, strings.Join(args, " "))

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if len(m.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), m.env)
	}
	if err := cmd.Run(); err != nil {
		return &buildsys.ToolError{
			Tool:   bin,
			Args:   args,
			Output: out.String(),
			Err:    err,
		}
	}
	return nil
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
