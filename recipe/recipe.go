// Package recipe defines the declarative build recipe of a package: its
// metadata, configurable options, requirements and target settings.
package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/packbuild/pak/pkgs/mod/module"
)

// ManifestFile is the recipe manifest name looked up next to the package
// sources.
const ManifestFile = "recipe.yaml"

// Platform describes the target the package is built for.
type Platform struct {
	OS        string `yaml:"os"`
	Arch      string `yaml:"arch"`
	Compiler  string `yaml:"compiler"`
	Cppstd    int    `yaml:"cppstd,omitempty"`
	BuildType string `yaml:"build_type"`
}

// HostPlatform returns the platform of the current process with a Release
// build type. Compiler defaults to gcc on Linux and clang elsewhere.
func HostPlatform() Platform {
	compiler := "clang"
	if runtime.GOOS == "linux" {
		compiler = "gcc"
	}
	return Platform{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Compiler:  compiler,
		BuildType: "Release",
	}
}

// Recipe is the declarative description of a buildable package.
type Recipe struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version,omitempty"` // static version, used by legacy hosts
	License     string   `yaml:"license,omitempty"`
	Author      string   `yaml:"author,omitempty"`
	URL         string   `yaml:"url,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Topics      []string `yaml:"topics,omitempty"`

	// Options holds default values for the declared option set. Names not
	// listed here keep their built-in defaults.
	Options map[string]bool `yaml:"options,omitempty"`

	// MinCppstd is the minimum language standard the package compiles with.
	MinCppstd int `yaml:"min_cppstd,omitempty"`

	// HeaderOnly marks the package as platform-agnostic: its package
	// identity collapses to a single entry regardless of settings.
	HeaderOnly bool `yaml:"header_only,omitempty"`

	Requires     []string `yaml:"requires,omitempty"`
	ToolRequires []string `yaml:"tool_requires,omitempty"`

	// Exports lists glob patterns, relative to the recipe directory, whose
	// matches are copied into the build sandbox.
	Exports []string `yaml:"exports,omitempty"`

	// Generators names the configuration emitters run before the build.
	Generators []string `yaml:"generators,omitempty"`

	dir string // directory the manifest was loaded from
}

// Load reads and parses the recipe manifest from dir.
func Load(dir string) (*Recipe, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load recipe: %w", err)
	}
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if r.Name == "" {
		return nil, fmt.Errorf("parse %s: recipe has no name", path)
	}
	r.dir = dir
	return &r, nil
}

// Dir returns the directory the recipe manifest was loaded from.
func (r *Recipe) Dir() string { return r.dir }

// DeclaredOptions returns the recipe's option set: the built-in surface
// with defaults overridden by the manifest's options section.
func (r *Recipe) DeclaredOptions() map[string]Option {
	declared := DefaultOptions()
	for name, def := range r.Options {
		if _, ok := declared[name]; ok {
			declared[name] = Option{Default: def}
		}
	}
	return declared
}

// RuntimeRequires parses the recipe's runtime requirements.
func (r *Recipe) RuntimeRequires() ([]module.Version, error) {
	return parseRequires(r.Requires)
}

// BuildRequires parses the recipe's build-time tool requirements.
func (r *Recipe) BuildRequires() ([]module.Version, error) {
	return parseRequires(r.ToolRequires)
}

func parseRequires(reqs []string) ([]module.Version, error) {
	out := make([]module.Version, 0, len(reqs))
	for _, req := range reqs {
		v, err := module.Parse(strings.TrimSpace(req))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
