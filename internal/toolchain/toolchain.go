// Package toolchain produces the Meson machine file consumed by the build
// tool's configure step, derived from the active options and the target
// platform.
package toolchain

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packbuild/pak/recipe"
)

// NativeFile is the machine file name written into the build sandbox and
// handed to meson setup.
const NativeFile = "meson-native.ini"

type entry struct {
	key   string
	value string
}

type section struct {
	name    string
	entries []entry
}

// Config is the generated build-tool configuration. It is created fresh
// during the generation phase and never mutated afterward.
type Config struct {
	sections []section
}

// compilerBinaries maps a compiler identity to its C and C++ drivers.
var compilerBinaries = map[string][2]string{
	"gcc":         {"gcc", "g++"},
	"clang":       {"clang", "clang++"},
	"apple-clang": {"clang", "clang++"},
	"msvc":        {"cl", "cl"},
}

// Generate derives the Meson configuration from the active option set and
// platform settings. Identical inputs yield byte-identical output: section
// and key order is fixed at construction and carries no timestamps.
func Generate(opts recipe.OptionSet, platform recipe.Platform) *Config {
	c := &Config{}

	bins, ok := compilerBinaries[platform.Compiler]
	if !ok {
		bins = [2]string{platform.Compiler, platform.Compiler}
	}
	c.add("binaries",
		entry{"c", quote(bins[0])},
		entry{"cpp", quote(bins[1])},
	)

	builtins := []entry{
		{"b_coverage", boolValue(opts[recipe.OptionCoverage])},
		{"buildtype", quote(strings.ToLower(platform.BuildType))},
	}
	if shared, ok := opts[recipe.OptionShared]; ok {
		lib := "static"
		if shared {
			lib = "shared"
		}
		builtins = append(builtins, entry{"default_library", quote(lib)})
	}
	if pic, ok := opts[recipe.OptionFPIC]; ok {
		builtins = append(builtins, entry{"b_staticpic", boolValue(pic)})
	}
	if platform.Cppstd > 0 {
		builtins = append(builtins, entry{"cpp_std", quote(fmt.Sprintf("c++%d", platform.Cppstd))})
	}
	c.add("built-in options", builtins...)

	c.add("host_machine",
		entry{"system", quote(platform.OS)},
		entry{"cpu_family", quote(platform.Arch)},
	)

	return c
}

func (c *Config) add(name string, entries ...entry) {
	c.sections = append(c.sections, section{name: name, entries: entries})
}

// Lookup returns the value of key within the named section.
func (c *Config) Lookup(sectionName, key string) (string, bool) {
	for _, s := range c.sections {
		if s.name != sectionName {
			continue
		}
		for _, e := range s.entries {
			if e.key == key {
				return e.value, true
			}
		}
	}
	return "", false
}

// Render serializes the configuration in Meson machine-file syntax.
func (c *Config) Render() []byte {
	var buf bytes.Buffer
	for i, s := range c.sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "[%s]\n", s.name)
		for _, e := range s.entries {
			fmt.Fprintf(&buf, "%s = %s\n", e.key, e.value)
		}
	}
	return buf.Bytes()
}

// WriteFile persists the configuration into dir and returns the file path.
func (c *Config) WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, NativeFile)
	if err := os.WriteFile(path, c.Render(), 0644); err != nil {
		return "", fmt.Errorf("write toolchain config: %w", err)
	}
	return path, nil
}

func quote(s string) string { return "'" + s + "'" }

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
