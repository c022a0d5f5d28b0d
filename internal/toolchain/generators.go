package toolchain

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/packbuild/pak/recipe"
)

// An emitter writes one generator's configuration files into the sandbox.
type emitter func(dir string, r *recipe.Recipe) error

var emitters = map[string]emitter{
	"pkgconfig_deps": emitPkgConfigDeps,
	"build_env":      emitBuildEnv,
}

// EmitAll runs the recipe's declared generators against the sandbox
// directory. Naming an unregistered generator is a configuration error.
func EmitAll(dir string, r *recipe.Recipe) error {
	for _, name := range r.Generators {
		emit, ok := emitters[name]
		if !ok {
			return fmt.Errorf("%w: unknown generator %q", recipe.ErrConfiguration, name)
		}
		if err := emit(dir, r); err != nil {
			return fmt.Errorf("generator %s: %w", name, err)
		}
	}
	return nil
}

// emitPkgConfigDeps writes a pkg-config stub for each runtime requirement
// so the configure step can locate them by name.
func emitPkgConfigDeps(dir string, r *recipe.Recipe) error {
	reqs, err := r.RuntimeRequires()
	if err != nil {
		return err
	}
	for _, req := range reqs {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "Name: %s\n", req.Path)
		fmt.Fprintf(&buf, "Description: requirement of %s\n", r.Name)
		fmt.Fprintf(&buf, "Version: %s\n", req.Version)
		path := filepath.Join(dir, req.Path+".pc")
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

// emitBuildEnv writes a shell script declaring the build-time tool
// requirements, mirroring a virtual build environment.
func emitBuildEnv(dir string, r *recipe.Recipe) error {
	reqs, err := r.BuildRequires()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString("# build environment generated for " + r.Name + "\n")
	for _, req := range reqs {
		fmt.Fprintf(&buf, "export PAK_TOOL_%s=%s\n", envName(req.Path), req.Version)
	}
	return os.WriteFile(filepath.Join(dir, "buildenv.sh"), buf.Bytes(), 0644)
}

func envName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-'a'+'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
