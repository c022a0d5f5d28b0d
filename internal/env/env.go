// Package env locates the pak workspace on the host.
package env

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/module"
)

// WorkDir returns the root of the pak workspace, under the user cache
// directory. The PAK_WORKDIR environment variable overrides it.
func WorkDir() (string, error) {
	if dir := os.Getenv("PAK_WORKDIR"); dir != "" {
		return dir, nil
	}
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, "pak"), nil
}

// InstallDir returns the package output directory for one configured
// build: <workdir>/<name>@<version>-<identity digest>. Name and version
// are escaped so the layout stays safe on case-insensitive filesystems.
func InstallDir(workDir, name, version, digest string) (string, error) {
	escName, err := module.EscapeVersion(name)
	if err != nil {
		return "", fmt.Errorf("escape package name %q: %w", name, err)
	}
	escVer, err := module.EscapeVersion(version)
	if err != nil {
		return "", fmt.Errorf("escape version %q: %w", version, err)
	}
	return filepath.Join(workDir, fmt.Sprintf("%s@%s-%s", escName, escVer, digest)), nil
}

// SandboxDir returns the build sandbox directory for one configured
// build, a sibling of the install dir.
func SandboxDir(workDir, name, version, digest string) (string, error) {
	dir, err := InstallDir(workDir, name, version, digest)
	if err != nil {
		return "", err
	}
	return dir + ".build", nil
}
