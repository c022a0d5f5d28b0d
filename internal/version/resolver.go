// Package version resolves a recipe's version string, selecting the
// lookup strategy from the host package manager's major version.
package version

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packbuild/pak/recipe"
)

// MarkerFile is the plain-text file holding the package version, located
// next to the recipe manifest.
const MarkerFile = "version.txt"

// ErrResolution reports that the version could not be determined. Fatal:
// no packaging can proceed without a resolved version.
var ErrResolution = errors.New("version resolution failed")

// Strategy selects how the version is looked up.
type Strategy uint8

const (
	// Legacy reads the static version field embedded in the recipe.
	// Used for package manager major versions below 2.
	Legacy Strategy = iota
	// Current reads the marker file next to the recipe.
	Current
)

// markerThreshold is the manager major version at which the marker file
// becomes the source of truth.
const markerThreshold = 2

// StrategyFor maps a host package-manager major version to its strategy.
func StrategyFor(managerMajor int) Strategy {
	if managerMajor < markerThreshold {
		return Legacy
	}
	return Current
}

type resolveFunc func(r *recipe.Recipe) (string, error)

var strategies = map[Strategy]resolveFunc{
	Legacy:  resolveStatic,
	Current: resolveMarker,
}

// Resolve determines the recipe's version. The result is stable across
// repeated calls with unchanged inputs.
func Resolve(r *recipe.Recipe, managerMajor int) (string, error) {
	return strategies[StrategyFor(managerMajor)](r)
}

func resolveStatic(r *recipe.Recipe) (string, error) {
	if r.Version == "" {
		return "", fmt.Errorf("%w: recipe %s has no static version", ErrResolution, r.Name)
	}
	return r.Version, nil
}

func resolveMarker(r *recipe.Recipe) (string, error) {
	path := filepath.Join(r.Dir(), MarkerFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrResolution, path, err)
	}
	ver := strings.TrimSpace(string(data))
	if ver == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrResolution, path)
	}
	return ver, nil
}
