// Package pkgid computes the canonical identity of a configured package,
// used for cache and reuse decisions.
package pkgid

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/packbuild/pak/recipe"
)

// Identity is a canonicalized fingerprint of a recipe's configuration.
// Two builds with the same identity are interchangeable.
type Identity struct {
	OS        string
	Compiler  string
	BuildType string
	Arch      string
	Options   recipe.OptionSet
}

// Reduce computes the package identity from the active options and
// platform settings. A header-only package is platform-agnostic: every
// settings field and option is cleared so that differently configured
// builds of the same source tree collapse onto one identity.
//
// Reduce is pure and independent of the lifecycle phase; it may be called
// before a pass has even started, e.g. for a cache lookup.
func Reduce(opts recipe.OptionSet, platform recipe.Platform, headerOnly bool) Identity {
	if headerOnly {
		return Identity{}
	}
	return Identity{
		OS:        platform.OS,
		Compiler:  platform.Compiler,
		BuildType: platform.BuildType,
		Arch:      platform.Arch,
		Options:   opts,
	}
}

// String renders the identity canonically. The collapsed identity of a
// header-only package renders as "any".
func (id Identity) String() string {
	if id.OS == "" && id.Compiler == "" && id.BuildType == "" && id.Arch == "" && len(id.Options) == 0 {
		return "any"
	}
	parts := []string{
		"os=" + id.OS,
		"compiler=" + id.Compiler,
		"build_type=" + id.BuildType,
		"arch=" + id.Arch,
	}
	if opts := id.Options.String(); opts != "" {
		parts = append(parts, opts)
	}
	return strings.Join(parts, ",")
}

// Digest returns a short stable digest of the identity, suitable for
// directory names.
func (id Identity) Digest() string {
	sum := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(sum[:])[:12]
}
