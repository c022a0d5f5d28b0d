package recipe

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrConfiguration reports an invalid or unknown option override. No
// external process may be invoked once it has been raised.
var ErrConfiguration = errors.New("invalid configuration")

// Recognized option names.
const (
	OptionShared   = "shared"
	OptionFPIC     = "fPIC"
	OptionCoverage = "build_coverage"
)

// Option is a boolean configuration axis with a default value.
type Option struct {
	Default bool
}

// DefaultOptions returns the built-in option surface.
func DefaultOptions() map[string]Option {
	return map[string]Option{
		OptionShared:   {Default: false},
		OptionFPIC:     {Default: true},
		OptionCoverage: {Default: false},
	}
}

// OptionSet maps option names to their effective values.
type OptionSet map[string]bool

// Resolve computes the effective option set: the user override if present,
// else the declared default, with platform-inapplicable options removed.
// Overrides naming an undeclared option or carrying a value outside the
// {true,false} domain fail with ErrConfiguration and produce no partial
// result.
func Resolve(declared map[string]Option, overrides map[string]string, platform Platform) (OptionSet, error) {
	active := make(OptionSet, len(declared))
	for name, opt := range declared {
		active[name] = opt.Default
	}
	for name, raw := range overrides {
		if _, ok := declared[name]; !ok {
			return nil, fmt.Errorf("%w: unknown option %q", ErrConfiguration, name)
		}
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: option %s: %q is not within {true, false}", ErrConfiguration, name, raw)
		}
		active[name] = val
	}
	return filterForPlatform(active, platform), nil
}

// filterForPlatform removes options that carry no meaning on the target
// platform. Position-independent code is a non-concept on Windows.
func filterForPlatform(opts OptionSet, platform Platform) OptionSet {
	filtered := make(OptionSet, len(opts))
	for name, val := range opts {
		if name == OptionFPIC && platform.OS == "windows" {
			continue
		}
		filtered[name] = val
	}
	return filtered
}

// ParseOverrides converts "name=value" pairs (as given on the command
// line) into an override map. Duplicate names keep the last value.
func ParseOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, val, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: malformed option %q, want name=value", ErrConfiguration, pair)
		}
		overrides[name] = val
	}
	return overrides, nil
}

// String renders the option set canonically: sorted "name=value" pairs
// joined with commas. Used in package identities and build dir names.
func (s OptionSet) String() string {
	if len(s) == 0 {
		return ""
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+strconv.FormatBool(s[name]))
	}
	return strings.Join(parts, ",")
}
