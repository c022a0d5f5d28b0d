// Package module defines the name/version pairs used to declare package
// requirements.
package module

import (
	"fmt"
	"strings"
)

// Version identifies a required package by name and version.
type Version struct {
	Path    string
	Version string
}

// String renders the requirement in its declaration form, "name/version".
func (v Version) String() string {
	if v.Version == "" {
		return v.Path
	}
	return v.Path + "/" + v.Version
}

// Parse splits a requirement declaration of the form "name/version".
// The version part is treated as an opaque identifier; resolution is the
// package manager's job, not ours.
func Parse(s string) (Version, error) {
	path, ver, ok := strings.Cut(s, "/")
	if !ok || path == "" || ver == "" {
		return Version{}, fmt.Errorf("invalid requirement %q: want name/version", s)
	}
	return Version{Path: path, Version: ver}, nil
}
