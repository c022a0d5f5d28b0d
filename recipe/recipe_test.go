package recipe

import (
	"os"
	"path/filepath"
	"testing"
)

const testManifest = `name: bricks
version: 1.0.0
license: MIT
author: Jane Doe <jane@example.com>
url: https://example.com/bricks
description: Small, useful blocks of code
topics: [library, template]
options:
  shared: false
  fPIC: true
  build_coverage: false
min_cppstd: 17
header_only: true
requires:
  - doctest/2.4.9
tool_requires:
  - meson/1.4.0
exports:
  - include/*
  - tests/*
generators:
  - pkgconfig_deps
  - build_env
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeManifest(t, testManifest)

	r, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if r.Name != "bricks" {
		t.Errorf("Name = %q, want bricks", r.Name)
	}
	if r.Version != "1.0.0" {
		t.Errorf("Version = %q, want 1.0.0", r.Version)
	}
	if r.MinCppstd != 17 {
		t.Errorf("MinCppstd = %d, want 17", r.MinCppstd)
	}
	if !r.HeaderOnly {
		t.Error("HeaderOnly = false, want true")
	}
	if r.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", r.Dir(), dir)
	}
	if len(r.Exports) != 2 || r.Exports[0] != "include/*" {
		t.Errorf("Exports = %v", r.Exports)
	}
	if len(r.Generators) != 2 {
		t.Errorf("Generators = %v", r.Generators)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		if _, err := Load(t.TempDir()); err == nil {
			t.Error("Load() expected error for missing manifest")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := writeManifest(t, "name: [unclosed")
		if _, err := Load(dir); err == nil {
			t.Error("Load() expected error for malformed yaml")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		dir := writeManifest(t, "version: 1.0.0\n")
		if _, err := Load(dir); err == nil {
			t.Error("Load() expected error for unnamed recipe")
		}
	})
}

func TestDeclaredOptions(t *testing.T) {
	dir := writeManifest(t, "name: bricks\noptions:\n  shared: true\n")
	r, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	declared := r.DeclaredOptions()
	if !declared[OptionShared].Default {
		t.Error("manifest default for shared not applied")
	}
	if !declared[OptionFPIC].Default {
		t.Error("built-in default for fPIC lost")
	}
}

func TestRequires(t *testing.T) {
	dir := writeManifest(t, testManifest)
	r, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	runtime, err := r.RuntimeRequires()
	if err != nil {
		t.Fatalf("RuntimeRequires() error = %v", err)
	}
	if len(runtime) != 1 || runtime[0].Path != "doctest" || runtime[0].Version != "2.4.9" {
		t.Errorf("RuntimeRequires() = %v", runtime)
	}

	build, err := r.BuildRequires()
	if err != nil {
		t.Fatalf("BuildRequires() error = %v", err)
	}
	if len(build) != 1 || build[0].Path != "meson" {
		t.Errorf("BuildRequires() = %v", build)
	}
}

func TestRequiresMalformed(t *testing.T) {
	dir := writeManifest(t, "name: bricks\nrequires:\n  - doctest\n")
	r, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.RuntimeRequires(); err == nil {
		t.Error("RuntimeRequires() expected error for malformed requirement")
	}
}
