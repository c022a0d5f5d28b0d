package version

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/packbuild/pak/recipe"
)

func loadRecipe(t *testing.T, manifest string, marker string) *recipe.Recipe {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, recipe.ManifestFile), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	if marker != "" {
		if err := os.WriteFile(filepath.Join(dir, MarkerFile), []byte(marker), 0644); err != nil {
			t.Fatal(err)
		}
	}
	r, err := recipe.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		major int
		want  Strategy
	}{
		{0, Legacy},
		{1, Legacy},
		{2, Current},
		{3, Current},
	}
	for _, tt := range tests {
		if got := StrategyFor(tt.major); got != tt.want {
			t.Errorf("StrategyFor(%d) = %v, want %v", tt.major, got, tt.want)
		}
	}
}

func TestResolveLegacy(t *testing.T) {
	r := loadRecipe(t, "name: bricks\nversion: 0.9.0\n", "1.0.0\n")

	got, err := Resolve(r, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "0.9.0" {
		t.Errorf("Resolve() = %q, want static field 0.9.0", got)
	}
}

func TestResolveLegacyNoStaticField(t *testing.T) {
	r := loadRecipe(t, "name: bricks\n", "")

	_, err := Resolve(r, 1)
	if !errors.Is(err, ErrResolution) {
		t.Errorf("Resolve() error = %v, want ErrResolution", err)
	}
}

func TestResolveMarker(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		want   string
	}{
		{name: "plain", marker: "1.0.0", want: "1.0.0"},
		{name: "trailing newline", marker: "1.0.0\n", want: "1.0.0"},
		{name: "surrounding whitespace", marker: "  2.3.4-rc1\t\n", want: "2.3.4-rc1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := loadRecipe(t, "name: bricks\nversion: 0.9.0\n", tt.marker)
			got, err := Resolve(r, 2)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveMarkerMissing(t *testing.T) {
	r := loadRecipe(t, "name: bricks\nversion: 0.9.0\n", "")

	_, err := Resolve(r, 2)
	if !errors.Is(err, ErrResolution) {
		t.Errorf("Resolve() error = %v, want ErrResolution", err)
	}
}

func TestResolveMarkerEmpty(t *testing.T) {
	r := loadRecipe(t, "name: bricks\n", "   \n")

	_, err := Resolve(r, 2)
	if !errors.Is(err, ErrResolution) {
		t.Errorf("Resolve() error = %v, want ErrResolution", err)
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := loadRecipe(t, "name: bricks\n", "1.0.0\n")

	first, err := Resolve(r, 2)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Resolve(r, 2)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Resolve() not idempotent: %q then %q", first, second)
	}

	// A changed marker is picked up on re-resolution.
	if err := os.WriteFile(filepath.Join(r.Dir(), MarkerFile), []byte("2.0.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	third, err := Resolve(r, 2)
	if err != nil {
		t.Fatal(err)
	}
	if third != "2.0.0" {
		t.Errorf("Resolve() after marker change = %q, want 2.0.0", third)
	}
}
