// Package sandbox manages the build sandbox directory: the exported
// source tree, the generated configuration and the build output all live
// here for the duration of one lifecycle pass.
package sandbox

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/packbuild/pak/internal/lockedfile"
)

// Sandbox is an exclusively owned build directory.
type Sandbox struct {
	// Dir is the sandbox root.
	Dir string

	unlock func()
}

// Create makes the sandbox directory and takes its lock. Concurrent
// passes against the same sandbox serialize on the lock file.
func Create(dir string) (*Sandbox, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create sandbox: %w", err)
	}
	unlock, err := lockedfile.MutexAt(filepath.Join(dir, ".lock")).Lock()
	if err != nil {
		return nil, err
	}
	return &Sandbox{Dir: dir, unlock: unlock}, nil
}

// ExportSources copies everything matching the export patterns, relative
// to srcDir, into the sandbox. Patterns with no matches are skipped; a
// malformed pattern is an error.
func (s *Sandbox) ExportSources(srcDir string, patterns []string) error {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(srcDir, pattern))
		if err != nil {
			return fmt.Errorf("export %q: %w", pattern, err)
		}
		for _, match := range matches {
			rel, err := filepath.Rel(srcDir, match)
			if err != nil {
				return err
			}
			if err := copyTree(match, filepath.Join(s.Dir, rel)); err != nil {
				return fmt.Errorf("export %q: %w", rel, err)
			}
		}
	}
	return nil
}

// Close releases the sandbox lock. The directory itself is kept for
// inspection and cache reuse.
func (s *Sandbox) Close() error {
	if s.unlock != nil {
		s.unlock()
		s.unlock = nil
	}
	return nil
}

func copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if err := os.MkdirAll(dst, 0755); err != nil {
			return err
		}
		return copyFS(dst, os.DirFS(src))
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return copyFile(src, dst, info.Mode())
}

// copyFS matches the behavior of os.CopyFS, which needs a newer Go
// toolchain than the one building this module.
func copyFS(dir string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		newPath := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(newPath, 0777)
		}
		if !d.Type().IsRegular() {
			return &os.PathError{Op: "CopyFS", Path: path, Err: os.ErrInvalid}
		}
		r, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer r.Close()
		info, err := r.Stat()
		if err != nil {
			return err
		}
		w, err := os.OpenFile(newPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0666|info.Mode()&0777)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, r); err != nil {
			w.Close()
			return &os.PathError{Op: "Copy", Path: newPath, Err: err}
		}
		return w.Close()
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
