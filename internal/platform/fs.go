package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotDirectory is returned when a project root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// NewFS returns the OS filesystem, or a copy-on-write overlay when dryRun is
// set. Writes to the overlay are visible to later reads but never reach disk.
func NewFS(dryRun bool) afero.Fs {
	if dryRun {
		return DryRun(afero.NewOsFs())
	}
	return afero.NewOsFs()
}

// DryRun layers an in-memory filesystem over a read-only view of base.
func DryRun(base afero.Fs) afero.Fs {
	return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())
}

// ResolveRoot turns a user-supplied project root into an absolute directory
// path. An empty path means the current working directory.
func ResolveRoot(fsys afero.Fs, path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		path = wd
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := fsys.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project root %s: %w", abs, ErrNotDirectory)
	}
	return abs, nil
}

// CheckWritable verifies that dir accepts new files by creating and removing
// a probe file.
func CheckWritable(fsys afero.Fs, dir string) error {
	f, err := afero.TempFile(fsys, dir, ".layergen-probe-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	if err := fsys.Remove(name); err != nil {
		return fmt.Errorf("removing probe %s: %w", name, err)
	}
	return nil
}
