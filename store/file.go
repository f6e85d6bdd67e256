package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/fitforge/fitforge/snapshot"
	"github.com/fitforge/fitforge/types"
)

// File stores each snapshot as "<dir>/<name>.ffas".
type File struct {
	fs  afero.Fs
	dir string
}

var _ types.SnapshotStore = (*File)(nil)

// NewFile creates a file-backed store rooted at dir.
//
// Parameters:
//   - fsys: Filesystem (afero.NewOsFs in production, afero.NewMemMapFs in tests)
//   - dir: Directory holding snapshot files; created on first Put
//
// Returns:
//   - *File: The store
func NewFile(fsys afero.Fs, dir string) *File {
	if dir == "" {
		dir = "."
	}

	return &File{fs: fsys, dir: dir}
}

// Path returns the file path used for name.
func (f *File) Path(name string) string {
	return filepath.Join(f.dir, name+snapshot.Extension)
}

// Put writes data atomically by renaming a temporary file over the target.
func (f *File) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := f.fs.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	target := f.Path(name)
	tmp := target + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	if err := f.fs.Rename(tmp, target); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("commit snapshot %s: %w", name, err)
	}

	return nil
}

// Get reads the snapshot for name.
func (f *File) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(f.fs, f.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", types.ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}

	return data, nil
}

// List returns the names of all stored snapshots in lexical order.
func (f *File) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := afero.Glob(f.fs, filepath.Join(f.dir, "*"+snapshot.Extension))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := path.Base(filepath.ToSlash(m))
		names = append(names, base[:len(base)-len(snapshot.Extension)])
	}

	return names, nil
}
