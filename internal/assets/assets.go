// Package assets reads packaged binary assets (environment maps, models).
package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

var (
	ErrNotFound  = errors.New("asset not found")
	ErrShortRead = errors.New("asset truncated")
)

// Store reads named assets from a read-only bundle. Nothing is cached: each
// Load performs a fresh read.
type Store struct {
	fsys fs.FS
}

func New(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Open returns a store rooted at a directory on disk.
func Open(root string) *Store {
	return New(os.DirFS(root))
}

// Load returns the full contents of the named asset. A read that yields fewer
// bytes than the asset's reported size fails with ErrShortRead.
func (s *Store) Load(name string) ([]byte, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, name)
	}

	buf := make([]byte, info.Size())
	n, err := io.ReadFull(f, buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: read %d of %d bytes", ErrShortRead, name, n, len(buf))
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return buf, nil
}

// EnvironmentPaths returns the indirect-light and skybox paths of a named
// environment, e.g. envs/courtyard_8k/courtyard_8k_ibl.ktx.
func EnvironmentPaths(name string) (ibl, skybox string) {
	dir := path.Join("envs", name)
	return path.Join(dir, name+"_ibl.ktx"), path.Join(dir, name+"_skybox.ktx")
}

// Ext returns the lower-case extension of an asset path, dot included.
func Ext(name string) string {
	return strings.ToLower(path.Ext(name))
}
