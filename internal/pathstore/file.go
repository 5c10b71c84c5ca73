package pathstore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/railpath/internal/pathfinding"
	"go.uber.org/multierr"
)

// File stores the graph in a single file, replaced atomically on save.
type File struct {
	tracing
	path string
}

// NewFile returns a store writing to path.
func NewFile(path string, opts ...Option) *File {
	return &File{tracing: newTracing(opts), path: path}
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

func (f *File) Load(ctx context.Context, g *pathfinding.Graph) error {
	return f.traced(ctx, "file", "load", func(context.Context) error {
		file, err := os.Open(f.path)
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("open graph file: %w", err)
		}
		defer file.Close()
		return g.Decode(bufio.NewReader(file))
	})
}

func (f *File) Save(ctx context.Context, g *pathfinding.Graph) error {
	return f.traced(ctx, "file", "save", func(context.Context) (err error) {
		dir := filepath.Dir(f.path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create graph directory: %w", err)
		}
		tmp, err := os.CreateTemp(dir, ".graph-*")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		defer func() {
			if err != nil {
				err = multierr.Append(err, os.Remove(tmp.Name()))
			}
		}()

		w := bufio.NewWriter(tmp)
		if err := g.Encode(w); err != nil {
			return multierr.Append(err, tmp.Close())
		}
		if err := w.Flush(); err != nil {
			return multierr.Append(err, tmp.Close())
		}
		if err := tmp.Sync(); err != nil {
			return multierr.Append(err, tmp.Close())
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		if err := os.Rename(tmp.Name(), f.path); err != nil {
			return fmt.Errorf("replace graph file: %w", err)
		}
		g.MarkSaved()
		return nil
	})
}

func (f *File) Close() error { return nil }
