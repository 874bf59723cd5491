package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"
)

// WriteFiles renders snap once per format into dir and returns the written
// paths in format order. Repeated formats are written once.
func WriteFiles(ctx context.Context, dir string, formats []Format, snap Snapshot) ([]string, error) {
	var unique []Format
	for _, f := range formats {
		if !f.IsFile() {
			return nil, fmt.Errorf("format %q does not produce a file", f)
		}
		if !slices.Contains(unique, f) {
			unique = append(unique, f)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	paths := make([]string, len(unique))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range unique {
		paths[i] = filepath.Join(dir, FileName(snap.Monthly.Year, snap.Monthly.Month, f))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(paths[i], f, snap)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeFile(path string, f Format, snap Snapshot) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Render(out, f, snap); err != nil {
		return fmt.Errorf("render %s: %w", f, err)
	}
	return nil
}
