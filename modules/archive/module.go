// Package archive provides the zip action.
package archive

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/specialistvlad/mkr/internal/fsutil"
	"github.com/specialistvlad/mkr/internal/handlers"
	"github.com/specialistvlad/mkr/modules/fileops"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Input defines the arguments of a zip action.
type Input struct {
	Source  string   `hcl:"source"`
	Dest    string   `hcl:"dest"`
	Include []string `hcl:"include,optional"`
}

// Zip writes the matching files under Source into the archive Dest. Entries
// are added breadth first so top-level files come first.
func Zip(ctx context.Context, env handlers.Env, input *Input) error {
	src, dest := env.Path(input.Source), env.Path(input.Dest)
	logger := ctxlog.FromContext(ctx).With("action", "zip", "dest", dest)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)

	entries := 0
	walkErr := fsutil.Walk(src, fsutil.BreadthFirst, func(path string, d fs.DirEntry) error {
		if !d.Type().IsRegular() || path == dest {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if ok, err := fileops.Match(input.Include, rel); err != nil || !ok {
			return err
		}
		entries++
		return addFile(zw, path, filepath.ToSlash(rel))
	})

	closeErr := zw.Close()
	if err := f.Close(); closeErr == nil {
		closeErr = err
	}
	if walkErr != nil {
		return walkErr
	}
	if closeErr != nil {
		return closeErr
	}
	logger.Debug("Archive written.", "entries", entries)
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(w, in)
	return err
}

// Register registers the action with the handlers registry.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("zip", handlers.Typed(Zip))
}
