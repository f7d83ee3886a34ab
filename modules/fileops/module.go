// Package fileops provides the mkdir, copy and delete actions.
package fileops

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/specialistvlad/mkr/internal/fsutil"
	"github.com/specialistvlad/mkr/internal/handlers"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// MkdirInput defines the arguments of a mkdir action.
type MkdirInput struct {
	Path string `hcl:"path"`
}

// CopyInput defines the arguments of a copy action. When Source is a
// directory its contents are copied into Dest, filtered by Include.
type CopyInput struct {
	Source  string   `hcl:"source"`
	Dest    string   `hcl:"dest"`
	Include []string `hcl:"include,optional"`
}

// DeleteInput defines the arguments of a delete action.
type DeleteInput struct {
	Path string `hcl:"path"`
}

// Mkdir creates a directory and any missing parents.
func Mkdir(ctx context.Context, env handlers.Env, input *MkdirInput) error {
	path := env.Path(input.Path)
	ctxlog.FromContext(ctx).Debug("Creating directory.", "path", path)
	return os.MkdirAll(path, 0o755)
}

// Delete removes a file or a whole tree.
func Delete(ctx context.Context, env handlers.Env, input *DeleteInput) error {
	path := env.Path(input.Path)
	ctxlog.FromContext(ctx).Debug("Deleting path.", "path", path)
	return fsutil.DeleteAll(path)
}

// Copy copies a file, or the matching files of a tree, preserving modes.
func Copy(ctx context.Context, env handlers.Env, input *CopyInput) error {
	src, dest := env.Path(input.Source), env.Path(input.Dest)
	logger := ctxlog.FromContext(ctx).With("action", "copy", "source", src, "dest", dest)

	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(src, dest, info.Mode())
	}

	copied := 0
	err = fsutil.Walk(src, fsutil.ParentFirst, func(path string, d fs.DirEntry) error {
		if within(path, dest) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		ok, err := Match(input.Include, rel)
		if err != nil || !ok {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		copied++
		return copyFile(path, filepath.Join(dest, rel), fi.Mode())
	})
	if err != nil {
		return err
	}
	logger.Debug("Copied files.", "count", copied)
	return nil
}

// Match reports whether the slash-separated rel path matches any of the
// glob patterns. A pattern without a slash is matched against the base
// name. No patterns match everything.
func Match(patterns []string, rel string) (bool, error) {
	if len(patterns) == 0 {
		return true, nil
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, p := range patterns {
		subject := rel
		if !strings.Contains(p, "/") {
			subject = base
		}
		ok, err := filepath.Match(p, subject)
		if err != nil {
			return false, fmt.Errorf("bad include pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// within reports whether path is dir or lies beneath it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func copyFile(src, dest string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Register registers the actions with the handlers registry.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("mkdir", handlers.Typed(Mkdir))
	h.RegisterHandler("copy", handlers.Typed(Copy))
	h.RegisterHandler("delete", handlers.Typed(Delete))
}
