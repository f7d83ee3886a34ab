package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Order selects how Walk visits a tree. Entries of one directory are always
// visited in lexical order.
type Order int

const (
	// ParentFirst visits a directory before its children.
	ParentFirst Order = iota
	// DepthFirst visits a directory after all of its children.
	DepthFirst
	// BreadthFirst visits nothing at depth n before everything at depth n-1.
	BreadthFirst
)

func (o Order) String() string {
	switch o {
	case ParentFirst:
		return "parent-first"
	case DepthFirst:
		return "depth-first"
	case BreadthFirst:
		return "breadth-first"
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// WalkFunc is called for every visited path, root included. Returning an
// error stops the walk. In ParentFirst order a directory may return
// fs.SkipDir to leave its children unvisited.
type WalkFunc func(path string, d fs.DirEntry) error

// Walk visits root and everything beneath it in the given order. Symbolic
// links are visited but not followed.
func Walk(root string, order Order, fn WalkFunc) error {
	info, err := os.Lstat(root)
	if err != nil {
		return err
	}
	d := fs.FileInfoToDirEntry(info)

	switch order {
	case ParentFirst, DepthFirst:
		return walkRecursive(root, d, order, fn)
	case BreadthFirst:
		return walkBreadth(root, d, fn)
	}
	return fmt.Errorf("unknown traversal order %s", order)
}

func walkRecursive(path string, d fs.DirEntry, order Order, fn WalkFunc) error {
	if order == ParentFirst {
		if err := fn(path, d); err != nil {
			if errors.Is(err, fs.SkipDir) && d.IsDir() {
				return nil
			}
			return err
		}
	}
	if d.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := walkRecursive(filepath.Join(path, e.Name()), e, order, fn); err != nil {
				return err
			}
		}
	}
	if order == DepthFirst {
		return fn(path, d)
	}
	return nil
}

type queued struct {
	path string
	d    fs.DirEntry
}

func walkBreadth(root string, d fs.DirEntry, fn WalkFunc) error {
	queue := []queued{{path: root, d: d}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if err := fn(item.path, item.d); err != nil {
			return err
		}
		if !item.d.IsDir() {
			continue
		}
		entries, err := os.ReadDir(item.path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			queue = append(queue, queued{path: filepath.Join(item.path, e.Name()), d: e})
		}
	}
	return nil
}

// DeleteAll removes path and everything beneath it, children before their
// directory. A missing path is not an error.
func DeleteAll(path string) error {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return nil
	}
	return Walk(path, DepthFirst, func(p string, _ fs.DirEntry) error {
		return os.Remove(p)
	})
}
