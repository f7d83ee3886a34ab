// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines FSInfo, which connects a parsed definition back to its
// source on disk.
//
// Why store the location?
//
// Every diagnostic about a target points the user at the file and line that
// declared it. Actions also run relative to the directory of their build
// file, so the path decides where `mkdir "target"` creates its directory.
package model

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
)

// FSInfo is the source location of a definition.
type FSInfo struct {
	FilePath string
	Line     int
}

// NewFSInfo creates an FSInfo from an HCL range.
func NewFSInfo(r hcl.Range) *FSInfo {
	return &FSInfo{
		FilePath: r.Filename,
		Line:     r.Start.Line,
	}
}

// Dir returns the directory of the source file.
func (f *FSInfo) Dir() string {
	return filepath.Dir(f.FilePath)
}

func (f *FSInfo) String() string {
	if f.Line == 0 {
		return f.FilePath
	}
	return fmt.Sprintf("%s:%d", f.FilePath, f.Line)
}
