// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Buildfile structure and the functions that load it
// from disk.
//
// Why allow a directory?
//
// Larger projects split their targets by concern, for example one file for
// compilation and one for packaging. Pointing mkr at a directory loads every
// .hcl file beneath it, in lexical order, into one Buildfile so dependencies
// may cross file boundaries.
package model

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/specialistvlad/mkr/internal/fsutil"
)

// Buildfile is the parsed content of one or more build files.
type Buildfile struct {
	Files     []string
	Variables []*Variable
	Targets   []*Target
	// Diagnostics holds definition problems that do not prevent the rest of
	// the file from being used. They are reported together with the problems
	// found during evaluation.
	Diagnostics hcl.Diagnostics
}

// NewBuildfile creates an empty Buildfile.
func NewBuildfile() *Buildfile {
	return &Buildfile{
		Variables: []*Variable{},
		Targets:   []*Target{},
	}
}

// hclBuildFile is the top-level structure of a build file for decoding.
type hclBuildFile struct {
	Variables []*hclVariable `hcl:"variable,block"`
	Targets   []*hclTarget   `hcl:"target,block"`
	Defaults  []*hclDefault  `hcl:"default,block"`
}

// parseFile parses a single HCL file and appends its definitions to bf.
// Targets keep their order of appearance, with default blocks after the
// named targets of the same file. The returned diagnostics are syntax and
// structure errors that make the file unusable.
func (bf *Buildfile) parseFile(filePath string, parser *hclparse.Parser) hcl.Diagnostics {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return diags
	}

	var parsed hclBuildFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return diags
	}

	for _, v := range parsed.Variables {
		bf.Variables = append(bf.Variables, newVariableFromHCL(v))
	}
	for _, t := range parsed.Targets {
		target, tDiags := newTargetFromHCL(t)
		bf.Diagnostics = append(bf.Diagnostics, tDiags...)
		bf.Targets = append(bf.Targets, target)
	}
	for _, d := range parsed.Defaults {
		target, tDiags := newDefaultFromHCL(d)
		bf.Diagnostics = append(bf.Diagnostics, tDiags...)
		bf.Targets = append(bf.Targets, target)
	}
	bf.Files = append(bf.Files, filePath)
	return nil
}

// Load parses path, a single file or a directory searched recursively for
// .hcl files.
func Load(ctx context.Context, path string) (*Buildfile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading build file.", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build file: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find build files in %s: %w", path, err)
		}
		if len(files) == 0 {
			logger.Warn("No .hcl build files found in directory.", "path", path)
		}
	}

	bf := NewBuildfile()
	parser := hclparse.NewParser()
	var diags hcl.Diagnostics
	for _, file := range files {
		diags = append(diags, bf.parseFile(file, parser)...)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse build file %s: %w", path, diags)
	}

	logger.Debug("Build file parsed.", "files", len(bf.Files), "targets", len(bf.Targets), "variables", len(bf.Variables))
	return bf, nil
}
