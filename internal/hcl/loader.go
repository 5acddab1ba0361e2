// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/optschema/internal/config"
	"github.com/specialistvlad/optschema/internal/ctxlog"
	"github.com/specialistvlad/optschema/internal/fsutil"
	"github.com/specialistvlad/optschema/internal/model"
)

// FileExtension is the suffix of files the loader reads.
const FileExtension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	env map[string]string
}

var _ config.Loader = (*Loader)(nil)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnv replaces the process environment exposed to expressions as env.
func WithEnv(env map[string]string) LoaderOption {
	return func(l *Loader) { l.env = env }
}

// NewLoader creates a new HCL configuration loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{env: environ()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// fileRoot is the top-level structure of a file: any number of instance blocks.
type fileRoot struct {
	Instances []*hclInstance `hcl:"instance,block"`
}

// hclInstance represents a single 'instance' block for decoding purposes.
type hclInstance struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Load finds every .hcl file under paths and decodes their instance blocks.
// Instances must be unique by kind and name across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindAll(paths, FileExtension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	cfg := &config.Model{}
	declared := make(map[string]*model.Instance)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		instances, diags := l.decodeFile(ctx, hclFile, file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, inst := range instances {
			if prev, ok := declared[inst.ID()]; ok {
				return nil, fmt.Errorf("duplicate instance %s at %s, first declared at %s",
					inst.ID(), inst.FSInformation, prev.FSInformation)
			}
			declared[inst.ID()] = inst
			cfg.Instances = append(cfg.Instances, inst)
		}
	}

	logger.Debug("HCL loading complete.", "instances", len(cfg.Instances))
	return cfg, nil
}

// Parse decodes instances from src without touching the file system.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) ([]*model.Instance, hcl.Diagnostics) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return l.decodeFile(ctx, hclFile, filename)
}

func (l *Loader) decodeFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*model.Instance, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding instances from file.", "file_path", filePath)

	var root fileRoot
	diags := gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, diags
	}

	evalCtx := l.evalContext()
	instances := make([]*model.Instance, 0, len(root.Instances))
	for _, block := range root.Instances {
		inst, instDiags := translateInstance(block, filePath, evalCtx)
		diags = append(diags, instDiags...)
		if instDiags.HasErrors() {
			continue
		}
		instances = append(instances, inst)
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return instances, diags
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env
}
