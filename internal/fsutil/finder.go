// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches root for files ending with
// extension. A root that is itself a matching file is returned as is. The
// result is sorted.
func FindFilesByExtension(root string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// FindAll runs FindFilesByExtension over every path and merges the results,
// keeping first-seen order and dropping duplicates. Paths that do not exist
// are reported as errors.
func FindAll(paths []string, extension string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("accessing path %s: %w", p, err)
		}
		files, err := FindFilesByExtension(p, extension)
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", p, err)
		}
		for _, f := range files {
			clean := filepath.Clean(f)
			if _, ok := seen[clean]; ok {
				continue
			}
			seen[clean] = struct{}{}
			all = append(all, clean)
		}
	}
	return all, nil
}
