// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package testutil holds the harness shared by integration tests: it writes
// HCL files to a temporary directory, builds an app with the given modules
// and checks every declared instance.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/optschema/internal/app"
	"github.com/specialistvlad/optschema/internal/hcl"
	"github.com/specialistvlad/optschema/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	Results   []app.Result
	Report    string
	LogOutput string
	Err       error
	App       *app.App
}

// HarnessOptions tunes RunIntegrationTest.
type HarnessOptions struct {
	Env     map[string]string
	Probe   bool
	Modules []registry.Module // core modules when empty
}

// RunIntegrationTest runs the harness with a background context.
func RunIntegrationTest(t *testing.T, files map[string]string, opts HarnessOptions) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts)
}

// RunIntegrationTestWithContext writes files (relative path -> content) to a
// temporary directory and checks it the way App.Run does. Err is the load
// error or app.ErrCheckFailed; startup failures fail the test.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts HarnessOptions) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg, err := app.NewConfig(app.Config{
		Paths:       []string{dir},
		LogLevel:    "debug",
		LogFormat:   "text",
		Probe:       opts.Probe,
		WorkerCount: 4,
	})
	require.NoError(t, err)

	env := opts.Env
	if env == nil {
		env = map[string]string{}
	}

	report := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}
	testApp, err := app.NewApp(report, logBuffer, cfg, hcl.NewLoader(hcl.WithEnv(env)), opts.Modules...)
	require.NoError(t, err)

	result := &HarnessResult{Dir: dir, App: testApp}
	result.Results, result.Err = testApp.Check(ctx, dir)
	if result.Err == nil {
		require.NoError(t, app.WriteReport(report, result.Results))
		for _, r := range result.Results {
			if !r.OK() {
				result.Err = app.ErrCheckFailed
				break
			}
		}
	}
	result.Report = report.String()
	result.LogOutput = logBuffer.String()

	if os.Getenv("OPTSCHEMA_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
