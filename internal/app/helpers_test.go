package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/optschema/internal/hcl"
	"github.com/specialistvlad/optschema/internal/registry"
	"github.com/stretchr/testify/require"
)

// safeBuffer is a thread-safe buffer for capturing log output in tests.
type safeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// setupAppTest creates an app writing its report to out and its debug log
// to the returned buffer. Set OPTSCHEMA_TEST_LOGS=true to dump the log.
func setupAppTest(t *testing.T, cfg Config, modules ...registry.Module) (*App, *bytes.Buffer, *safeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &safeBuffer{}
	testApp, err := NewApp(out, logs, appConfig, hcl.NewLoader(hcl.WithEnv(map[string]string{"HOST": "localhost"})), modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("OPTSCHEMA_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return testApp, out, logs
}

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}
