package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/specialistvlad/optschema/internal/hcl"
	"github.com/specialistvlad/optschema/internal/options"
	"github.com/specialistvlad/optschema/internal/registry"
	"github.com/specialistvlad/optschema/modules/http_client"
	"github.com/specialistvlad/optschema/modules/print"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenModule registers a kind without a constructor.
type brokenModule struct{}

func (brokenModule) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:   "broken",
		Schema: options.NewSchema("Broken").Option("x", options.WithType(options.Is[string]())),
	})
}

func TestNewApp_RegistersCoreModules(t *testing.T) {
	a, _, _ := setupAppTest(t, Config{})
	assert.Equal(t, []string{"print", "env_vars", "http_client", "http_request", "socketio_client"},
		a.Registry().KindNames())
}

func TestNewApp_InvalidRegistry(t *testing.T) {
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)

	_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, hcl.NewLoader(), brokenModule{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind 'broken': no constructor registered")
}

func TestNewApp_NilArguments(t *testing.T) {
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)

	_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, nil, hcl.NewLoader())
	require.Error(t, err)
	_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil)
	require.Error(t, err)
}

func TestNewApp_RejectsUnnormalizedConfig(t *testing.T) {
	_, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{ProbeTimeout: time.Second}, hcl.NewLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker count must be at least 1")

	_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{WorkerCount: 1}, hcl.NewLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe timeout must be positive")
}

func TestCheck(t *testing.T) {
	path := writeConfig(t, `
instance "print" "greeting" {
  prefix = "> "
  value  = { hello = "world" }
}

instance "http_client" "slow" {
  timeout = "1m"
}

instance "http_client" "broken" {
  timeout = "soon"
}

instance "http_request" "typo" {
  url  = "http://${env.HOST}/"
  verb = "GET"
}

instance "nope" "x" {}
`)
	a, _, _ := setupAppTest(t, Config{})

	results, err := a.Check(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, results, 5)

	greeting := results[0]
	require.True(t, greeting.OK(), "%v", greeting.Err)
	assert.IsType(t, &print.Printer{}, greeting.Value)
	assert.Equal(t, "> ", greeting.Options.Value("prefix"))

	slow := results[1]
	require.True(t, slow.OK())
	assert.Equal(t, "1m0s", slow.Value.(*http_client.Client).Timeout().String())

	assert.ErrorIs(t, results[2].Err, options.ErrInvalidValue)
	assert.ErrorIs(t, results[3].Err, options.ErrUnknownOption)
	assert.ErrorIs(t, results[4].Err, registry.ErrNotFound)
	assert.False(t, results[0].Probed, "probing is off by default")
}

func TestCheck_LoadFailure(t *testing.T) {
	a, _, _ := setupAppTest(t, Config{})

	_, err := a.Check(context.Background())
	require.Error(t, err)

	_, err = a.Check(context.Background(), writeConfig(t, `instance "print" {`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestRun_Report(t *testing.T) {
	path := writeConfig(t, `
instance "print" "a" {
  prefix = "-"
}

instance "http_client" "b" {
  max_idle_conns = -5
}
`)
	a, out, _ := setupAppTest(t, Config{Paths: []string{path}})

	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrCheckFailed)

	report := out.String()
	assert.Contains(t, report, "ok   print.a ("+path+":2)\n")
	assert.Contains(t, report, `prefix = "-"`)
	assert.Contains(t, report, "FAIL http_client.b ("+path+":6)\n")
	assert.Contains(t, report, `"max_idle_conns":-5 has incorrect value`)
	assert.Contains(t, report, "2 instances checked, 1 failed\n")
}

func TestRun_Probe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "pong")
	}))
	defer srv.Close()

	path := writeConfig(t, fmt.Sprintf(`
instance "http_request" "up" {
  url = "%[1]s/ping"
}

instance "http_request" "down" {
  url = "%[1]s/missing"
}

instance "print" "p" {
  value = { k = "v" }
}
`, srv.URL))
	a, out, _ := setupAppTest(t, Config{Paths: []string{path}, Probe: true})

	results, err := a.Check(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Probed)
	assert.NoError(t, results[0].ProbeErr)
	assert.Equal(t, "GET "+srv.URL+"/ping -> 200 (4 bytes)\n", results[0].ProbeOutput)

	assert.True(t, results[1].Probed)
	assert.Error(t, results[1].ProbeErr)
	assert.False(t, results[1].OK())

	assert.Equal(t, "      k = \"v\"\n", results[2].ProbeOutput)

	require.ErrorIs(t, a.Run(context.Background()), ErrCheckFailed)
	assert.Contains(t, out.String(), "probe: unexpected status 404, want 200")
}

func TestDescribe(t *testing.T) {
	a, _, _ := setupAppTest(t, Config{}, &print.Module{}, &http_client.Module{})

	var out bytes.Buffer
	require.NoError(t, a.Describe(&out))

	text := out.String()
	assert.Contains(t, text, "print")
	assert.Contains(t, text, "(Printer)")
	assert.Contains(t, text, "coerce -> default(\"      \") -> type-check(string) -> reader")
	assert.Contains(t, text, "(HTTPClient)")
	assert.Contains(t, text, "value-check(a positive duration)")
}
