package socketio_client

import (
	"testing"
	"time"

	"github.com/specialistvlad/optschema/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New(map[string]any{"url": cty.StringVal("wss://chat.example.com")})
	require.NoError(t, err)

	assert.Equal(t, "wss://chat.example.com", c.URL().String())
	assert.Equal(t, "/", c.Namespace())
	assert.Equal(t, DefaultPath, c.Path())
	assert.Equal(t, []string{"websocket"}, c.TransportNames())
	assert.Equal(t, 15*time.Second, c.ConnectTimeout())
	assert.Equal(t, "wss://chat.example.com", c.baseURL())
	assert.Equal(t, "", c.onEvent)
}

func TestNew_PathDefaultsToURLPath(t *testing.T) {
	c, err := New(map[string]any{"url": "http://localhost:3000/realtime/"})
	require.NoError(t, err)
	assert.Equal(t, "/realtime/", c.Path())
	assert.Equal(t, "http://localhost:3000", c.baseURL())

	c, err = New(map[string]any{"url": "http://localhost:3000/realtime/", "path": "/io/"})
	require.NoError(t, err)
	assert.Equal(t, "/io/", c.Path())
}

func TestNew_Exchange(t *testing.T) {
	c, err := New(map[string]any{
		"url":        "ws://localhost:3000",
		"transports": cty.TupleVal([]cty.Value{cty.StringVal("polling"), cty.StringVal("websocket")}),
		"emit_event": cty.StringVal("ping"),
		"emit_data": cty.ObjectVal(map[string]cty.Value{
			"n":    cty.NumberIntVal(2),
			"tags": cty.TupleVal([]cty.Value{cty.StringVal("a")}),
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"polling", "websocket"}, c.TransportNames())
	assert.Equal(t, "ping", c.onEvent, "on_event defaults to emit_event")
	assert.Equal(t, map[string]any{"n": int64(2), "tags": []any{"a"}}, c.emitData)
}

func TestNew_Rejects(t *testing.T) {
	testCases := []struct {
		name   string
		raw    map[string]any
		target error
		msg    string
	}{
		{"missing url", map[string]any{}, ErrMissingURL, "url is required"},
		{"ftp url", map[string]any{"url": "ftp://host"}, options.ErrInvalidValue, `"url":ftp://host has incorrect value`},
		{"bad namespace", map[string]any{"url": "ws://h", "namespace": "chat"}, options.ErrInvalidValue, `"namespace":"chat" has incorrect value`},
		{"unknown transport", map[string]any{"url": "ws://h", "transports": []string{"carrier-pigeon"}}, options.ErrInvalidValue, `has incorrect value`},
		{"empty transports", map[string]any{"url": "ws://h", "transports": []string{}}, options.ErrInvalidValue, `has incorrect value`},
		{"bad timeout", map[string]any{"url": "ws://h", "connect_timeout": "later"}, options.ErrInvalidValue, `could not be coerced`},
		{"unencodable data", map[string]any{"url": "ws://h", "emit_data": func() {}}, options.ErrInvalidValue, `"emit_data"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.raw)
			require.ErrorIs(t, err, tc.target)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestCtyValueToInterface(t *testing.T) {
	testCases := []struct {
		name string
		in   cty.Value
		want any
	}{
		{"null", cty.NullVal(cty.String), nil},
		{"string", cty.StringVal("x"), "x"},
		{"int", cty.NumberIntVal(7), int64(7)},
		{"float", cty.NumberFloatVal(1.5), 1.5},
		{"bool", cty.True, true},
		{"list", cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}), []any{"a", "b"}},
		{"map", cty.MapVal(map[string]cty.Value{"k": cty.False}), map[string]any{"k": false}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ctyValueToInterface(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ctyValueToInterface(cty.UnknownVal(cty.String))
	require.Error(t, err)
}
