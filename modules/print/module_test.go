package print

import (
	"bytes"
	"context"
	"testing"

	"github.com/specialistvlad/optschema/internal/options"
	"github.com/specialistvlad/optschema/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew_Defaults(t *testing.T) {
	p, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, "      ", p.Prefix())
	assert.Empty(t, p.Values())
	assert.Equal(t, []string{"value", "prefix"}, p.Options().Names())

	var out bytes.Buffer
	require.NoError(t, p.Print(&out))
	assert.Equal(t, "      (null)\n", out.String())
}

func TestValues_DoNotAliasOptionSet(t *testing.T) {
	p, err := New(map[string]any{"value": map[string]string{"k": "v"}})
	require.NoError(t, err)

	p.Values()["k"] = "changed"
	assert.Equal(t, map[string]string{"k": "v"}, p.Options().Value("value"))
}

func TestNew_FromCty(t *testing.T) {
	p, err := New(map[string]any{
		"prefix": cty.StringVal("> "),
		"value": cty.ObjectVal(map[string]cty.Value{
			"b": cty.StringVal("2"),
			"a": cty.StringVal("1"),
		}),
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, p.Probe(context.Background(), &out))
	assert.Equal(t, "> a = \"1\"\n> b = \"2\"\n", out.String())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(map[string]any{"prefix": 3})
	require.ErrorIs(t, err, options.ErrInvalidValue)
	assert.Contains(t, err.Error(), `"prefix":3 has incorrect type (string is expected)`)

	_, err = New(map[string]any{"colour": "red"})
	require.ErrorIs(t, err, options.ErrUnknownOption)
}

func TestModule_Register(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	kind, err := r.Kind("print")
	require.NoError(t, err)
	v, err := kind.New(context.Background(), map[string]any{"prefix": ""})
	require.NoError(t, err)
	assert.IsType(t, &Printer{}, v)
}
