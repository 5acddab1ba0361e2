package registry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/specialistvlad/optschema/internal/ctxlog"
	"github.com/specialistvlad/optschema/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_Fetch(t *testing.T) {
	candy := NewContainer[string]("Candy")
	candy.Register("mars", "mars bar")

	v, err := candy.Fetch("mars")
	require.NoError(t, err)
	assert.Equal(t, "mars bar", v)

	_, err = candy.Fetch("twix")
	require.Error(t, err)
	assert.EqualError(t, err, `"twix" doesn't exist in Candy registry`)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestContainer_FetchOr(t *testing.T) {
	candy := NewContainer[string]("Candy")
	candy.Register("mars", "mars bar")

	assert.Equal(t, "twix", candy.FetchOr("candy", func() string { return "twix" }))
	assert.Equal(t, "mars bar", candy.FetchOr("mars", func() string { return "twix" }))
}

func TestContainer_RegisterTwicePanics(t *testing.T) {
	c := NewContainer[int]("numbers")
	c.Register("one", 1)
	assert.Panics(t, func() { c.Register("one", 2) })
}

func TestContainer_NamesInRegistrationOrder(t *testing.T) {
	c := NewContainer[int]("numbers")
	c.Register("b", 2)
	c.Register("a", 1)
	assert.Equal(t, []string{"b", "a"}, c.Names())
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Has("a"))
	assert.False(t, c.Has("c"))
}

func testCtx() (context.Context, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

func noopConstructor(context.Context, map[string]any) (any, error) { return nil, nil }

func TestValidateRegistry(t *testing.T) {
	ctx, logs := testCtx()
	r := New()
	r.RegisterKind(&Kind{
		Name: "typed",
		Schema: options.NewSchema("Typed").
			Option("name", options.WithType(options.Is[string]())),
		New: noopConstructor,
	})
	r.RegisterKind(&Kind{
		Name:   "loose",
		Schema: options.NewSchema("Loose").Option("anything"),
		New:    noopConstructor,
	})

	require.NoError(t, r.ValidateRegistry(ctx))
	assert.Contains(t, logs.String(), "option=anything")
	assert.NotContains(t, logs.String(), "option=name")
	assert.Equal(t, []string{"typed", "loose"}, r.KindNames())
}

func TestValidateRegistry_IncompleteKinds(t *testing.T) {
	ctx, _ := testCtx()
	r := New()
	r.RegisterKind(&Kind{Name: "no_schema", New: noopConstructor})
	r.RegisterKind(&Kind{Name: "no_constructor", Schema: options.NewSchema("X").Option("a")})
	r.RegisterKind(&Kind{Name: "empty", Schema: options.NewSchema("Empty"), New: noopConstructor})

	err := r.ValidateRegistry(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind 'no_schema': no option schema registered")
	assert.Contains(t, err.Error(), "kind 'no_constructor': no constructor registered")
	assert.Contains(t, err.Error(), "kind 'empty': schema Empty declares no options")
}

func TestRegistry_UnknownKind(t *testing.T) {
	_, err := New().Kind("s3")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, `"s3" doesn't exist in kind registry`)
}
