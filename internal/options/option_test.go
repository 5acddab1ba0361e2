package options_test

import (
	"testing"

	"github.com/specialistvlad/optschema/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepKinds(opt *options.Option) []options.StepKind {
	var kinds []options.StepKind
	for _, s := range opt.Steps() {
		kinds = append(kinds, s.Kind())
	}
	return kinds
}

func TestNewOption_PipelineOrderIsFixed(t *testing.T) {
	opt := options.NewOption("role",
		options.Reader(func(u *User, v string) {}),
		options.WithAllow("admin", "user"),
		options.WithType(options.Is[string]()),
		options.WithDefault("user"),
		options.WithCoercer(options.ParseDuration),
	)

	assert.Equal(t, []options.StepKind{
		options.StepCoerce,
		options.StepDefaultValue,
		options.StepTypeCheck,
		options.StepValueCheck,
		options.StepAssignReader,
	}, stepKinds(opt))
	assert.True(t, opt.HasReader())
	assert.Equal(t, "role", opt.Name())
}

func TestNewOption_OnlyConfiguredStepsPresent(t *testing.T) {
	assert.Empty(t, stepKinds(options.NewOption("plain")))
	assert.False(t, options.NewOption("plain").HasReader())

	assert.Equal(t,
		[]options.StepKind{options.StepDefaultFromOwner, options.StepValueCheck},
		stepKinds(options.NewOption("computed",
			options.WithAllow(1, 2),
			options.WithDefaultFunc(func(any) (any, error) { return 1, nil }))))
}

func TestNewOption_DefaultFuncValueIsTreatedAsFunction(t *testing.T) {
	var fn options.DefaultFunc = func(any) (any, error) { return "computed", nil }
	opt := options.NewOption("x", options.WithDefault(fn))
	assert.Equal(t, []options.StepKind{options.StepDefaultFromOwner}, stepKinds(opt))
}

func TestWithDefault_FunctionLiterals(t *testing.T) {
	schema := options.NewSchema("Computed", options.WithLogger(quietLogger())).
		Option("withErr", options.WithDefault(func(owner any) (any, error) { return 42, nil })).
		Option("plain", options.WithDefault(func(owner any) any { return "x" }))

	for _, name := range []string{"withErr", "plain"} {
		opt, ok := schema.Lookup(name)
		require.True(t, ok)
		assert.Equal(t, []options.StepKind{options.StepDefaultFromOwner}, stepKinds(opt), name)
	}

	u := &User{}
	require.NoError(t, schema.Construct(u))
	assert.Equal(t, map[string]any{"withErr": 42, "plain": "x"}, u.Options().Map())
}

func TestWithDefault_UnsupportedFunctionPanics(t *testing.T) {
	assert.Panics(t, func() { options.WithDefault(func() int { return 1 }) })
	assert.Panics(t, func() { options.WithDefault(func(u *User) string { return u.Name() }) })
}

func TestNewOption_LastDefaultWins(t *testing.T) {
	opt := options.NewOption("x",
		options.WithDefaultFunc(func(any) (any, error) { return 1, nil }),
		options.WithDefault(2))

	steps := opt.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, options.StepDefaultValue, steps[0].Kind())
	assert.Equal(t, 2, steps[0].DefaultValue())
}

func TestNewOption_EmptyNamePanics(t *testing.T) {
	assert.Panics(t, func() { options.NewOption("") })
}

func TestOption_TransformPassesThroughWithoutSteps(t *testing.T) {
	m := map[string]any{"plain": []int{1, 2}}
	require.NoError(t, options.NewOption("plain").Transform(nil, m))
	assert.Equal(t, []int{1, 2}, m["plain"])
}

func TestOption_ConditionalStepsSkipAbsentKeys(t *testing.T) {
	called := false
	opt := options.NewOption("x",
		options.WithCoercer(func(v any) (any, error) { called = true; return v, nil }),
		options.WithType(options.Is[int]()),
		options.WithAllow(1),
		options.WithReader(func(_, _ any) error { called = true; return nil }))

	m := map[string]any{}
	require.NoError(t, opt.Transform(nil, m))
	assert.False(t, called)
	assert.Empty(t, m)
}

func TestReader_NilStoresZeroValue(t *testing.T) {
	u := &User{name: "before"}
	opt := options.NewOption("name", options.Reader(func(u *User, v string) { u.name = v }))

	require.NoError(t, opt.Transform(u, map[string]any{"name": nil}))
	assert.Equal(t, "", u.name)
}

func TestReader_WrongValueTypeIsInvalid(t *testing.T) {
	opt := options.NewOption("name", options.Reader(func(u *User, v string) { u.name = v }))

	err := opt.Transform(&User{}, map[string]any{"name": 5})
	assert.ErrorIs(t, err, options.ErrInvalidValue)
}

func TestStep_String(t *testing.T) {
	opt := options.NewOption("role",
		options.WithDefault("user"),
		options.WithAllow("admin", "user"))
	steps := opt.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, `default("user")`, steps[0].String())
	assert.Equal(t, `value-check(one of ["admin", "user"])`, steps[1].String())
}
