package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fnguard/internal/funcid"
	"github.com/vk/fnguard/internal/schema"
)

func TestNew_DerivesSchemas(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := New(
		[]Param{
			{Name: "a", Type: cty.Number, Check: schema.Positive},
			{Name: "b", Type: cty.String},
		},
		Return{Type: cty.Bool},
	)

	// --- Assert ---
	args := c.ArgsSchema()
	require.NotNil(t, args)
	assert.True(t, args.Type.Equals(cty.Tuple([]cty.Type{cty.Number, cty.String})))
	require.Len(t, args.Checks, 1)
	assert.Equal(t, cty.IndexIntPath(0), args.Checks[0].Path)
	assert.Equal(t, "positive", args.Checks[0].Check.Name)

	ret := c.RetSchema()
	require.NotNil(t, ret)
	assert.True(t, ret.Type.Equals(cty.Bool))
	assert.Empty(t, ret.Checks)
}

func TestNew_ZeroParams(t *testing.T) {
	t.Parallel()

	c := New(nil, Return{Type: cty.String})
	assert.True(t, c.ArgsSchema().Type.Equals(cty.EmptyTuple))
}

func TestRegistry_RegisterLookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	id := funcid.New("mathx", "add")
	c := New(nil, Return{Type: cty.Number})

	reg.Register(id, c)

	got, ok := reg.Lookup(id)
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = reg.Lookup(funcid.New("mathx", "missing"))
	assert.False(t, ok)

	assert.Panics(t, func() { reg.Register(id, c) })
}

func TestRegistry_IDsSorted(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	c := New(nil, Return{Type: cty.Number})
	reg.Register(funcid.New("z", "a"), c)
	reg.Register(funcid.New("a", "z"), c)
	reg.Register(funcid.New("a", "b"), c)

	assert.Equal(t, []funcid.ID{
		funcid.New("a", "b"),
		funcid.New("a", "z"),
		funcid.New("z", "a"),
	}, reg.IDs())
	assert.Equal(t, 3, reg.Len())
}
