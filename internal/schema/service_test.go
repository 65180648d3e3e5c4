package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestCtyService_Validate(t *testing.T) {
	t.Parallel()
	svc := CtyService{}

	testCases := []struct {
		name   string
		schema *Schema
		value  cty.Value
		valid  bool
	}{
		{
			name:   "number accepts number",
			schema: New(cty.Number),
			value:  cty.NumberIntVal(5),
			valid:  true,
		},
		{
			name:   "number accepts numeric string by conversion",
			schema: New(cty.Number),
			value:  cty.StringVal("42"),
			valid:  true,
		},
		{
			name:   "number rejects non-numeric string",
			schema: New(cty.Number),
			value:  cty.StringVal("nope"),
			valid:  false,
		},
		{
			name:   "positive check rejects negative",
			schema: New(cty.Number, PathCheck{Check: Positive}),
			value:  cty.NumberIntVal(-1),
			valid:  false,
		},
		{
			name:   "positive check accepts positive",
			schema: New(cty.Number, PathCheck{Check: Positive}),
			value:  cty.NumberIntVal(5),
			valid:  true,
		},
		{
			name: "tuple accepts matching arity and types",
			schema: New(cty.Tuple([]cty.Type{cty.Number, cty.String})),
			value: cty.TupleVal([]cty.Value{
				cty.NumberIntVal(1), cty.StringVal("x"),
			}),
			valid: true,
		},
		{
			name:   "tuple rejects wrong arity",
			schema: New(cty.Tuple([]cty.Type{cty.Number, cty.String})),
			value:  cty.TupleVal([]cty.Value{cty.NumberIntVal(1)}),
			valid:  false,
		},
		{
			name: "indexed check rejects negative at position",
			schema: New(
				cty.Tuple([]cty.Type{cty.Number}),
				PathCheck{Path: cty.IndexIntPath(0), Check: Positive},
			),
			value: cty.TupleVal([]cty.Value{cty.NumberIntVal(-1)}),
			valid: false,
		},
		{
			name:   "dynamic schema accepts anything",
			schema: New(cty.DynamicPseudoType),
			value:  cty.True,
			valid:  true,
		},
		{
			name:   "nil schema rejects",
			schema: nil,
			value:  cty.True,
			valid:  false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.valid, svc.Validate(tc.schema, tc.value))
		})
	}
}

func TestCtyService_Explain_TuplePositions(t *testing.T) {
	t.Parallel()
	svc := CtyService{}

	// --- Arrange ---
	sch := New(cty.Tuple([]cty.Type{cty.Number, cty.Bool}))
	val := cty.TupleVal([]cty.Value{cty.StringVal("nope"), cty.True})

	// --- Act ---
	ex, err := svc.Explain(sch, val)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, ex.Problems, 1)
	assert.Equal(t, cty.IndexIntPath(0), ex.Problems[0].Path)
	assert.Equal(t, "number", ex.Problems[0].Expected)
	assert.Equal(t, "string", ex.Problems[0].Actual)
}

func TestCtyService_Explain_ArityMismatch(t *testing.T) {
	t.Parallel()
	svc := CtyService{}

	sch := New(cty.Tuple([]cty.Type{cty.Number, cty.Number}))
	val := cty.TupleVal([]cty.Value{cty.NumberIntVal(1)})

	ex, err := svc.Explain(sch, val)
	require.NoError(t, err)
	require.NotEmpty(t, ex.Problems)
	assert.Contains(t, ex.Problems[0].Detail, "wrong number of arguments")
}

func TestCtyService_Explain_CheckFailure(t *testing.T) {
	t.Parallel()
	svc := CtyService{}

	sch := New(cty.Number, PathCheck{Check: Positive})
	ex, err := svc.Explain(sch, cty.NumberIntVal(-3))
	require.NoError(t, err)
	require.Len(t, ex.Problems, 1)
	assert.Contains(t, ex.Problems[0].Detail, `does not satisfy "positive"`)
}

func TestCtyService_Humanize(t *testing.T) {
	t.Parallel()
	svc := CtyService{}

	sch := New(
		cty.Tuple([]cty.Type{cty.Number}),
		PathCheck{Path: cty.IndexIntPath(0), Check: Positive},
	)
	ex, err := svc.Explain(sch, cty.TupleVal([]cty.Value{cty.NumberIntVal(-1)}))
	require.NoError(t, err)

	msg, err := svc.Humanize(ex)
	require.NoError(t, err)
	assert.Contains(t, msg, "expected tuple")
	assert.Contains(t, msg, "at [0]:")

	_, err = svc.Humanize(nil)
	assert.Error(t, err)
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	path := cty.GetAttrPath("items").IndexInt(2).IndexString("key")
	assert.Equal(t, `.items[2]["key"]`, FormatPath(path))
}

func TestChecks(t *testing.T) {
	t.Parallel()

	assert.True(t, Positive.Test(cty.NumberIntVal(1)))
	assert.False(t, Positive.Test(cty.NumberIntVal(0)))
	assert.False(t, Positive.Test(cty.NullVal(cty.Number)))
	assert.False(t, Positive.Test(cty.UnknownVal(cty.Number)))
	assert.False(t, Positive.Test(cty.StringVal("5")))

	assert.True(t, NonZero.Test(cty.NumberIntVal(-2)))
	assert.False(t, NonZero.Test(cty.Zero))

	assert.True(t, NonEmpty.Test(cty.StringVal("x")))
	assert.False(t, NonEmpty.Test(cty.StringVal("")))
	assert.True(t, NonEmpty.Test(cty.ListVal([]cty.Value{cty.True})))
	assert.False(t, NonEmpty.Test(cty.ListValEmpty(cty.Bool)))

	_, ok := CheckByName("positive")
	assert.True(t, ok)
	_, ok = CheckByName("no-such-check")
	assert.False(t, ok)
}
