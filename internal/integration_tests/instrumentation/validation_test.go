package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fnguard/internal/app"
	"github.com/vk/fnguard/internal/contract"
	"github.com/vk/fnguard/internal/env"
	"github.com/vk/fnguard/internal/funcid"
	"github.com/vk/fnguard/internal/schema"
	"github.com/vk/fnguard/internal/testutil"
	"github.com/vk/fnguard/internal/wrap"
)

// mockNegateModule declares a positive return but produces a negative number,
// so every successful input still fails output validation.
type mockNegateModule struct{}

func (m *mockNegateModule) Register(e *env.Env) {
	e.DefineContracted(funcid.New("demo", "negate"), contract.New(
		[]contract.Param{{Name: "n", Type: cty.Number, Check: schema.Positive}},
		contract.Return{Type: cty.Number, Check: schema.Positive},
	), func(n float64) float64 { return -n })
}

// TestInstrumentation_RejectsInvalidInput validates that an instrumented call
// with an argument violating its check is rejected before the implementation
// runs.
func TestInstrumentation_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, nil, &app.Config{Call: "mathx/abs", ArgsJSON: "[0]"})

	// --- Assert ---
	require.Error(t, result.Err)
	var verr *wrap.ValidationError
	require.ErrorAs(t, result.Err, &verr)
	assert.Equal(t, wrap.StageInput, verr.Stage)
	assert.Contains(t, result.Output, "contract violation in input of mathx/abs")
	assert.Contains(t, result.Output, `does not satisfy "nonzero"`)
}

// TestInstrumentation_RejectsInvalidOutput validates that a result violating
// the declared return contract surfaces as an output-stage violation even
// though the input was accepted.
func TestInstrumentation_RejectsInvalidOutput(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, nil,
		&app.Config{Call: "demo/negate", ArgsJSON: "[3]"}, &mockNegateModule{})

	// --- Assert ---
	require.Error(t, result.Err)
	var verr *wrap.ValidationError
	require.ErrorAs(t, result.Err, &verr)
	assert.Equal(t, wrap.StageOutput, verr.Stage)
	assert.Contains(t, result.Output, "contract violation in output of demo/negate")
}

// TestInstrumentation_PartialBatchContinues validates that a contract without
// a binding is reported once and does not prevent the healthy functions from
// being instrumented and called.
func TestInstrumentation_PartialBatchContinues(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"phantom.hcl": `
			contract "phantom" "f" {
			  arg "a" { type = number }
			  returns { type = number }
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, &app.Config{Call: "mathx/add", ArgsJSON: "[2, 3]"})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "warning: 1 function(s) could not be instrumented")
	assert.Contains(t, result.Output, `no binding found for function "phantom/f"`)
	assert.Contains(t, result.Output, "\n5\n")
}
