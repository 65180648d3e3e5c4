package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fnguard/internal/contract"
	"github.com/vk/fnguard/internal/env"
	"github.com/vk/fnguard/internal/funcid"
)

// mismatchedModule declares a number argument but binds a string-taking
// implementation.
type mismatchedModule struct{}

func (m *mismatchedModule) Register(e *env.Env) {
	e.DefineContracted(funcid.New("bad", "f"), contract.New(
		[]contract.Param{{Name: "n", Type: cty.Number}},
		contract.Return{Type: cty.Number},
	), func(s string) float64 { return 0 })
}

// arityModule declares one argument but binds a two-argument implementation.
type arityModule struct{}

func (m *arityModule) Register(e *env.Env) {
	e.DefineContracted(funcid.New("bad", "g"), contract.New(
		[]contract.Param{{Name: "n", Type: cty.Number}},
		contract.Return{Type: cty.Number},
	), func(a, b float64) float64 { return a })
}

func TestNewApp_PanicsOnTypeParityMismatch(t *testing.T) {
	t.Parallel()

	cfg := &Config{LogLevel: "error"}
	assert.PanicsWithError(t,
		"environment validation failed:\n- function \"bad/f\", arg \"n\": type mismatch. Contract requires 'number' but Go implementation provides 'string'",
		func() { NewApp(&bytes.Buffer{}, cfg, &mismatchedModule{}) })
}

func TestNewApp_PanicsOnArityMismatch(t *testing.T) {
	t.Parallel()

	cfg := &Config{LogLevel: "error"}
	assert.Panics(t, func() { NewApp(&bytes.Buffer{}, cfg, &arityModule{}) })
}

func TestRun_ReportsUnboundContracts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A manifest-only contract has no bound implementation; bulk
	// instrumentation must keep going and report it at the end.
	dir := t.TempDir()
	manifest := `
		contract "phantom" "f" {
		  arg "a" { type = number }
		  returns { type = number }
		}
	`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "phantom.hcl"), []byte(manifest), 0600))

	out := &bytes.Buffer{}
	testApp, _ := SetupAppTest(t, &Config{ContractsPath: dir})
	testApp.outW = out

	// --- Act ---
	err := testApp.Run(context.Background(), &Config{})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "warning: 1 function(s) could not be instrumented")
	assert.Contains(t, out.String(), `no binding found for function "phantom/f"`)

	// Everything instrumentable was restored on the way out.
	assert.False(t, testApp.Controller().Instrumented(funcid.New("mathx", "add")))
}

func TestRun_CallRendersResult(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	testApp, _ := SetupAppTest(t, &Config{})
	testApp.outW = out

	err := testApp.Run(context.Background(), &Config{Call: "strutil/join", ArgsJSON: `[["a","b"], "-"]`})

	require.NoError(t, err)
	assert.Contains(t, out.String(), `"a-b"`)
}

func TestRun_CallUnknownFunction(t *testing.T) {
	t.Parallel()

	testApp, _ := SetupAppTest(t, &Config{})

	err := testApp.Run(context.Background(), &Config{Call: "nope/missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no contract registered for function "nope/missing"`)
}
