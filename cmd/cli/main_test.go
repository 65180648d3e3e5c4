package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A contract manifest with a syntax error is guaranteed to make app
	// startup panic during loading.
	invalidHCL := `
		contract "demo" "broken" {
			arg "a" {
		// Missing closing braces here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "broken.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{"--contracts", filePath}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_ListsContracts(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, nil)

	require.NoError(t, err)
	require.Contains(t, out.String(), "mathx/add(a: number, b: number) -> number")
	require.Contains(t, out.String(), "strutil/repeat(s: string nonempty, count: number positive) -> string")
}

func TestRun_CallValidatesArguments(t *testing.T) {
	t.Parallel()

	// A valid call goes through the instrumented binding and prints the result.
	out := &bytes.Buffer{}
	err := run(out, []string{"--call", "mathx/add", "--args", "[2, 3]"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "5")

	// A contract-violating call reports the diagnostic and fails.
	out = &bytes.Buffer{}
	err = run(out, []string{"--call", "strutil/repeat", "--args", `["", 3]`})
	require.Error(t, err)
	require.Contains(t, out.String(), "contract violation in input of strutil/repeat")
	require.Contains(t, out.String(), `does not satisfy "nonempty"`)
}
