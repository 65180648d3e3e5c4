// Package testutil provides the shared harness for integration tests: it
// materializes contract manifests on disk, boots a full application instance
// around them, and captures everything the run produced.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/fnguard/internal/app"
	"github.com/vk/fnguard/internal/env"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Output is everything written to the app's writer: structured logs and
	// printed results share one stream, matching how the CLI runs.
	Output string
	Err    error
	App    *app.App
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg *app.Config, modules ...env.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg, modules...)
}

// RunIntegrationTestWithContext runs the full startup-instrument-run-restore
// lifecycle against the given manifest files and modules. A startup panic is
// recovered and surfaced as the result error so tests can assert on it.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg *app.Config, modules ...env.Module) *HarnessResult {
	t.Helper()

	if len(files) > 0 {
		tmpDir := t.TempDir()
		for name, content := range files {
			filePath := filepath.Join(tmpDir, name)
			require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
			require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
		}
		cfg.ContractsPath = tmpDir
	}
	cfg.LogLevel = "debug"

	out := &app.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, cfg, modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			Output: out.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx, cfg)

	if os.Getenv("FNGUARD_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
	}

	return &HarnessResult{
		Output: out.String(),
		Err:    runErr,
		App:    testApp,
	}
}
