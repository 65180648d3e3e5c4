package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/fnguard/internal/ctxlog"
	"github.com/vk/fnguard/internal/funcid"
	"github.com/vk/fnguard/internal/instrument"
	"github.com/vk/fnguard/internal/wrap"
)

// Run executes the main application logic: instrument every registered
// function, perform the requested call (or list the registered contracts),
// and restore all bindings before returning.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.controller.InstrumentAll(ctx); err != nil {
		var batch *instrument.BatchError
		if !errors.As(err, &batch) {
			return fmt.Errorf("instrumentation failed: %w", err)
		}
		// Partial failure: the healthy functions are instrumented, so the
		// run continues, but the caller gets to see what broke.
		fmt.Fprintf(a.outW, "warning: %d function(s) could not be instrumented:\n", len(batch.Failures))
		for _, failure := range batch.Failures {
			fmt.Fprintf(a.outW, "  - %v\n", failure)
		}
	}
	defer func() {
		if err := a.controller.UnstrumentAll(ctx); err != nil {
			a.logger.Warn("Failed to restore all bindings.", "error", err)
		}
	}()

	if cfg.Call == "" {
		a.printContracts()
		return nil
	}
	return a.runCall(ctx, cfg)
}

func (a *App) runCall(ctx context.Context, cfg *Config) error {
	id, err := funcid.Parse(cfg.Call)
	if err != nil {
		return err
	}
	con, ok := a.env.Contracts.Lookup(id)
	if !ok {
		return fmt.Errorf("no contract registered for function %q", id)
	}

	argsJSON := cfg.ArgsJSON
	if argsJSON == "" {
		argsJSON = "[]"
	}
	argsTuple, err := ctyjson.Unmarshal([]byte(argsJSON), con.ArgsSchema().Type)
	if err != nil {
		return fmt.Errorf("cannot decode arguments for %q: %w", id, err)
	}
	if argsTuple.IsNull() {
		return fmt.Errorf("arguments for %q must be a JSON array, got null", id)
	}

	a.logger.Info("Calling instrumented function.", "id", id.String())
	result, err := a.env.Bindings.Call(ctx, id, argsTuple.AsValueSlice()...)
	if err != nil {
		var verr *wrap.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(a.outW, "contract violation in %s of %s:\n%s\n",
				verr.Stage, verr.Func, indent(verr.Diagnostic.Message))
		}
		return err
	}

	if result.IsNull() {
		fmt.Fprintln(a.outW, "null")
		return nil
	}
	rendered, err := ctyjson.Marshal(result, result.Type())
	if err != nil {
		return fmt.Errorf("cannot render result of %q: %w", id, err)
	}
	fmt.Fprintln(a.outW, string(rendered))
	return nil
}

// printContracts writes a one-line summary per registered contract.
func (a *App) printContracts() {
	for _, id := range a.env.Contracts.IDs() {
		con, _ := a.env.Contracts.Lookup(id)

		params := make([]string, len(con.Params))
		for i, p := range con.Params {
			params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type.FriendlyName())
			if p.Check != nil {
				params[i] += " " + p.Check.Name
			}
		}
		line := fmt.Sprintf("%s(%s) -> %s", id, strings.Join(params, ", "), con.Returns.Type.FriendlyName())
		if _, bound := a.env.Bindings.Resolve(id); !bound {
			line += "  [unbound]"
		}
		fmt.Fprintln(a.outW, line)
		if con.Description != "" {
			fmt.Fprintf(a.outW, "    %s\n", con.Description)
		}
	}
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
