package wrap

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fnguard/internal/funcid"
	"github.com/vk/fnguard/internal/schema"
)

// Stage says which side of a call failed validation.
type Stage int

const (
	StageInput Stage = iota
	StageOutput
)

// String returns the lower-case stage name.
func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageOutput:
		return "output"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ValidationError reports that a wrapped call violated its contract. It
// always carries a best-effort human-readable Diagnostic; when the reporting
// machinery itself failed the Diagnostic is the fallback form, never a
// secondary error.
type ValidationError struct {
	Func       funcid.ID
	Stage      Stage
	Diagnostic schema.Diagnostic
	Offending  cty.Value
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed for %s: %s", e.Stage, e.Func, e.Diagnostic.Message)
}
