package schema

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// ExplainResult holds the outcome of one attempt to explain a validation
// failure: exactly one of Explanation or Err is set.
type ExplainResult struct {
	Explanation *Explanation
	Err         error
}

// Diagnostic is the human-facing payload attached to a validation failure.
// When the reporting machinery itself failed, Fallback is true, Message holds
// a fixed advisory, and Result/Cause carry whatever was captured for
// debugging.
type Diagnostic struct {
	Message  string
	Fallback bool
	Result   ExplainResult
	Cause    error
}

const fallbackAdvisory = "failed to generate a human-readable validation report; raw explain result attached"

// SafeExplainHumanize builds the best-effort Diagnostic for a value that
// failed validation against schema. Errors and panics raised by the Service's
// explain or humanize steps are captured and degrade to a fallback Diagnostic;
// this function never panics and has no error return, so the validation path
// cannot crash because the reporting path is fragile.
func SafeExplainHumanize(svc Service, schema *Schema, value cty.Value) Diagnostic {
	res := safeExplain(svc, schema, value)
	if res.Err != nil {
		return Diagnostic{Message: fallbackAdvisory, Fallback: true, Result: res, Cause: res.Err}
	}

	msg, err := safeHumanize(svc, res.Explanation)
	if err != nil {
		return Diagnostic{Message: fallbackAdvisory, Fallback: true, Result: res, Cause: err}
	}

	return Diagnostic{Message: msg, Result: res}
}

func safeExplain(svc Service, schema *Schema, value cty.Value) (res ExplainResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ExplainResult{Err: fmt.Errorf("explain panicked: %v", r)}
		}
	}()

	ex, err := svc.Explain(schema, value)
	if err != nil {
		return ExplainResult{Err: err}
	}
	return ExplainResult{Explanation: ex}
}

func safeHumanize(svc Service, ex *Explanation) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("humanize panicked: %v", r)
		}
	}()

	return svc.Humanize(ex)
}
