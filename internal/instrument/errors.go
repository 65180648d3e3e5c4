package instrument

import (
	"fmt"
	"strings"

	"github.com/vk/fnguard/internal/funcid"
)

// SchemaNotFoundError reports that instrumentation was requested for an
// identifier the contract registry does not know.
type SchemaNotFoundError struct {
	ID funcid.ID
}

// Error implements the error interface.
func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("no contract registered for function %q", e.ID)
}

// VarNotFoundError reports that no live binding could be resolved for an
// identifier.
type VarNotFoundError struct {
	ID funcid.ID
}

// Error implements the error interface.
func (e *VarNotFoundError) Error() string {
	return fmt.Sprintf("no binding found for function %q", e.ID)
}

// BatchError aggregates the failures of a bulk instrument or unstrument pass.
// Failures appear in the order the identifiers were attempted; the batch is
// never aborted early, so every identifier was given its chance before this
// error was built.
type BatchError struct {
	Failures []error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, err := range e.Failures {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d of the attempted operations failed:\n- %s",
		len(e.Failures), strings.Join(msgs, "\n- "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	return e.Failures
}
