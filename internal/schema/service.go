package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Service is the schema engine surface the instrumentation layer consumes.
//
// Validate is a cheap yes/no conformance test and must be total. Explain and
// Humanize build the diagnostic report for a non-conforming value; both may
// return errors and, on pathological values, may panic. Callers on the
// validation path must go through SafeExplainHumanize instead of calling them
// directly.
type Service interface {
	Validate(schema *Schema, value cty.Value) bool
	Explain(schema *Schema, value cty.Value) (*Explanation, error)
	Humanize(ex *Explanation) (string, error)
}

// Explanation is the structural report of a validation failure.
type Explanation struct {
	Expected cty.Type
	Actual   cty.Type
	Problems []Problem
}

// Problem describes one mismatch at one location inside the offending value.
type Problem struct {
	Path     cty.Path
	Expected string
	Actual   string
	Detail   string
}

// CtyService implements Service on the cty type system. Conformance is
// conversion-based: a value conforms when convert.Convert can produce a value
// of the schema type from it, matching HCL's own assignment semantics.
type CtyService struct{}

// Validate reports whether value conforms to schema.
func (CtyService) Validate(schema *Schema, value cty.Value) bool {
	if schema == nil {
		return false
	}
	conv, err := convert.Convert(value, schema.Type)
	if err != nil {
		return false
	}
	for _, pc := range schema.Checks {
		target, err := pc.Path.Apply(conv)
		if err != nil {
			return false
		}
		if !pc.Check.Test(target) {
			return false
		}
	}
	return true
}

// Explain produces a structural report for a value that failed Validate.
// The report addresses tuple elements individually so a caller can see which
// argument position is at fault.
func (s CtyService) Explain(schema *Schema, value cty.Value) (*Explanation, error) {
	if schema == nil {
		return nil, errors.New("explain called with nil schema")
	}

	ex := &Explanation{Expected: schema.Type, Actual: value.Type()}

	conv, err := convert.Convert(value, schema.Type)
	if err != nil {
		if err := s.explainStructural(ex, schema.Type, value, err); err != nil {
			return nil, err
		}
		return ex, nil
	}

	for _, pc := range schema.Checks {
		target, aerr := pc.Path.Apply(conv)
		if aerr != nil {
			return nil, fmt.Errorf("cannot apply check path to value: %w", aerr)
		}
		if pc.Check.Test(target) {
			continue
		}
		rendered, rerr := renderValue(target)
		if rerr != nil {
			return nil, fmt.Errorf("cannot render offending value: %w", rerr)
		}
		ex.Problems = append(ex.Problems, Problem{
			Path:     pc.Path,
			Expected: pc.Check.Name,
			Actual:   target.Type().FriendlyName(),
			Detail:   fmt.Sprintf("value %s does not satisfy %q", rendered, pc.Check.Name),
		})
	}
	return ex, nil
}

// explainStructural fills ex.Problems for a conversion failure, recursing one
// level into tuples so argument positions get their own entries.
func (s CtyService) explainStructural(ex *Explanation, want cty.Type, value cty.Value, convErr error) error {
	if want.IsTupleType() && value.Type().IsTupleType() {
		wantElems := want.TupleElementTypes()
		gotElems := value.AsValueSlice()

		if len(gotElems) != len(wantElems) {
			ex.Problems = append(ex.Problems, Problem{
				Expected: want.FriendlyName(),
				Actual:   value.Type().FriendlyName(),
				Detail:   fmt.Sprintf("wrong number of arguments: want %d, got %d", len(wantElems), len(gotElems)),
			})
		}

		n := len(gotElems)
		if len(wantElems) < n {
			n = len(wantElems)
		}
		for i := 0; i < n; i++ {
			if _, cerr := convert.Convert(gotElems[i], wantElems[i]); cerr == nil {
				continue
			}
			rendered, rerr := renderValue(gotElems[i])
			if rerr != nil {
				return fmt.Errorf("cannot render offending value: %w", rerr)
			}
			ex.Problems = append(ex.Problems, Problem{
				Path:     cty.IndexIntPath(i),
				Expected: wantElems[i].FriendlyName(),
				Actual:   gotElems[i].Type().FriendlyName(),
				Detail:   fmt.Sprintf("value %s is not acceptable: %s", rendered, wantElems[i].FriendlyName()),
			})
		}
		if len(ex.Problems) > 0 {
			return nil
		}
	}

	rendered, rerr := renderValue(value)
	if rerr != nil {
		return fmt.Errorf("cannot render offending value: %w", rerr)
	}
	ex.Problems = append(ex.Problems, Problem{
		Expected: want.FriendlyName(),
		Actual:   value.Type().FriendlyName(),
		Detail:   fmt.Sprintf("value %s: %s", rendered, convErr),
	})
	return nil
}

// Humanize renders an Explanation as a short multi-line message, one line per
// problem.
func (CtyService) Humanize(ex *Explanation) (string, error) {
	if ex == nil {
		return "", errors.New("humanize called with nil explanation")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "expected %s, got %s", ex.Expected.FriendlyName(), ex.Actual.FriendlyName())
	for _, p := range ex.Problems {
		sb.WriteString("\n  - ")
		if len(p.Path) > 0 {
			fmt.Fprintf(&sb, "at %s: ", FormatPath(p.Path))
		}
		sb.WriteString(p.Detail)
	}
	return sb.String(), nil
}

// FormatPath renders a cty.Path in attribute/index notation, e.g. `[1]` or
// `.items[0]`.
func FormatPath(path cty.Path) string {
	var sb strings.Builder
	for _, step := range path {
		switch st := step.(type) {
		case cty.GetAttrStep:
			fmt.Fprintf(&sb, ".%s", st.Name)
		case cty.IndexStep:
			if st.Key.Type().Equals(cty.Number) {
				n, _ := st.Key.AsBigFloat().Int64()
				fmt.Fprintf(&sb, "[%d]", n)
			} else if st.Key.Type().Equals(cty.String) {
				fmt.Fprintf(&sb, "[%q]", st.Key.AsString())
			} else {
				sb.WriteString("[?]")
			}
		}
	}
	return sb.String()
}

func renderValue(v cty.Value) (string, error) {
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
