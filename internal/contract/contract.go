package contract

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fnguard/internal/schema"
)

// Param declares one positional argument of a contracted function.
type Param struct {
	Name        string
	Type        cty.Type
	Check       *schema.Check
	Description string
}

// Return declares the result of a contracted function.
type Return struct {
	Type        cty.Type
	Check       *schema.Check
	Description string
}

// Contract is the declared input/output shape of one function. The argument
// schema covers the full ordered argument tuple; the return schema covers the
// single result value.
type Contract struct {
	Description string
	Params      []Param
	Returns     Return

	args *schema.Schema
	ret  *schema.Schema
}

// New builds a Contract and derives its validation schemas.
func New(params []Param, ret Return) *Contract {
	c := &Contract{Params: params, Returns: ret}

	types := make([]cty.Type, len(params))
	var checks []schema.PathCheck
	for i, p := range params {
		types[i] = p.Type
		if p.Check != nil {
			checks = append(checks, schema.PathCheck{Path: cty.IndexIntPath(i), Check: p.Check})
		}
	}
	c.args = schema.New(cty.Tuple(types), checks...)

	var retChecks []schema.PathCheck
	if ret.Check != nil {
		retChecks = append(retChecks, schema.PathCheck{Check: ret.Check})
	}
	c.ret = schema.New(ret.Type, retChecks...)

	return c
}

// ArgsSchema returns the schema validating the ordered argument tuple.
func (c *Contract) ArgsSchema() *schema.Schema {
	return c.args
}

// RetSchema returns the schema validating the return value.
func (c *Contract) RetSchema() *schema.Schema {
	return c.ret
}
