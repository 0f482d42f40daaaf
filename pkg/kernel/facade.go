package kernel

import "github.com/weavedata/weave/pkg/operation"

var _ operation.Context = (*OperationContext)(nil)

// O and Op are the two equivalent call façades of spec §4.5: attribute
// access on the context's `o`/`op` in the source yields a callable
// bound to (ctx, name); here, OperationContext.O(name) /
// OperationContext.Op(name) return a operation.Caller bound the same
// way. Looking a name up never fails — only calling it can, per spec
// §4.5 ("Missing names fail with operation error only at call time").
type boundCaller struct {
	ctx  *OperationContext
	name string
}

func (b *boundCaller) Call(operands []any, params ...any) (any, error) {
	return b.ctx.Call(b.name, operands, params...)
}

// O returns a callable bound to (ctx, name).
func (c *OperationContext) O(name string) operation.Caller {
	return &boundCaller{ctx: c, name: name}
}

// Op is semantically identical to O (spec §4.5: "Two attribute-access
// entry points equivalent in effect").
func (c *OperationContext) Op(name string) operation.Caller {
	return c.O(name)
}
