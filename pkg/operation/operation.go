// Package operation implements the bound (callable, name, signature)
// triple that the kernel registry dispatches to (spec §4.2).
package operation

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/weavedata/weave/pkg/errs"
	"github.com/weavedata/weave/pkg/signature"
)

// Context is the capability an Operation's function gets back, letting
// it invoke further operations through the same call façade (spec §4.3
// "nested" scenario, §4.5 call façade). It is satisfied by
// *kernel.OperationContext; living here (rather than in pkg/kernel)
// lets Func reference it without an import cycle.
type Context interface {
	O(name string) Caller
	Op(name string) Caller
}

// Caller is a call bound to one operation name, ready to be invoked
// with operands and trailing parameters.
type Caller interface {
	Call(operands []any, params ...any) (any, error)
}

// Func is the shape every registered operation's implementation must
// have. operands holds exactly signature.Arity() values, one per
// operand position; params holds the trailing, non-dispatched scalar
// arguments (spec §3: "operand_count" / "parameters").
type Func func(ctx Context, operands []any, params []any) (any, error)

// Operation is the bound (function, name, signature) triple (spec §3).
type Operation struct {
	fn         Func
	name       string
	signature  signature.Signature
	operands   []string
	parameters []string
}

// Option configures a construction of Operation via New.
type Option func(*config)

type config struct {
	name       string
	operands   []string
	parameters []string
}

// WithName overrides the name derived from the function's own
// identity (spec §4.2: "name: explicit or derived from the callable's
// own name").
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithOperandNames supplies the operand formal names, discovered at
// construction time in the source by inspecting the callable's
// parameter list (spec §3 "operands ... discovered by introspection");
// Go has no such runtime introspection over named parameters, so the
// design note in spec §9 applies and the names are supplied
// explicitly. Omitting this leaves operands unnamed (an
// OperationPrototype built from such an Operation reports empty
// operand names).
func WithOperandNames(names ...string) Option {
	return func(c *config) { c.operands = names }
}

// WithParameterNames supplies the trailing parameter formal names.
func WithParameterNames(names ...string) Option {
	return func(c *config) { c.parameters = names }
}

// New builds an Operation from a function and a Signature. The
// signature's arity fixes operand_count (spec §3 invariant:
// "signature.arity == operand_count"); if WithOperandNames supplies a
// different number of names, construction fails with an
// *errs.ArgumentError.
func New(fn Func, sig signature.Signature, opts ...Option) (Operation, error) {
	if fn == nil {
		return Operation{}, errs.NewArgumentError("operation: function must not be nil", nil)
	}

	var c config
	for _, opt := range opts {
		opt(&c)
	}

	if c.operands != nil && len(c.operands) != sig.Arity() {
		return Operation{}, errs.NewArgumentError(
			"operation: declared operand names do not match signature arity", nil)
	}

	name := c.name
	if name == "" {
		name = deriveName(fn)
	}
	if name == "" {
		return Operation{}, errs.NewArgumentError("operation: name could not be derived, pass WithName", nil)
	}

	return Operation{
		fn:         fn,
		name:       name,
		signature:  sig,
		operands:   append([]string(nil), c.operands...),
		parameters: append([]string(nil), c.parameters...),
	}, nil
}

// Of is the decorator/factory form of New (spec §4.2: "operation(*tokens,
// name=...)"), taking a raw token list instead of a pre-built Signature.
func Of(tokens []string, fn Func, opts ...Option) (Operation, error) {
	sig, err := signature.Of(tokens)
	if err != nil {
		return Operation{}, errs.NewArgumentError("operation: invalid signature tokens", err)
	}
	return New(fn, sig, opts...)
}

// Function returns the wrapped implementation.
func (op Operation) Function() Func { return op.fn }

// Name returns the operation's registered name.
func (op Operation) Name() string { return op.name }

// Signature returns the operand signature.
func (op Operation) Signature() signature.Signature { return op.signature }

// OperandCount is the signature's arity (spec §3: operand_count).
func (op Operation) OperandCount() int { return op.signature.Arity() }

// Operands returns the declared operand formal names, in order.
func (op Operation) Operands() []string { return append([]string(nil), op.operands...) }

// Parameters returns the declared trailing parameter names, in order.
func (op Operation) Parameters() []string { return append([]string(nil), op.parameters...) }

// Equal reports whether two Operations share function identity, name,
// and signature (spec §3: "Two Operations are equal iff ...").
func (op Operation) Equal(other Operation) bool {
	return sameFunc(op.fn, other.fn) && op.name == other.name && op.signature.Equal(other.signature)
}

// IsOperation reports whether x is a registered Operation, mirroring
// the source's is_operation predicate. Kept as a free function (not a
// method) since its whole point in the source is to distinguish an
// Operation value from an arbitrary callable at a call site that only
// has an `any`.
func IsOperation(x any) bool {
	_, ok := x.(Operation)
	return ok
}

func sameFunc(a, b Func) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// deriveName mirrors introspecting a callable's own __name__: Go
// exposes a function value's defining symbol through its program
// counter, which is the closest runtime equivalent.
func deriveName(fn Func) string {
	full := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if full == "" {
		return ""
	}
	// full looks like "path/to/pkg.funcName" or "...pkg.glob..func1".
	if idx := strings.LastIndex(full, "."); idx >= 0 {
		full = full[idx+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	if full == "" || strings.Contains(full, "func") && isAnonymous(full) {
		return ""
	}
	return full
}

// isAnonymous reports whether a derived name looks like Go's
// auto-generated closure name (e.g. "func1", "glob..func3").
func isAnonymous(name string) bool {
	trimmed := strings.TrimPrefix(name, "func")
	if trimmed == name {
		return false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
