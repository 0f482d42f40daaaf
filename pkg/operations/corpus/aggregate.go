package corpus

import (
	"github.com/weavedata/weave/pkg/kernel"
	"github.com/weavedata/weave/pkg/operation"
	"github.com/weavedata/weave/pkg/signature"
)

func init() {
	mustRegister(operation.New(aggregateSQL, signature.MustNew("sql"),
		operation.WithName("aggregate"),
		operation.WithOperandNames("dataset"),
		operation.WithParameterNames("fail")))
	mustRegister(operation.New(aggregateRows, signature.MustNew("rows"),
		operation.WithName("aggregate"),
		operation.WithOperandNames("dataset"),
		operation.WithParameterNames("fail")))
	mustRegister(operation.New(windowAggregate, signature.MustNew("sql"),
		operation.WithName("window_aggregate"),
		operation.WithOperandNames("dataset"),
		operation.WithParameterNames("fail")))
}

// aggregateSQL aggregates in place when the caller hasn't forced a
// fallback; fail simulates the database refusing to run the
// aggregation, triggering a retry under the "rows" representation.
func aggregateSQL(ctx operation.Context, operands []any, params []any) (any, error) {
	dataset := operands[0].(*Dataset)
	fail := params[0].(bool)
	if fail {
		return nil, kernel.WantRetry("rows")
	}
	dataset.Payload += "-SQL-"
	return dataset, nil
}

func aggregateRows(ctx operation.Context, operands []any, params []any) (any, error) {
	dataset := operands[0].(*Dataset)
	dataset.Payload += "-ROWS-"
	return dataset, nil
}

// windowAggregate wraps aggregate in a surrounding window, calling
// back into the same façade: the nested call's own retry cycle guard
// is independent of any retry already in progress around it.
func windowAggregate(ctx operation.Context, operands []any, params []any) (any, error) {
	dataset := operands[0].(*Dataset)
	fail := params[0]

	dataset.Payload += "START"
	if _, err := ctx.O("aggregate").Call([]any{dataset}, fail); err != nil {
		return nil, err
	}
	dataset.Payload += "END"
	return dataset, nil
}
