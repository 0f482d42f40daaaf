package corpus

import (
	"github.com/weavedata/weave/pkg/kernel"
	"github.com/weavedata/weave/pkg/operation"
	"github.com/weavedata/weave/pkg/signature"
)

func init() {
	mustRegister(operation.New(joinSQL, signature.MustNew("sql", "sql"),
		operation.WithName("join"),
		operation.WithOperandNames("left", "right")))
	mustRegister(operation.New(joinIterator, signature.MustNew("sql", "rows"),
		operation.WithName("join"),
		operation.WithOperandNames("left", "right")))
}

// joinSQL handles the case where both sides can be pushed down to SQL:
// it succeeds directly when the two datasets already carry the same
// payload (a stand-in for "the join key already matches in the
// database"), otherwise it retries under a mixed sql/rows profile to
// let joinIterator merge them in memory.
func joinSQL(ctx operation.Context, operands []any, params []any) (any, error) {
	left := operands[0].(*Dataset)
	right := operands[1].(*Dataset)
	if left.Payload == right.Payload {
		return "SQL", nil
	}
	return nil, kernel.WantRetry("sql", "rows")
}

// joinIterator merges the two sides by iterating in memory once a
// pure-SQL join is not available.
func joinIterator(ctx operation.Context, operands []any, params []any) (any, error) {
	return "ITERATOR", nil
}
