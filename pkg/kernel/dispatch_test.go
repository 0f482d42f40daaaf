package kernel_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weavedata/weave/pkg/kernel"
	"github.com/weavedata/weave/pkg/operation"
)

func TestRunningDispatchesOnRepresentation(t *testing.T) {
	upperText := func(ctx operation.Context, operands []any, params []any) (any, error) {
		obj := operands[0].(*textObject)
		return strings.ToUpper(obj.Text()), nil
	}
	upperRows := func(ctx operation.Context, operands []any, params []any) (any, error) {
		obj := operands[0].(*textObject)
		return strings.ToUpper(string(obj.Rows())), nil
	}

	c := kernel.NewOperationContext()
	require.NoError(t, c.AddOperation(mustOp(t, upperText, []string{"text"}, operation.WithName("upper"))))
	require.NoError(t, c.AddOperation(mustOp(t, upperRows, []string{"rows"}, operation.WithName("upper"))))

	obj := &textObject{s: "windchimes"}
	result, err := c.O("upper").Call([]any{obj})
	require.NoError(t, err)
	assert.Equal(t, "WINDCHIMES", result)
}

func TestLookupAdditionalArgs(t *testing.T) {
	fn := func(ctx operation.Context, operands []any, params []any) (any, error) {
		return params[0], nil
	}

	c := kernel.NewOperationContext()
	require.NoError(t, c.AddOperation(mustOp(t, fn, []string{"rows"}, operation.WithName("func"))))

	obj := newDummy("", "rows")
	result, err := c.O("func").Call([]any{obj}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result)
}

func TestRetryChainPicksMostSpecificMatchFirst(t *testing.T) {
	joinSQL := func(ctx operation.Context, operands []any, params []any) (any, error) {
		l := operands[0].(*dummyObject)
		r := operands[1].(*dummyObject)
		if l.data == r.data {
			return "SQL", nil
		}
		return nil, kernel.WantRetry("sql", "rows")
	}
	joinIter := func(ctx operation.Context, operands []any, params []any) (any, error) {
		return "ITERATOR", nil
	}
	endless := func(ctx operation.Context, operands []any, params []any) (any, error) {
		return nil, kernel.WantRetry("sql", "sql")
	}

	local := newDummy("local", "sql", "rows")
	remote := newDummy("remote", "sql", "rows")

	c := kernel.NewOperationContext()
	require.NoError(t, c.AddOperation(mustOp(t, joinSQL, []string{"sql", "sql"}, operation.WithName("join"))))
	require.NoError(t, c.AddOperation(mustOp(t, joinIter, []string{"sql", "rows"}, operation.WithName("join"))))

	result, err := c.O("join").Call([]any{local, local})
	require.NoError(t, err)
	assert.Equal(t, "SQL", result)

	result, err = c.O("join").Call([]any{local, remote})
	require.NoError(t, err)
	assert.Equal(t, "ITERATOR", result)

	require.NoError(t, c.AddOperation(mustOp(t, endless, []string{"sql", "sql"}, operation.WithName("endless"))))
	_, err = c.O("endless").Call([]any{local, local})
	require.Error(t, err)
	var retryErr *kernel.RetryError
	assert.ErrorAs(t, err, &retryErr)
}

func TestAllowDenyRetryPolicy(t *testing.T) {
	swim := func(ctx operation.Context, operands []any, params []any) (any, error) {
		return nil, kernel.WantRetry("rows")
	}
	swimRows := func(ctx operation.Context, operands []any, params []any) (any, error) {
		obj := operands[0].(*dummyObject)
		obj.data = "good"
		return obj, nil
	}

	obj := newDummy("", "sql", "rows")

	c := kernel.NewOperationContext()
	require.NoError(t, c.AddOperation(mustOp(t, swim, []string{"sql"}, operation.WithName("swim"))))
	require.NoError(t, c.AddOperation(mustOp(t, swimRows, []string{"rows"}, operation.WithName("swim"))))

	result, err := c.Op("swim").Call([]any{obj})
	require.NoError(t, err)
	assert.Equal(t, "good", result.(*dummyObject).data)

	c.RetryDeny = []string{"swim"}
	c.RetryAllow = nil
	_, err = c.Op("swim").Call([]any{obj})
	require.Error(t, err)
	var retryErr *kernel.RetryError
	assert.ErrorAs(t, err, &retryErr)

	c.RetryDeny = nil
	c.RetryAllow = []string{"swim"}
	result, err = c.Op("swim").Call([]any{obj})
	require.NoError(t, err)
	assert.Equal(t, "good", result.(*dummyObject).data)

	c.RetryDeny = []string{"swim"}
	c.RetryAllow = []string{"swim"}
	_, err = c.Op("swim").Call([]any{obj})
	require.Error(t, err)
	assert.ErrorAs(t, err, &retryErr)
}

func TestRetryNestedWithinAnotherOperation(t *testing.T) {
	aggregateSQL := func(ctx operation.Context, operands []any, params []any) (any, error) {
		obj := operands[0].(*dummyObject)
		fail := params[0].(bool)
		if fail {
			return nil, kernel.WantRetry("rows")
		}
		obj.data += "-SQL-"
		return obj, nil
	}
	aggregateRows := func(ctx operation.Context, operands []any, params []any) (any, error) {
		obj := operands[0].(*dummyObject)
		obj.data += "-ROWS-"
		return obj, nil
	}
	windowAggregate := func(ctx operation.Context, operands []any, params []any) (any, error) {
		obj := operands[0].(*dummyObject)
		fail := params[0]
		obj.data += "START"
		if _, err := ctx.O("aggregate").Call([]any{obj}, fail); err != nil {
			return nil, err
		}
		obj.data += "END"
		return obj, nil
	}

	c := kernel.NewOperationContext()
	require.NoError(t, c.AddOperation(mustOp(t, aggregateSQL, []string{"sql"}, operation.WithName("aggregate"))))
	require.NoError(t, c.AddOperation(mustOp(t, aggregateRows, []string{"rows"}, operation.WithName("aggregate"))))
	require.NoError(t, c.AddOperation(mustOp(t, windowAggregate, []string{"sql"}, operation.WithName("window_aggregate"))))

	obj := newDummy("", "sql", "rows")
	_, err := c.O("window_aggregate").Call([]any{obj}, true)
	require.NoError(t, err)
	assert.Equal(t, "START-ROWS-END", obj.data)

	obj.data = ""
	_, err = c.O("window_aggregate").Call([]any{obj}, false)
	require.NoError(t, err)
	assert.Equal(t, "START-SQL-END", obj.data)
}
