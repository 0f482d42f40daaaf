package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weavedata/weave/pkg/errs"
	"github.com/weavedata/weave/pkg/kernel"
	"github.com/weavedata/weave/pkg/operation"
	"github.com/weavedata/weave/pkg/signature"
)

func noop(operation.Context, []any, []any) (any, error) { return nil, nil }

func mustOp(t *testing.T, fn operation.Func, tokens []string, opts ...operation.Option) operation.Operation {
	t.Helper()
	sig, err := signature.New(tokens...)
	require.NoError(t, err)
	op, err := operation.New(fn, sig, opts...)
	require.NoError(t, err)
	return op
}

func TestRegister(t *testing.T) {
	c := kernel.NewOperationContext()
	assert.False(t, c.Has("func"))

	require.NoError(t, c.AddOperation(mustOp(t, noop, []string{"sql"}, operation.WithName("func"))))
	assert.True(t, c.Has("func"))

	require.NoError(t, c.AddOperation(mustOp(t, noop, []string{"sql"}, operation.WithName("other"))))
	assert.True(t, c.Has("other"))

	err := c.AddOperation(mustOp(t, noop, []string{"sql"}, operation.WithName("func")))
	require.Error(t, err)
	var argErr *errs.ArgumentError
	assert.ErrorAs(t, err, &argErr)
}

func TestOperationPrototype(t *testing.T) {
	join := func(ctx operation.Context, operands []any, params []any) (any, error) { return nil, nil }

	c := kernel.NewOperationContext()
	op := mustOp(t, join, []string{"rows", "rows"},
		operation.WithName("join"),
		operation.WithOperandNames("master", "detail"),
		operation.WithParameterNames("master_key", "detail_key"))
	require.NoError(t, c.AddOperation(op))

	proto, err := c.OperationPrototype("join")
	require.NoError(t, err)
	assert.Equal(t, 2, proto.OperandCount)
	assert.Equal(t, []string{"master", "detail"}, proto.Operands)
	assert.Equal(t, []string{"master_key", "detail_key"}, proto.Parameters)
}

func TestLookup(t *testing.T) {
	unary := func(ctx operation.Context, operands []any, params []any) (any, error) { return "unary", nil }
	fallback := func(ctx operation.Context, operands []any, params []any) (any, error) { return "default", nil }

	c := kernel.NewOperationContext()
	require.NoError(t, c.AddOperation(mustOp(t, unary, []string{"sql"}, operation.WithName("unary"))))
	require.NoError(t, c.AddOperation(mustOp(t, fallback, []string{"*"}, operation.WithName("unary"))))

	objSQL := newDummy("", "sql")
	objRows := newDummy("", "rows")

	match, err := c.LookupOperation("unary", objSQL)
	require.NoError(t, err)
	result, _ := match.Function()(nil, nil, nil)
	assert.Equal(t, "unary", result)

	match, err = c.LookupOperation("unary", objRows)
	require.NoError(t, err)
	result, _ = match.Function()(nil, nil, nil)
	assert.Equal(t, "default", result)

	_, err = c.LookupOperation("foo", objSQL)
	var opErr *errs.OperationError
	assert.ErrorAs(t, err, &opErr)

	_, err = c.LookupOperation("unary", objSQL, objSQL)
	assert.ErrorAs(t, err, &opErr)
}

func TestDelete(t *testing.T) {
	unary := func(ctx operation.Context, operands []any, params []any) (any, error) { return "unary", nil }
	fallback := func(ctx operation.Context, operands []any, params []any) (any, error) { return "default", nil }

	c := kernel.NewOperationContext()
	require.NoError(t, c.AddOperation(mustOp(t, unary, []string{"rows"}, operation.WithName("unary"))))
	require.NoError(t, c.AddOperation(mustOp(t, fallback, []string{"*"}, operation.WithName("unary"))))

	obj := newDummy("", "rows")

	match, err := c.LookupOperation("unary", obj)
	require.NoError(t, err)
	result, _ := match.Function()(nil, nil, nil)
	assert.Equal(t, "unary", result)

	require.NoError(t, c.RemoveOperationSignature("unary", "rows"))

	match, err = c.LookupOperation("unary", obj)
	require.NoError(t, err)
	result, _ = match.Function()(nil, nil, nil)
	assert.Equal(t, "default", result)

	require.NoError(t, c.RemoveOperation("unary"))
	_, err = c.LookupOperation("unary", obj)
	var opErr *errs.OperationError
	assert.ErrorAs(t, err, &opErr)
}

func TestPriorityIsIndependentOfRegistrationOrder(t *testing.T) {
	fsql := func(ctx operation.Context, operands []any, params []any) (any, error) { return "sql", nil }
	frows := func(ctx operation.Context, operands []any, params []any) (any, error) { return "rows", nil }

	objSQL := newDummy("", "sql", "rows")
	objRows := newDummy("", "rows", "sql")

	run := func(registerSQLFirst bool) {
		c := kernel.NewOperationContext()
		sqlOp := mustOp(t, fsql, []string{"sql"}, operation.WithName("meditate"))
		rowsOp := mustOp(t, frows, []string{"rows"}, operation.WithName("meditate"))
		if registerSQLFirst {
			require.NoError(t, c.AddOperation(sqlOp))
			require.NoError(t, c.AddOperation(rowsOp))
		} else {
			require.NoError(t, c.AddOperation(rowsOp))
			require.NoError(t, c.AddOperation(sqlOp))
		}

		match, err := c.LookupOperation("meditate", objSQL)
		require.NoError(t, err)
		result, _ := match.Function()(nil, nil, nil)
		assert.Equal(t, "sql", result)

		match, err = c.LookupOperation("meditate", objRows)
		require.NoError(t, err)
		result, _ = match.Function()(nil, nil, nil)
		assert.Equal(t, "rows", result)
	}

	run(true)
	run(false)
}

func TestConcreteSignatureAlwaysOutranksWildcardRegardlessOfScore(t *testing.T) {
	fConcrete := func(ctx operation.Context, operands []any, params []any) (any, error) { return "concrete", nil }
	fWildcard := func(ctx operation.Context, operands []any, params []any) (any, error) { return "wildcard", nil }

	c := kernel.NewOperationContext()
	require.NoError(t, c.AddOperation(mustOp(t, fConcrete, []string{"x", "s"}, operation.WithName("combo"))))
	require.NoError(t, c.AddOperation(mustOp(t, fWildcard, []string{"*", "p"}, operation.WithName("combo"))))

	obj0 := newDummy("", "x")
	obj1 := newDummy("", "p", "q", "r", "s", "z")

	match, err := c.LookupOperation("combo", obj0, obj1)
	require.NoError(t, err)
	result, _ := match.Function()(nil, nil, nil)
	assert.Equal(t, "concrete", result)
}
