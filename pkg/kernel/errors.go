package kernel

import (
	"github.com/weavedata/weave/pkg/errs"
)

// ArgumentError, OperationError, and RetryError are the three error
// kinds from spec §7, re-exported here so kernel callers can
// errors.As against kernel.ArgumentError etc. without also importing
// pkg/errs directly.
type (
	ArgumentError = errs.ArgumentError
	OperationError = errs.OperationError
	RetryError     = errs.RetryError
)

func newShapeError(arg any) error {
	return errs.NewOperationError("", "operand of type %T is neither a DataObject nor a slice of DataObjects", arg)
}

func newRetryError(name, format string, args ...any) error {
	return errs.NewRetryError(name, format, args...)
}
