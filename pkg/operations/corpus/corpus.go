// Package corpus is a set of example operations, self-registered
// against a shared default OperationContext the way the teacher's rule
// packages self-register against a global registry from their own
// init() functions.
package corpus

import (
	"github.com/weavedata/weave/pkg/kernel"
	"github.com/weavedata/weave/pkg/operation"
)

var defaultContext = kernel.NewOperationContext()

// Default returns the shared OperationContext every operation in this
// package registers itself against.
func Default() *kernel.OperationContext {
	return defaultContext
}

// mustRegister registers op against the default context, panicking on
// failure: a duplicate or malformed registration here is a build-time
// bug in this package, not a runtime condition callers can recover
// from.
func mustRegister(op operation.Operation, err error) {
	if err != nil {
		panic(err)
	}
	if addErr := defaultContext.AddOperation(op); addErr != nil {
		panic(addErr)
	}
}
