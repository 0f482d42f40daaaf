// Package kernel implements the OperationContext: the registry,
// best-match dispatch, retry protocol, and call façade described in
// spec §3-§5 ("Registry & Dispatch" and "Call Façade").
package kernel

import (
	"sort"

	"github.com/weavedata/weave/pkg/errs"
	"github.com/weavedata/weave/pkg/operation"
	"github.com/weavedata/weave/pkg/signature"
)

// DefaultMaxRetries is the retry cap a fresh OperationContext starts
// with (spec §9 open question, resolved in SPEC_FULL.md §6): the
// cycle guard is the primary protection, this is defense in depth for
// chains that never repeat a profile.
const DefaultMaxRetries = 10

// bucketEntry is one concrete signature registered under a given
// (name, prototype) bucket, tagged with its global registration
// sequence so OperationPrototype can deterministically pick the
// first-ever registered Operation for a name.
type bucketEntry struct {
	seq int64
	sig signature.Signature
	op  operation.Operation
}

// bucket holds every concrete signature registered under one
// (name, prototype) pair, in registration order (spec §3:
// "a mapping from prototype to a list of (signature, Operation)
// entries, preserving registration order").
type bucket struct {
	proto   signature.Signature
	entries []bucketEntry
}

// nameEntry is everything registered under one operation name.
type nameEntry struct {
	buckets map[string]*bucket
}

// OperationContext holds the registry, the retry policy, and the two
// equivalent call façades (spec §3 "OperationContext"). The zero value
// is not usable; build one with NewOperationContext.
//
// A context is not safe for concurrent mutation (spec §5): callers
// that register, remove, or dispatch from multiple goroutines over the
// same context must supply their own mutual exclusion.
type OperationContext struct {
	operations map[string]*nameEntry
	seq        int64

	// RetryAllow and RetryDeny are operation-name allow/deny lists for
	// the retry policy (spec §4.3). Either may be mutated directly
	// between calls, matching the source's plain attribute assignment.
	RetryAllow []string
	RetryDeny  []string

	// MaxRetries bounds the number of retries per top-level Call,
	// independent of the cycle guard.
	MaxRetries int

	// Logger receives dispatch/retry trace lines. Defaults to a
	// no-op logger; see pkg/output for a colored console Logger.
	Logger Logger
}

// NewOperationContext returns an empty, ready-to-use context.
func NewOperationContext() *OperationContext {
	return &OperationContext{
		operations: make(map[string]*nameEntry),
		MaxRetries: DefaultMaxRetries,
		Logger:     discardLogger{},
	}
}

// Has reports whether any Operation is registered under name.
func (c *OperationContext) Has(name string) bool {
	_, ok := c.operations[name]
	return ok
}

// Names returns every registered operation name, sorted.
func (c *OperationContext) Names() []string {
	names := make([]string, 0, len(c.operations))
	for n := range c.operations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AddOperation registers op (spec §4.3 "add_operation"). It is an
// *errs.ArgumentError for an Operation with the same (name, signature)
// to already be registered.
func (c *OperationContext) AddOperation(op operation.Operation) error {
	proto := op.Signature().AsPrototype()

	entry, ok := c.operations[op.Name()]
	if !ok {
		entry = &nameEntry{buckets: make(map[string]*bucket)}
		c.operations[op.Name()] = entry
	}

	bkt, ok := entry.buckets[proto.Key()]
	if !ok {
		bkt = &bucket{proto: proto}
		entry.buckets[proto.Key()] = bkt
	}

	for _, e := range bkt.entries {
		if e.sig.Equal(op.Signature()) {
			return errs.NewArgumentError(
				"duplicate operation "+op.Name()+op.Signature().String(), nil)
		}
	}

	c.seq++
	bkt.entries = append(bkt.entries, bucketEntry{seq: c.seq, sig: op.Signature(), op: op})
	return nil
}

// RemoveOperation deletes every Operation registered under name (spec
// §4.3 "remove_operation" without a signature). It is an
// *errs.ArgumentError for name to be unknown.
func (c *OperationContext) RemoveOperation(name string) error {
	if _, ok := c.operations[name]; !ok {
		return errs.NewArgumentError("unknown operation: "+name, nil)
	}
	delete(c.operations, name)
	return nil
}

// RemoveOperationSignature deletes the single entry registered under
// name with exactly this signature (spec §4.3 "remove_operation" with
// a signature). It is an *errs.ArgumentError for no such entry to
// exist.
func (c *OperationContext) RemoveOperationSignature(name string, tokens ...string) error {
	sig, err := signature.New(tokens...)
	if err != nil {
		return errs.NewArgumentError("remove_operation: invalid signature", err)
	}

	entry, ok := c.operations[name]
	if !ok {
		return errs.NewArgumentError("unknown operation: "+name, nil)
	}

	proto := sig.AsPrototype()
	bkt, ok := entry.buckets[proto.Key()]
	if !ok {
		return errs.NewArgumentError("no such signature registered for "+name, nil)
	}

	for i, e := range bkt.entries {
		if e.sig.Equal(sig) {
			bkt.entries = append(bkt.entries[:i:i], bkt.entries[i+1:]...)
			if len(bkt.entries) == 0 {
				delete(entry.buckets, proto.Key())
			}
			if len(entry.buckets) == 0 {
				delete(c.operations, name)
			}
			return nil
		}
	}
	return errs.NewArgumentError("no such signature registered for "+name, nil)
}

// OperationPrototype returns the operand/parameter/arity view of a
// representative registered operation for name: the first one ever
// registered, by global sequence (spec §4.3: "The choice is
// deterministic (first registered)").
func (c *OperationContext) OperationPrototype(name string) (operation.OperationPrototype, error) {
	entry, ok := c.operations[name]
	if !ok {
		return operation.OperationPrototype{}, errs.NewOperationError(name, "no such operation")
	}

	var first *bucketEntry
	for _, bkt := range entry.buckets {
		for i := range bkt.entries {
			e := &bkt.entries[i]
			if first == nil || e.seq < first.seq {
				first = e
			}
		}
	}
	if first == nil {
		return operation.OperationPrototype{}, errs.NewOperationError(name, "no such operation")
	}
	return operation.PrototypeOf(first.op), nil
}
