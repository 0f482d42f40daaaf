package kernel

import (
	"errors"

	"github.com/google/uuid"

	"github.com/weavedata/weave/pkg/errs"
	"github.com/weavedata/weave/pkg/operation"
	"github.com/weavedata/weave/pkg/signature"
)

// LookupOperation resolves the best-matching Operation for name
// against concrete operands, without executing it (spec §4.3
// "lookup_operation").
func (c *OperationContext) LookupOperation(name string, operands ...any) (operation.Operation, error) {
	shape, err := actualShape(operands)
	if err != nil {
		return operation.Operation{}, err
	}
	sets, err := representationSets(operands)
	if err != nil {
		return operation.Operation{}, err
	}
	return c.lookup(name, shape, sets)
}

// actualShape computes the actual signature shape of a call (spec
// §4.3 step 2): for each operand, whether it is a list of objects
// (-> "*[]") or a single object (-> "*").
func actualShape(operands []any) (signature.Signature, error) {
	tokens := make([]string, len(operands))
	for i, o := range operands {
		isList, ok := shapeOf(o)
		if !ok {
			return signature.Signature{}, newShapeError(o)
		}
		if isList {
			tokens[i] = "*[]"
		} else {
			tokens[i] = "*"
		}
	}
	return signature.New(tokens...)
}

func representationSets(operands []any) ([][]string, error) {
	sets := make([][]string, len(operands))
	for i, o := range operands {
		reps, err := ExtractSignatures(o)
		if err != nil {
			return nil, err
		}
		sets[i] = reps
	}
	return sets, nil
}

// overrideSets turns a retry's explicit representation profile into
// per-operand representation sets, preserving the call's original
// list-ness at each position (spec §4.3 item 3: "bypassing
// representations() for the retry").
func overrideSets(shape signature.Signature, profile []string) [][]string {
	sets := make([][]string, len(profile))
	for i, tok := range profile {
		if shape.At(i).IsList() {
			sets[i] = []string{tok + "[]"}
		} else {
			sets[i] = []string{tok}
		}
	}
	return sets
}

// lookup is the bucket scan described in spec §4.3 steps 3-6: select
// the bucket keyed by shape, then among its qualifying candidates
// prefer any fully concrete signature over every wildcard-bearing one
// (step 5), and only within that tier break ties by score (step 6:
// ties are broken using the representation order of the object
// itself, not registration order).
func (c *OperationContext) lookup(name string, shape signature.Signature, sets [][]string) (operation.Operation, error) {
	entry, ok := c.operations[name]
	if !ok {
		return operation.Operation{}, errs.NewOperationError(name, "no such operation")
	}

	bkt, ok := entry.buckets[shape.Key()]
	if !ok {
		return operation.Operation{}, errs.NewOperationError(
			name, "no operation registered for arity/shape %s", shape)
	}

	// Tier 1: fully concrete signatures (no wildcard at any position)
	// always win over any wildcard-bearing signature, regardless of
	// score, per spec §4.3 step 5. Only within a tier does the
	// preference-index sum break ties.
	var bestConcrete, bestWildcard *bucketEntry
	bestConcreteScore, bestWildcardScore := 0, 0
	for i := range bkt.entries {
		e := &bkt.entries[i]
		s, ok := score(e.sig, sets)
		if !ok {
			continue
		}
		if hasWildcard(e.sig) {
			if bestWildcard == nil || s < bestWildcardScore {
				bestWildcard, bestWildcardScore = e, s
			}
			continue
		}
		if bestConcrete == nil || s < bestConcreteScore {
			bestConcrete, bestConcreteScore = e, s
		}
	}

	best := bestConcrete
	if best == nil {
		best = bestWildcard
	}
	if best == nil {
		return operation.Operation{}, errs.NewOperationError(name, "no registered signature matches the supplied representations")
	}
	return best.op, nil
}

// hasWildcard reports whether sig has a wildcard token at any position.
func hasWildcard(sig signature.Signature) bool {
	for i := 0; i < sig.Arity(); i++ {
		if sig.At(i).IsWildcard() {
			return true
		}
	}
	return false
}

// score ranks sig against the operand representation sets (lower is
// better): a concrete token contributes the index of its match within
// the operand's own preference-ordered representation list, so a match
// on an object's most-preferred representation outranks a match
// further down the list; a wildcard token contributes the length of
// that list plus the index of its match. This only breaks ties within a wildcard-presence tier (see
// lookup); it never by itself lets a wildcard-bearing signature beat a
// fully concrete one. ok is false if sig does not qualify against sets
// at all.
func score(sig signature.Signature, sets [][]string) (int, bool) {
	total := 0
	for i := 0; i < sig.Arity(); i++ {
		idx, ok := matchIndex(sig.At(i), sets[i])
		if !ok {
			return 0, false
		}
		total += idx
	}
	return total, true
}

func matchIndex(tok signature.Token, reps []string) (int, bool) {
	matched := -1
	for i, rep := range reps {
		repTok, err := signature.ParseToken(rep)
		if err != nil {
			continue
		}
		if tok.Matches(repTok) {
			matched = i
			break
		}
	}
	if matched < 0 {
		return 0, false
	}
	if tok.IsWildcard() {
		return len(reps) + matched, true
	}
	return matched, true
}

// Call resolves and executes name against operands and params,
// honoring the retry protocol of spec §4.3: a Func may request
// re-dispatch by returning a *Retry error; Call enforces the
// allow/deny policy, the per-call cycle guard, and the retry cap
// before honoring it.
func (c *OperationContext) Call(name string, operands []any, params ...any) (any, error) {
	callID := uuid.NewString()
	c.Logger.Tracef("dispatch start name=%s call=%s operands=%d", name, callID, len(operands))

	shape, err := actualShape(operands)
	if err != nil {
		return nil, err
	}
	sets, err := representationSets(operands)
	if err != nil {
		return nil, err
	}

	tried := make(map[string]struct{})
	retries := 0

	for {
		op, err := c.lookup(name, shape, sets)
		if err != nil {
			return nil, err
		}

		c.Logger.Tracef("dispatch resolved name=%s call=%s signature=%s", name, callID, op.Signature())
		result, callErr := op.Function()(c, operands, params)
		if callErr == nil {
			return result, nil
		}

		var retrySignal *Retry
		if !errors.As(callErr, &retrySignal) {
			return nil, callErr
		}

		if err := c.checkRetryPolicy(name); err != nil {
			return nil, err
		}
		if len(retrySignal.Profile) != shape.Arity() {
			return nil, errs.NewRetryError(name,
				"retry profile length %d does not match operand count %d",
				len(retrySignal.Profile), shape.Arity())
		}

		key := retryKey(retrySignal.Profile)
		if _, seen := tried[key]; seen {
			return nil, errs.NewRetryError(name, "retry loop detected for profile %v", retrySignal.Profile)
		}
		tried[key] = struct{}{}

		retries++
		if retries > c.maxRetries() {
			return nil, errs.NewRetryError(name, "exceeded max retries (%d)", c.maxRetries())
		}

		c.Logger.Tracef("dispatch retry name=%s call=%s profile=%v attempt=%d", name, callID, retrySignal.Profile, retries)
		sets = overrideSets(shape, retrySignal.Profile)
	}
}

func (c *OperationContext) maxRetries() int {
	if c.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return c.MaxRetries
}
