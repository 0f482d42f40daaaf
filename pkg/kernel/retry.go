package kernel

import (
	"fmt"
	"strings"
)

// Retry is the control signal an operation Func returns (wrapped in
// its error return) to request re-dispatch under a different operand
// representation profile (spec §4.3 item 3: "RetryOperation(new_reps)").
//
// The source models this as a raised exception that the kernel
// consumes as control flow; Go has no separate exception channel, so
// this follows the sum-typed-return design note in spec §9: a Func
// signals retry by returning (nil, WantRetry(...)) instead of raising,
// and the kernel recognizes it with errors.As.
type Retry struct {
	// Profile is an explicit representation override, one token per
	// operand position, of length equal to the operand count.
	Profile []string
}

func (r *Retry) Error() string {
	return fmt.Sprintf("retry requested with profile %s", strings.Join(r.Profile, ","))
}

// WantRetry builds the error value a Func returns to request a retry
// under the given representation profile.
func WantRetry(profile ...string) error {
	return &Retry{Profile: append([]string(nil), profile...)}
}

// retryKey turns a profile into a comparable cycle-guard key. \x1f is
// a separator that cannot appear in a representation identifier, so
// two distinct profiles never collide.
func retryKey(profile []string) string {
	return strings.Join(profile, "\x1f")
}

// checkRetryPolicy enforces spec §4.3's per-name allow/deny rule: deny
// always wins when both lists name the same operation.
func (c *OperationContext) checkRetryPolicy(name string) error {
	for _, denied := range c.RetryDeny {
		if denied == name {
			return errRetryDenied(name)
		}
	}
	if len(c.RetryAllow) == 0 {
		return nil
	}
	for _, allowed := range c.RetryAllow {
		if allowed == name {
			return nil
		}
	}
	return errRetryDenied(name)
}

func errRetryDenied(name string) error {
	return newRetryError(name, "refused by retry_allow/retry_deny policy")
}
