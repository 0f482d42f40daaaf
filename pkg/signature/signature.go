package signature

import "strings"

// Signature is a fixed-length ordered sequence of representation
// tokens describing one candidate operand profile.
type Signature struct {
	tokens []Token
}

// New parses a sequence of token strings into a Signature. An empty
// sequence is legal (a 0-arity operation).
func New(raw ...string) (Signature, error) {
	tokens := make([]Token, len(raw))
	for i, r := range raw {
		tok, err := ParseToken(r)
		if err != nil {
			return Signature{}, err
		}
		tokens[i] = tok
	}
	return Signature{tokens: tokens}, nil
}

// MustNew is New but panics on a malformed token; intended for
// package-init-time literal signatures where the token list is a
// compile-time constant.
func MustNew(raw ...string) Signature {
	sig, err := New(raw...)
	if err != nil {
		panic(err)
	}
	return sig
}

// Of coerces a plain token slice into a Signature, matching the
// source's acceptance of `Operation(func, ["rows"])` as a convenience
// for `Operation(func, Signature("rows"))` (spec §9 open question).
func Of(raw []string) (Signature, error) {
	return New(raw...)
}

// Arity is the number of operand positions in the signature.
func (s Signature) Arity() int {
	return len(s.tokens)
}

// Tokens returns the signature's tokens in order. The returned slice
// is a copy; callers may not mutate a Signature's internals.
func (s Signature) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// At returns the token at the given operand position.
func (s Signature) At(i int) Token {
	return s.tokens[i]
}

// AsPrototype returns a signature of the same arity with every token's
// bare identifier replaced by the wildcard, preserving list suffixes.
func (s Signature) AsPrototype() Signature {
	out := make([]Token, len(s.tokens))
	for i, t := range s.tokens {
		out[i] = t.AsPrototype()
	}
	return Signature{tokens: out}
}

// Matches reports whether this signature accepts a concrete operand
// profile of the same arity, matching pointwise (spec §4.1).
func (s Signature) Matches(profile Signature) bool {
	if len(s.tokens) != len(profile.tokens) {
		return false
	}
	for i, t := range s.tokens {
		if !t.Matches(profile.tokens[i]) {
			return false
		}
	}
	return true
}

// MatchesTokens is Matches against a raw token-string profile.
func (s Signature) MatchesTokens(profile ...string) (bool, error) {
	other, err := New(profile...)
	if err != nil {
		return false, err
	}
	return s.Matches(other), nil
}

// HasWildcardAt reports whether operand position i is the wildcard,
// with or without the list suffix.
func (s Signature) HasWildcardAt(i int) bool {
	return s.tokens[i].IsWildcard()
}

// Equal is pointwise equality against another Signature.
func (s Signature) Equal(other Signature) bool {
	if len(s.tokens) != len(other.tokens) {
		return false
	}
	for i, t := range s.tokens {
		if !t.Equal(other.tokens[i]) {
			return false
		}
	}
	return true
}

// EqualStrings compares a Signature to a plain ordered sequence of
// token strings, matching the source's `sig == ["a", "b", "c"]`
// convenience (spec §4.1 / test_comparison).
func (s Signature) EqualStrings(raw []string) bool {
	if len(s.tokens) != len(raw) {
		return false
	}
	for i, t := range s.tokens {
		if t.String() != raw[i] {
			return false
		}
	}
	return true
}

// String renders the signature as "(tok1, tok2, ...)".
func (s Signature) String() string {
	parts := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Key returns a string uniquely identifying this signature's token
// sequence, suitable for use as a map key (registry bucket lookups use
// a Signature's prototype Key to find its bucket).
func (s Signature) Key() string {
	return s.String()
}
