package auth

import (
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// State is a step of the gate: NoToken -> Extracted -> Verified | Rejected.
type State int

const (
	StateNoToken State = iota
	StateExtracted
	StateVerified
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateNoToken:
		return "no_token"
	case StateExtracted:
		return "extracted"
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Reason explains a rejection.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonTokenMissing
	ReasonTokenInvalid
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTokenMissing:
		return "token_missing"
	case ReasonTokenInvalid:
		return "token_invalid"
	default:
		return "unknown"
	}
}

// Identity is the verified claim of who sent the request.
type Identity struct {
	ID string
}

// Decision is the terminal outcome of Gate.Evaluate. Identity is set only
// when State is StateVerified.
type Decision struct {
	State    State
	Identity Identity
	Reason   Reason
}

// Verified reports whether the request may proceed.
func (d Decision) Verified() bool {
	return d.State == StateVerified
}

// Verifier checks a raw token and returns its subject.
type Verifier interface {
	Verify(token string) (string, error)
}

// Gate turns an Authorization header into a Decision. It never retries.
type Gate struct {
	verifier Verifier
}

func NewGate(v Verifier) *Gate {
	return &Gate{verifier: v}
}

// ExtractBearer returns the token from a "Bearer <token>" header value.
// The scheme is case-sensitive and exactly one token must follow it.
func ExtractBearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != common.BearerScheme {
		return "", false
	}
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// Evaluate runs the gate to completion for one request. A missing or
// misshapen header goes straight from NoToken to Rejected; an extracted
// token ends Verified or Rejected depending on the verifier.
func (g *Gate) Evaluate(header string) Decision {
	token, ok := ExtractBearer(header)
	if !ok {
		return Decision{State: StateRejected, Reason: ReasonTokenMissing}
	}

	subject, err := g.verifier.Verify(token)
	if err != nil {
		return Decision{State: StateRejected, Reason: ReasonTokenInvalid}
	}
	return Decision{State: StateVerified, Identity: Identity{ID: subject}}
}
