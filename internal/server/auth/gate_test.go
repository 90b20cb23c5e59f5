package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	calls int
	sub   string
	err   error
}

func (v *stubVerifier) Verify(string) (string, error) {
	v.calls++
	return v.sub, v.err
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"bearer abc", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Bearer a b", "", false},
		{"Bearer  abc", "", false},
		{"abc", "", false},
	}

	for _, tt := range tests {
		token, ok := ExtractBearer(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.token, token, "header %q", tt.header)
	}
}

func TestGate_MissingTokenSkipsVerifier(t *testing.T) {
	v := &stubVerifier{sub: "u1"}
	g := NewGate(v)

	for _, h := range []string{"", "Token x", "bearer x"} {
		d := g.Evaluate(h)
		assert.Equal(t, StateRejected, d.State)
		assert.Equal(t, ReasonTokenMissing, d.Reason)
		assert.False(t, d.Verified())
		assert.Empty(t, d.Identity.ID)
	}
	assert.Zero(t, v.calls)
}

func TestGate_InvalidToken(t *testing.T) {
	v := &stubVerifier{err: common.ErrInvalidToken}
	d := NewGate(v).Evaluate("Bearer nope")

	assert.Equal(t, StateRejected, d.State)
	assert.Equal(t, ReasonTokenInvalid, d.Reason)
	assert.Empty(t, d.Identity.ID)
	assert.Equal(t, 1, v.calls, "no retry")
}

func TestGate_Verified(t *testing.T) {
	v := &stubVerifier{sub: "u42"}
	d := NewGate(v).Evaluate("Bearer good")

	assert.True(t, d.Verified())
	assert.Equal(t, ReasonNone, d.Reason)
	assert.Equal(t, Identity{ID: "u42"}, d.Identity)
}

func TestGate_WithTokenService(t *testing.T) {
	s, clock := newTestService(t, "k", time.Minute)
	g := NewGate(s)

	tok, err := s.Issue("u1")
	require.NoError(t, err)

	d := g.Evaluate(common.BearerScheme + " " + tok)
	require.True(t, d.Verified())
	assert.Equal(t, "u1", d.Identity.ID)

	clock.now = t0.Add(time.Minute)
	d = g.Evaluate(common.BearerScheme + " " + tok)
	assert.Equal(t, StateRejected, d.State)
	assert.Equal(t, ReasonTokenInvalid, d.Reason)
}

func TestStateAndReasonStrings(t *testing.T) {
	assert.Equal(t, "no_token", StateNoToken.String())
	assert.Equal(t, "extracted", StateExtracted.String())
	assert.Equal(t, "verified", StateVerified.String())
	assert.Equal(t, "rejected", StateRejected.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.Equal(t, "token_missing", ReasonTokenMissing.String())
	assert.Equal(t, "token_invalid", ReasonTokenInvalid.String())
	assert.Equal(t, "none", ReasonNone.String())
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{ID: "u1"})
	id, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", id.ID)
}
