package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "run cronstorm auth")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "run cronstorm auth", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsGrammarError(nil))
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsCredentialMissingError(nil))
	assert.False(t, IsRemoteError(nil))
}

func TestTaxonomyMarks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"grammar", Mark(New("expected 'every'"), ErrGrammar), IsGrammarError},
		{"validation", Mark(New("bad unit"), ErrValidation), IsValidationError},
		{"credential", Wrap(ErrCredentialMissing, "auth"), IsCredentialMissingError},
		{"remote", Mark(New("401 unauthorized"), ErrRemote), IsRemoteError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(Wrap(tt.err, "outer")))
		})
	}
}

func TestMarkKeepsMessage(t *testing.T) {
	err := Mark(New("job not found"), ErrRemote)
	assert.Equal(t, "job not found", err.Error())
}

func TestTaxonomyIsDistinct(t *testing.T) {
	err := Mark(New("bad method"), ErrValidation)
	assert.False(t, IsGrammarError(err))
	assert.False(t, IsRemoteError(err))
}

func ExampleWrap() {
	baseErr := New("connection refused")
	err := Wrap(baseErr, "failed to reach scheduler")
	fmt.Println(err)
	// Output: failed to reach scheduler: connection refused
}
