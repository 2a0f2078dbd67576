package domainerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategories(t *testing.T) {
	t.Parallel()

	errInvalid := Validation("rate must be positive")
	errMissing := NotFound("post not found")
	errClash := Conflict("adjacent allocation")

	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		conflict   bool
	}{
		{name: "validation", err: errInvalid, validation: true},
		{name: "wrapped validation", err: fmt.Errorf("contract: %w", errInvalid), validation: true},
		{name: "not found", err: errMissing, notFound: true},
		{name: "conflict", err: errClash, conflict: true},
		{name: "plain", err: errors.New("boom")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.validation, IsValidation(tc.err))
			assert.Equal(t, tc.notFound, IsNotFound(tc.err))
			assert.Equal(t, tc.conflict, IsConflict(tc.err))
			assert.Equal(t, tc.validation || tc.conflict, IsClientError(tc.err))
			assert.False(t, IsIntegrity(tc.err))
		})
	}
}

func TestSentinelIdentity(t *testing.T) {
	t.Parallel()

	first := Validation("same text")
	second := Validation("same text")

	assert.ErrorIs(t, fmt.Errorf("wrap: %w", first), first)
	assert.NotErrorIs(t, first, second)
	assert.Equal(t, "same text", first.Error())
}

func TestValidationf(t *testing.T) {
	t.Parallel()

	err := Validationf("expected %d hours, got %d", 12, 8)
	assert.EqualError(t, err, "expected 12 hours, got 8")
	assert.True(t, IsValidation(err))
}
