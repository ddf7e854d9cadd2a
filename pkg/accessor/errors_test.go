package accessor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableOnlyInterrupted(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"interrupted", NewError(KindInterrupted, "read", "/a", errors.New("reset")), true},
		{"not_found", NewError(KindNotFound, "read", "/a", errors.New("missing")), false},
		{"permission_denied", NewError(KindPermissionDenied, "read", "/a", nil), false},
		{"other", NewError(KindOther, "read", "/a", nil), false},
		{"plain_error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.retryable, IsRetryable(tc.err))
		})
	}
}

func TestErrorWrapsSource(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewError(KindInterrupted, "read", "/a/b", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "read")
	assert.Contains(t, err.Error(), "/a/b")
	assert.Contains(t, err.Error(), "Interrupted")
}

func TestErrorWrappedThroughFmt(t *testing.T) {
	inner := NewError(KindNotFound, "stat", "/missing", errors.New("404"))
	wrapped := fmt.Errorf("layer: %w", inner)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.False(t, IsRetryable(wrapped))
}

func TestNewNotSupportedErrorIsOtherKind(t *testing.T) {
	err := NewNotSupportedError("presign", "/x")
	assert.Equal(t, KindOther, err.Kind)
	assert.Contains(t, err.Error(), "not supported")
}

func TestNewValidationErrorIsInvalidInput(t *testing.T) {
	err := NewValidationError("create", "dir/", "is a directory")
	assert.Equal(t, KindInvalidInput, err.Kind)
	assert.Nil(t, err.Source)
}
