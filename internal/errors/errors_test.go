package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKind(t *testing.T) {
	err := NotFound("profile", nil)
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindUpstream))
}

func TestIsUnwrapsWrappedAppError(t *testing.T) {
	cause := Upstream("qdrant query failed", errors.New("dial tcp: timeout"))
	wrapped := fmt.Errorf("dfre: retrieve candidates: %w", cause)
	assert.True(t, Is(wrapped, KindUpstream))
}

func TestIsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("boom"), KindNotFound))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Upstream("x", nil)))
	assert.True(t, IsRetryable(Timeout("x", nil)))
	assert.False(t, IsRetryable(Validation("x", nil)))
	assert.False(t, IsRetryable(NotFound("x", nil)))
	assert.False(t, IsRetryable(Unauthorized("x", nil)))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Upstream("embedding call failed", errors.New("503"))
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "embedding call failed")
}
