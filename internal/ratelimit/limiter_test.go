package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitAllowsBurstUpToMaxCalls(t *testing.T) {
	l := New(60, 5)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Wait(ctx))
	}
}

func TestWaitRespectsCanceledContext(t *testing.T) {
	l := New(60, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, l.Wait(context.Background()))
	err := l.Wait(ctx)
	assert.Error(t, err)
}

func TestNewAppliesDefaultsForInvalidInputs(t *testing.T) {
	l := New(0, 0)
	assert.NotNil(t, l)
}
