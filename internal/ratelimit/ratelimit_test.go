package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBudgetExhaustion(t *testing.T) {
	b := NewBudget(2, time.Hour)

	require.True(t, b.Allow())
	require.NoError(t, b.Use())
	require.NoError(t, b.Use())

	require.False(t, b.Allow())
	require.Error(t, b.Use())
	require.Equal(t, 0, b.Remaining())
}

func TestBudgetUnlimited(t *testing.T) {
	b := NewBudget(0, time.Hour)

	for i := 0; i < 100; i++ {
		require.NoError(t, b.Use())
	}
	require.True(t, b.Allow())
	require.Equal(t, -1, b.Remaining())
}

func TestBudgetWindowReset(t *testing.T) {
	b := NewBudget(1, 10*time.Millisecond)

	require.NoError(t, b.Use())
	require.Error(t, b.Use())

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, b.Use())
}
