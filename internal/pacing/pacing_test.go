package pacing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSourceIsDeterministicForFixedSeed(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 32; i++ {
		require.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestIntBetweenStaysInRange(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 100; i++ {
		v := src.IntBetween(100, 900)
		require.GreaterOrEqual(t, v, 100)
		require.LessOrEqual(t, v, 900)
	}
	require.Equal(t, 5, src.IntBetween(5, 5))
	require.Equal(t, 5, src.IntBetween(5, 3))
}

func TestPickCoversPool(t *testing.T) {
	src := NewSource(1)
	pool := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		v := src.Pick(pool)
		require.Contains(t, pool, v)
		seen[v] = true
	}
	require.Len(t, seen, 3)
	require.Equal(t, "", src.Pick(nil))
}

func TestZeroPacerDoesNotBlock(t *testing.T) {
	start := time.Now()
	var p Pacer = Zero{}
	p.Sleep(time.Hour)
	p.SleepBetween(time.Hour, 2*time.Hour)
	require.Less(t, time.Since(start), time.Second)
}
