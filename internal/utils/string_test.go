package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindClosestString(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		s, dist, ok := FindClosestString(context.Background(), []string{"aaa", "bba", "cca"}, "aa", 2)
		if !assert.True(t, ok) {
			return
		}

		assert.Equal(t, 1, dist)
		assert.Equal(t, "aaa", s)
	})

	t.Run("maxDifferences should be respected", func(t *testing.T) {
		_, _, ok := FindClosestString(context.Background(), []string{"aaaaa"}, "aa", 2)
		assert.False(t, ok)
	})

	t.Run("subcommand typo", func(t *testing.T) {
		s, dist, ok := FindClosestString(context.Background(), []string{"replay", "help", "install-completions"}, "rpelay", 2)
		if !assert.True(t, ok) {
			return
		}

		assert.Equal(t, 2, dist)
		assert.Equal(t, "replay", s)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, ok := FindClosestString(ctx, []string{"aaa"}, "aa", 2)
		assert.False(t, ok)
	})
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 1, CountDigits(0))
	assert.Equal(t, 1, CountDigits(-6))
	assert.Equal(t, 2, CountDigits(10))
	assert.Equal(t, 3, CountDigits(int64(-123)))
}

func TestMaxWidth(t *testing.T) {
	assert.Equal(t, 0, MaxWidth([]int{}))
	assert.Equal(t, 2, MaxWidth([]int{0, 1, -6}))
	assert.Equal(t, 3, MaxWidth([]int{100, -6}))
}

func TestCombineErrors(t *testing.T) {
	assert.NoError(t, CombineErrors(nil, nil))

	err := CombineErrorsWithPrefixMessage("invalid scenario", assertErr("a"), nil, assertErr("b"))
	assert.EqualError(t, err, "invalid scenario: a\nb")
	assert.ErrorIs(t, err, assertErr("b"))
}

type assertErr string

func (e assertErr) Error() string {
	return string(e)
}
