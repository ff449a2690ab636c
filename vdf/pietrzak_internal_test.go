package vdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalLength(t *testing.T) {
	cases := []struct {
		difficulty uint64
		final      uint64
		rounds     int
	}{
		{66, 66, 0},
		{100, 100, 0},
		{200, 100, 1},
		{1000, 126, 3},
		{1002, 126, 3},
	}

	for _, c := range cases {
		final, rounds := finalLength(c.difficulty)
		assert.Equal(t, c.final, final, "difficulty %d", c.difficulty)
		assert.Equal(t, c.rounds, rounds, "difficulty %d", c.difficulty)
	}

	assert.Equal(t, []uint64{100, 50, 26, 14, 8, 4, 2, 1}, halvings(100))
}

func TestApproximateParameters(t *testing.T) {
	for _, T := range []uint64{1, 2} {
		L, k := approximateParameters(T)
		assert.Equal(t, 1, L)
		assert.Equal(t, 1, k)
	}

	L, k := approximateParameters(1 << 20)
	assert.Equal(t, 1, L)
	assert.Greater(t, k, 1)

	L, _ = approximateParameters(1 << 30)
	assert.Greater(t, L, 1)
}
