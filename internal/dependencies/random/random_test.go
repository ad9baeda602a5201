package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedRandom returns the same Intn result every time
type fixedRandom int

func (f fixedRandom) Intn(n int) int {
	return int(f) % n
}

func (f fixedRandom) String(length int, alphabet string) string {
	return randomString(f, length, alphabet)
}

func TestShuffleWithZeroSourceRotatesLeft(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}
	Shuffle(fixedRandom(0), items)

	assert.Equal(t, []int{1, 2, 3, 4, 0}, items)
}

func TestShuffleIsPermutation(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	Shuffle(New(), items)

	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, items)
}

func TestShuffleShortSlices(t *testing.T) {
	var empty []int
	Shuffle(New(), empty)
	assert.Empty(t, empty)

	one := []int{7}
	Shuffle(New(), one)
	assert.Equal(t, []int{7}, one)
}

func TestIntnRange(t *testing.T) {
	r := New()
	for i := 0; i < 100; i++ {
		v := r.Intn(16)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 16)
	}
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-3))
}

func TestString(t *testing.T) {
	const alphabet = "ABC"
	s := New().String(12, alphabet)

	assert.Len(t, s, 12)
	for _, c := range s {
		assert.True(t, strings.ContainsRune(alphabet, c))
	}
	assert.Empty(t, New().String(0, alphabet))
	assert.Empty(t, New().String(5, ""))
	assert.Equal(t, "AAAA", fixedRandom(0).String(4, alphabet))
}
