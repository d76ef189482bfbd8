package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int]()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("a", 1)
	got, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	s.Set("a", 2)
	got, _ = s.Get("a")
	assert.Equal(t, 2, got)
}

func TestStore_Delete(t *testing.T) {
	s := New[string, string]()
	s.Set("k", "v")

	assert.True(t, s.Delete("k"))
	assert.False(t, s.Delete("k"))
	assert.Zero(t, s.Len())
}

func TestStore_Filter(t *testing.T) {
	s := New[int, int]()
	for i := 1; i <= 5; i++ {
		s.Set(i, i)
	}

	even := s.Filter(func(v int) bool { return v%2 == 0 })
	assert.ElementsMatch(t, []int{2, 4}, even)
}
