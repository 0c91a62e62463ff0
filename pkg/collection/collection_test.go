package collection_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/velora-shop/velora/pkg/collection"
)

func TestMap(t *testing.T) {
	got := collection.Map([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestFilter(t *testing.T) {
	got := collection.Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, got)
}

func TestFirst(t *testing.T) {
	v, ok := collection.First([]int{3, 6, 9}, func(n int) bool { return n > 5 })
	assert.True(t, ok)
	assert.Equal(t, 6, v)

	_, ok = collection.First([]int{1, 2}, func(n int) bool { return n > 5 })
	assert.False(t, ok)
}

func TestGroupBy(t *testing.T) {
	got := collection.GroupBy([]string{"ant", "bee", "ape"}, func(s string) string { return s[:1] })
	assert.Equal(t, []string{"ant", "ape"}, got["a"])
	assert.Equal(t, []string{"bee"}, got["b"])
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, collection.Unique([]int{3, 1, 3, 2, 1}))
}

func TestKeyByLastWins(t *testing.T) {
	type row struct {
		ID   int
		Name string
	}
	got := collection.KeyBy([]row{{1, "a"}, {2, "b"}, {1, "c"}}, func(r row) int { return r.ID })
	assert.Equal(t, "c", got[1].Name)
	assert.Equal(t, "b", got[2].Name)
}

func TestChunk(t *testing.T) {
	got := collection.Chunk([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, got)
	assert.Nil(t, collection.Chunk([]int{1}, 0))
}

func TestSortBy(t *testing.T) {
	got := collection.SortBy([]int{3, 1, 2}, func(a, b int) bool { return a < b })
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestSum(t *testing.T) {
	total := collection.Sum([]float64{1.5, 2.5}, func(f float64) float64 { return f })
	assert.InDelta(t, 4.0, total, 0.001)
}
