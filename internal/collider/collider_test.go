package collider

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intersection(a, b []int64) []int64 {
	inB := make(map[int64]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}
	out := []int64{}
	for _, id := range a {
		if inB[id] {
			out = append(out, id)
		}
	}
	return out
}

func union(a, b []int64) []int64 {
	seen := make(map[int64]bool)
	out := []int64{}
	for _, id := range append(slices.Clone(a), b...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

// randomDescending returns n distinct ids drawn from [1, limit], descending.
func randomDescending(r *rand.Rand, n int, limit int64) []int64 {
	seen := make(map[int64]bool, n)
	out := make([]int64, 0, n)
	for len(out) < n {
		id := r.Int64N(limit) + 1
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

func TestAndCollider_Collide(t *testing.T) {
	collider := NewAndCollider()

	tests := []struct {
		name       string
		sorted     []int64
		other      []int64
		maxResults int
	}{
		{"miss high", []int64{5, 4, 2, 1}, []int64{6}, 5},
		{"miss low", []int64{5, 4, 2, 1}, []int64{0}, 5},
		{"simple", []int64{5, 4, 3, 2, 1}, []int64{8, 0, 3, 5}, 5},
		{"both empty", []int64{}, []int64{}, 1},
		{"other empty", []int64{1}, []int64{}, 1},
		{"sorted empty", []int64{}, []int64{1}, 1},
		{"same single", []int64{1}, []int64{1}, 1},
		{"same list", []int64{5, 4, 3, 2, 1}, []int64{5, 4, 3, 2, 1}, 5},
		{"single miss in middle", []int64{5, 4, 2, 1}, []int64{3}, 100},
		{
			"sparse",
			[]int64{1000, 900, 899, 898, 897, 896, 895, 799, 501, 500, 499, 5, 4, 3, 2, 1},
			[]int64{1, 1000, 600, 502, 3, 2, 2500, 999, 899, 895, 894, 900, 901},
			100,
		},
		{
			"sparse descending",
			[]int64{1000, 900, 899, 898, 897, 896, 895, 799, 501, 500, 499, 5, 4, 3, 2, 1},
			[]int64{2500, 1000, 999, 901, 900, 899, 895, 894, 600, 502, 3, 2, 1},
			100,
		},
		{"duplicates in other", []int64{9, 7, 5}, []int64{7, 7, 5, 9, 5}, 10},
		{"extreme range", []int64{math.MaxInt64, 5, -5}, []int64{5}, 10},
		{"extreme range both ends", []int64{math.MaxInt64, 0, math.MinInt64}, []int64{math.MaxInt64, 1, math.MinInt64}, 10},
		{"extreme range misses", []int64{math.MaxInt64, math.MaxInt64 - 1, -3, math.MinInt64 + 1}, []int64{math.MaxInt64 - 2, 7, math.MinInt64}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := intersection(tt.sorted, tt.other)
			actual := collider.Collide(tt.sorted, tt.other, tt.maxResults)

			assert.LessOrEqual(t, len(actual), tt.maxResults)
			assert.ElementsMatch(t, expected, actual)
			assert.True(t, IsDescending(actual))
		})
	}
}

func TestAndCollider_MaxResults(t *testing.T) {
	collider := NewAndCollider()
	list := []int64{5, 4, 3, 2, 1}

	actual := collider.Collide(list, list, 1)
	assert.Equal(t, []int64{5}, actual)

	actual = collider.Collide(list, list, 0)
	assert.Empty(t, actual)
}

func TestAndCollider_Random(t *testing.T) {
	r := rand.New(rand.NewPCG(1280321312726, 1280321446257))
	collider := NewAndCollider()

	sizes := []struct{ a, b int }{{100, 10}, {100, 100}, {1000, 1000}}
	for _, size := range sizes {
		a := randomDescending(r, size.a, 2000)
		b := randomDescending(r, size.b, 2000)

		actual := collider.Collide(a, b, size.a)
		assert.Equal(t, intersection(a, b), actual)

		// the second operand does not have to be ordered for a correct set
		shuffled := slices.Clone(b)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, intersection(a, b), collider.Collide(a, shuffled, size.a))
	}

	a := randomDescending(r, 1000, 2000)
	assert.Equal(t, a, collider.Collide(a, a, 1000))
}

func TestOrCollider_Collide(t *testing.T) {
	collider := NewOrCollider()

	tests := []struct {
		name       string
		a          []int64
		b          []int64
		maxResults int
		expected   []int64
	}{
		{"both empty", []int64{}, []int64{}, 5, []int64{}},
		{"first empty", []int64{}, []int64{3, 2, 1}, 5, []int64{3, 2, 1}},
		{"second empty bounded", []int64{9, 8, 7}, nil, 2, []int64{9, 8}},
		{"interleaved", []int64{9, 7, 5}, []int64{8, 6, 4}, 10, []int64{9, 8, 7, 6, 5, 4}},
		{"overlap deduplicated", []int64{9, 7, 5, 3}, []int64{7, 5, 4}, 10, []int64{9, 7, 5, 4, 3}},
		{"capped", []int64{9, 7, 5, 3}, []int64{8, 7, 2}, 3, []int64{9, 8, 7}},
		{"zero max", []int64{9}, []int64{8}, 0, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collider.Collide(tt.a, tt.b, tt.maxResults))
		})
	}
}

func TestOrCollider_Random(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	collider := NewOrCollider()

	for _, limit := range []int{1, 10, 150, 5000} {
		a := randomDescending(r, 100, 500)
		b := randomDescending(r, 100, 500)
		expected := union(a, b)
		if len(expected) > limit {
			expected = expected[:limit]
		}

		actual := collider.Collide(a, b, limit)
		assert.LessOrEqual(t, len(actual), limit)
		assert.Equal(t, expected, actual)
	}
}

func TestIsDescending(t *testing.T) {
	assert.True(t, IsDescending(nil))
	assert.True(t, IsDescending([]int64{3, 2, 1}))
	assert.False(t, IsDescending([]int64{3, 3, 1}))
	assert.False(t, IsDescending([]int64{1, 2}))
}
