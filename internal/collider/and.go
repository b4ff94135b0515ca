package collider

import "slices"

// AndCollider returns the intersection of two id lists.
//
// Each id of b is located in a with an interpolation search: the probe index is
// estimated from the numeric spread of the remaining window of a instead of its
// midpoint, which converges in far fewer probes than a binary search on the
// near-uniform id distributions streams produce. While b is descending the search
// window only moves forward, so the walk over a is linear in the worst case.
type AndCollider struct{}

func NewAndCollider() *AndCollider {
	return &AndCollider{}
}

func (c *AndCollider) Collide(a, b []int64, maxResults int) []int64 {
	if maxResults <= 0 || len(a) == 0 || len(b) == 0 {
		return []int64{}
	}

	matched := make([]bool, len(a))
	hits := make([]int64, 0, min(len(a), len(b)))
	start := 0
	for i, id := range b {
		// an out-of-order candidate restarts the window
		if i > 0 && id > b[i-1] {
			start = 0
		}
		pos, found := interpolationSearch(a, start, len(a)-1, id)
		if found {
			if !matched[pos] {
				matched[pos] = true
				hits = append(hits, id)
			}
			start = pos + 1
		} else {
			start = pos
		}
	}

	if !IsDescending(hits) {
		slices.Sort(hits)
		slices.Reverse(hits)
	}
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	return hits
}

// interpolationSearch looks for target in the descending window list[lo:hi+1]. It
// returns the index of target and true, or the index of the first element smaller
// than target and false.
func interpolationSearch(list []int64, lo, hi int, target int64) (int, bool) {
	for lo <= hi {
		if target > list[lo] {
			return lo, false
		}
		if target < list[hi] {
			return hi + 1, false
		}

		// differences of extreme ids overflow int64
		pos := lo
		if spread := float64(list[lo]) - float64(list[hi]); spread > 0 {
			offset := (float64(list[lo]) - float64(target)) / spread * float64(hi-lo)
			pos = min(max(lo+int(offset), lo), hi)
		}

		switch {
		case list[pos] == target:
			return pos, true
		case list[pos] > target:
			lo = pos + 1
		default:
			hi = pos - 1
		}
	}
	return lo, false
}
