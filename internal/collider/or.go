package collider

// OrCollider returns the union of two descending id lists, merged in descending
// order without duplicates and truncated to maxResults.
type OrCollider struct{}

func NewOrCollider() *OrCollider {
	return &OrCollider{}
}

func (c *OrCollider) Collide(a, b []int64, maxResults int) []int64 {
	if maxResults <= 0 {
		return []int64{}
	}

	out := make([]int64, 0, min(len(a)+len(b), maxResults))
	i, j := 0, 0
	for len(out) < maxResults && (i < len(a) || j < len(b)) {
		var next int64
		if j >= len(b) || (i < len(a) && a[i] >= b[j]) {
			next = a[i]
			i++
		} else {
			next = b[j]
			j++
		}
		if len(out) > 0 && out[len(out)-1] == next {
			continue
		}
		out = append(out, next)
	}
	return out
}
