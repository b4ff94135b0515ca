// Package collider combines id lists that are sorted in descending order, as
// produced by stream-scope and activity id queries.
package collider

// ListCollider combines two descending id lists into at most maxResults ids.
//
// Both operands must be sorted in strictly descending order. This is not checked:
// unsorted input yields an undefined result. Use IsDescending where the ordering of
// a list is not guaranteed by the query that produced it.
type ListCollider interface {
	Collide(a, b []int64, maxResults int) []int64
}

// IsDescending reports whether ids is sorted in strictly descending order.
func IsDescending(ids []int64) bool {
	for i := 1; i < len(ids); i++ {
		if ids[i] >= ids[i-1] {
			return false
		}
	}
	return true
}
