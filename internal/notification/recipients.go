package notification

import "eurekastreams-backend/internal/domain"

// RecipientAssigner distributes people over notification types so that each
// person receives at most one notification per event. A person is assigned to the
// first type they are offered under; excluded people, usually the actor, are never
// assigned.
type RecipientAssigner struct {
	taken  map[int64]bool
	byType map[domain.NotificationType][]int64
	order  []domain.NotificationType
}

func NewRecipientAssigner(excluded ...int64) *RecipientAssigner {
	a := &RecipientAssigner{
		taken:  make(map[int64]bool),
		byType: make(map[domain.NotificationType][]int64),
	}
	for _, id := range excluded {
		a.taken[id] = true
	}
	return a
}

// Assign offers ids to type t and returns how many of them were taken.
func (a *RecipientAssigner) Assign(t domain.NotificationType, ids ...int64) int {
	n := 0
	for _, id := range ids {
		if a.taken[id] {
			continue
		}
		a.taken[id] = true
		if _, ok := a.byType[t]; !ok {
			a.order = append(a.order, t)
		}
		a.byType[t] = append(a.byType[t], id)
		n++
	}
	return n
}

// Exclude keeps ids out of every later assignment.
func (a *RecipientAssigner) Exclude(ids ...int64) {
	for _, id := range ids {
		a.taken[id] = true
	}
}

func (a *RecipientAssigner) IsEmpty() bool {
	return len(a.order) == 0
}

// ApplyTo copies the assignments into the batch.
func (a *RecipientAssigner) ApplyTo(b *Batch) {
	for _, t := range a.order {
		b.SetRecipients(t, a.byType[t])
	}
}
