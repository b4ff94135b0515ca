// Package notification holds the result of translating a domain event: who is
// notified, under which notification type, and the properties their messages
// are rendered from.
package notification

import (
	"maps"
	"slices"

	"eurekastreams-backend/internal/domain"
)

// Batch is the set of notifications produced for one event. Every recipient list
// is sorted, free of duplicates and non-empty.
type Batch struct {
	Recipients map[domain.NotificationType][]int64
	Properties PropertyMap
}

func NewBatch() *Batch {
	return &Batch{
		Recipients: make(map[domain.NotificationType][]int64),
		Properties: make(PropertyMap),
	}
}

// SetRecipients replaces the recipients of a type. An empty list removes the type.
func (b *Batch) SetRecipients(t domain.NotificationType, ids []int64) {
	ids = distinct(ids)
	if len(ids) == 0 {
		delete(b.Recipients, t)
		return
	}
	b.Recipients[t] = ids
}

// Types returns the notification types present, in a stable order.
func (b *Batch) Types() []domain.NotificationType {
	return slices.Sorted(maps.Keys(b.Recipients))
}

// AllRecipients returns every recipient of every type, sorted and deduplicated.
func (b *Batch) AllRecipients() []int64 {
	var all []int64
	for _, ids := range b.Recipients {
		all = append(all, ids...)
	}
	return distinct(all)
}

func (b *Batch) IsEmpty() bool {
	return len(b.Recipients) == 0
}

func (b *Batch) Set(name string, value PropertyValue) {
	b.Properties[name] = value
}

func (b *Batch) SetLiteral(name string, value any) {
	b.Set(name, Literal(value))
}

func (b *Batch) SetPlaceholder(name string, entityType domain.EntityType, id int64) {
	b.Set(name, Placeholder(entityType, id))
}

func (b *Batch) SetAlias(name, target string) {
	b.Set(name, Alias(target))
}

func distinct(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
