package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
)

// IsAuthorLockedFilter marks the actor and original actor of each activity
// inactive when their account is locked. Groups are never locked, and a person
// the lookup does not return is treated as active.
type IsAuthorLockedFilter struct {
	people mapper.DomainMapper[[]string, []*domain.PersonModelView]
}

func NewIsAuthorLockedFilter(people mapper.DomainMapper[[]string, []*domain.PersonModelView]) *IsAuthorLockedFilter {
	return &IsAuthorLockedFilter{people: people}
}

func (f *IsAuthorLockedFilter) Filter(ctx context.Context, activities []*domain.ActivityDTO, _ *domain.PersonModelView) error {
	var authors []*domain.StreamEntityDTO
	for _, a := range activities {
		for _, e := range []*domain.StreamEntityDTO{a.Actor, a.OriginalActor} {
			if e == nil {
				continue
			}
			e.Active = true
			if e.Type == domain.EntityTypePerson {
				authors = append(authors, e)
			}
		}
	}
	if len(authors) == 0 {
		return nil
	}

	accounts := make(map[string]bool)
	for _, e := range authors {
		accounts[domain.NormalizeKey(e.UniqueID)] = false
	}
	people, err := f.people.Execute(ctx, slices.Sorted(maps.Keys(accounts)))
	if err != nil {
		return fmt.Errorf("failed to load activity authors: %w", err)
	}
	for _, p := range people {
		accounts[domain.NormalizeKey(p.AccountID)] = p.AccountLocked
	}

	for _, e := range authors {
		e.Active = !accounts[domain.NormalizeKey(e.UniqueID)]
	}
	return nil
}

// IsCommentAuthorLockedFilter sets AuthorActive on every embedded comment, with
// one lookup for all comments of all activities.
type IsCommentAuthorLockedFilter struct {
	people mapper.DomainMapper[[]int64, []*domain.PersonModelView]
}

func NewIsCommentAuthorLockedFilter(people mapper.DomainMapper[[]int64, []*domain.PersonModelView]) *IsCommentAuthorLockedFilter {
	return &IsCommentAuthorLockedFilter{people: people}
}

func (f *IsCommentAuthorLockedFilter) Filter(ctx context.Context, activities []*domain.ActivityDTO, _ *domain.PersonModelView) error {
	var comments []*domain.CommentDTO
	locked := make(map[int64]bool)
	for _, a := range activities {
		for _, c := range a.AllComments() {
			comments = append(comments, c)
			locked[c.AuthorID] = false
		}
	}
	if len(comments) == 0 {
		return nil
	}

	people, err := f.people.Execute(ctx, slices.Sorted(maps.Keys(locked)))
	if err != nil {
		return fmt.Errorf("failed to load comment authors: %w", err)
	}
	for _, p := range people {
		locked[p.ID] = p.AccountLocked
	}

	for _, c := range comments {
		c.AuthorActive = !locked[c.AuthorID]
	}
	return nil
}
