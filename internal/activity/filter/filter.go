// Package filter annotates activities with the per-viewer flags a client needs to
// render them: whether the viewer may comment, share or delete, whether authors
// are active, and what the viewer liked or saved.
package filter

import (
	"context"
	"fmt"
	"time"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/metrics"
)

// Filter sets derived fields on activities in place. Filters are independent of
// each other and an empty list is always a no-op.
type Filter interface {
	Filter(ctx context.Context, activities []*domain.ActivityDTO, viewer *domain.PersonModelView) error
}

// Func adapts a function to a Filter.
type Func func(ctx context.Context, activities []*domain.ActivityDTO, viewer *domain.PersonModelView) error

func (f Func) Filter(ctx context.Context, activities []*domain.ActivityDTO, viewer *domain.PersonModelView) error {
	return f(ctx, activities, viewer)
}

// Stage is one named step of a Chain.
type Stage struct {
	Name   string
	Filter Filter
}

// Chain runs its stages in order and stops at the first error.
type Chain struct {
	stages []Stage
}

func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

func (c *Chain) Filter(ctx context.Context, activities []*domain.ActivityDTO, viewer *domain.PersonModelView) error {
	if len(activities) == 0 {
		return nil
	}
	for _, stage := range c.stages {
		start := time.Now()
		if err := stage.Filter.Filter(ctx, activities, viewer); err != nil {
			return fmt.Errorf("activity filter %s: %w", stage.Name, err)
		}
		elapsed := time.Since(start)
		metrics.FilterDuration.WithLabelValues(stage.Name).Observe(elapsed.Seconds())
		logger.Debug("Activity filter applied", "stage", stage.Name, "activities", len(activities), "duration", elapsed)
	}
	return nil
}

// Names returns the stage names in execution order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name
	}
	return names
}

// Stage names of the default chain.
const (
	StageIsAuthorLocked        = "is-author-locked"
	StageIsCommentAuthorLocked = "is-comment-author-locked"
	StageCanComment            = "can-comment"
	StageCanShare              = "can-share"
	StageDeletability          = "deletability"
	StageLikeData              = "like-data"
	StageSavedData             = "saved-data"
	StageServerDateTime        = "server-date-time"
)

// DefaultOrder is the order the read path applies filters in. Every stage reads
// only the raw activity content, so the order matters only for the last stage:
// the server time is stamped once everything else has been computed.
var DefaultOrder = []string{
	StageIsAuthorLocked,
	StageIsCommentAuthorLocked,
	StageCanComment,
	StageCanShare,
	StageDeletability,
	StageLikeData,
	StageSavedData,
	StageServerDateTime,
}

// NewDefaultChain arranges filters, keyed by stage name, in DefaultOrder. Every
// stage of DefaultOrder must be present and no other may be.
func NewDefaultChain(filters map[string]Filter) (*Chain, error) {
	if len(filters) != len(DefaultOrder) {
		return nil, fmt.Errorf("default chain needs %d filters, got %d: %w", len(DefaultOrder), len(filters), domain.ErrInvalidArgument)
	}
	stages := make([]Stage, 0, len(DefaultOrder))
	for _, name := range DefaultOrder {
		f, ok := filters[name]
		if !ok || f == nil {
			return nil, fmt.Errorf("default chain is missing filter %s: %w", name, domain.ErrInvalidArgument)
		}
		stages = append(stages, Stage{Name: name, Filter: f})
	}
	return NewChain(stages...), nil
}

func unsupportedDestination(activity *domain.ActivityDTO) error {
	t := domain.EntityTypeNotSet
	if activity.DestinationStream != nil {
		t = activity.DestinationStream.Type
	}
	return fmt.Errorf("activity %d has unsupported destination stream type %q: %w", activity.ID, t, domain.ErrInvalidArgument)
}

func destinationType(activity *domain.ActivityDTO) domain.EntityType {
	if activity.DestinationStream == nil {
		return domain.EntityTypeNotSet
	}
	return activity.DestinationStream.Type
}

// streamKey is the normalized unique id of the destination stream, which must be set.
func streamKey(activity *domain.ActivityDTO) string {
	return domain.NormalizeKey(activity.DestinationStream.UniqueID)
}
