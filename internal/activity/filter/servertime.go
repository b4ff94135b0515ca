package filter

import (
	"context"
	"time"

	"eurekastreams-backend/internal/domain"
)

// ServerDateTimeFilter stamps activities and their first and last comments with
// the server clock, so clients render relative times without trusting their own
// clock.
type ServerDateTimeFilter struct {
	now func() time.Time
}

// NewServerDateTimeFilter uses time.Now when now is nil.
func NewServerDateTimeFilter(now func() time.Time) *ServerDateTimeFilter {
	if now == nil {
		now = time.Now
	}
	return &ServerDateTimeFilter{now: now}
}

func (f *ServerDateTimeFilter) Filter(_ context.Context, activities []*domain.ActivityDTO, _ *domain.PersonModelView) error {
	if len(activities) == 0 {
		return nil
	}

	now := f.now()
	for _, a := range activities {
		a.ServerDateTime = &now
		if a.FirstComment != nil {
			a.FirstComment.ServerDateTime = &now
		}
		if a.LastComment != nil {
			a.LastComment.ServerDateTime = &now
		}
	}
	return nil
}
