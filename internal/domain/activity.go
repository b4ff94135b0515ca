package domain

import "time"

type ActivityVerb string

const (
	ActivityVerbPost  ActivityVerb = "POST"
	ActivityVerbShare ActivityVerb = "SHARE"
)

type CommentDTO struct {
	ID                int64     `json:"id"`
	ActivityID        int64     `json:"activity_id"`
	AuthorID          int64     `json:"author_id"`
	AuthorAccountID   string    `json:"author_account_id"`
	AuthorDisplayName string    `json:"author_display_name"`
	Body              string    `json:"body"`
	TimeSent          time.Time `json:"time_sent"`

	// Derived per viewer by the filter chain, never persisted.
	AuthorActive   bool       `json:"author_active"`
	Deletable      bool       `json:"deletable"`
	ServerDateTime *time.Time `json:"server_date_time,omitempty"`
}

type ActivityDTO struct {
	ID                   int64             `json:"id"`
	Verb                 ActivityVerb      `json:"verb"`
	BaseObjectType       string            `json:"base_object_type"`
	BaseObjectProperties map[string]string `json:"base_object_properties,omitempty"`
	Actor                *StreamEntityDTO  `json:"actor"`
	OriginalActor        *StreamEntityDTO  `json:"original_actor,omitempty"` // Set only on reshares
	DestinationStream    *StreamEntityDTO  `json:"destination_stream"`
	PostedTime           time.Time         `json:"posted_time"`
	FirstComment         *CommentDTO       `json:"first_comment,omitempty"`
	LastComment          *CommentDTO       `json:"last_comment,omitempty"`
	Comments             []*CommentDTO     `json:"comments,omitempty"`
	CommentCount         int               `json:"comment_count"`
	LikeCount            int               `json:"like_count"`

	// Derived per viewer by the filter chain, never persisted.
	Commentable    bool               `json:"commentable"`
	Shareable      bool               `json:"shareable"`
	Deletable      bool               `json:"deletable"`
	Liked          bool               `json:"liked"`
	Starred        bool               `json:"starred"`
	Likers         []*PersonModelView `json:"likers,omitempty"`
	ServerDateTime *time.Time         `json:"server_date_time,omitempty"`
}

// IsReshare reports whether the activity was shared from another stream.
func (a *ActivityDTO) IsReshare() bool {
	return a.OriginalActor != nil
}

// Author returns the entity that wrote the content: the original actor for a
// reshare, the actor otherwise.
func (a *ActivityDTO) Author() *StreamEntityDTO {
	if a.OriginalActor != nil {
		return a.OriginalActor
	}
	return a.Actor
}

// AllComments returns the distinct comments embedded in the activity.
func (a *ActivityDTO) AllComments() []*CommentDTO {
	var out []*CommentDTO
	seen := make(map[*CommentDTO]bool)
	add := func(c *CommentDTO) {
		if c != nil && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	add(a.FirstComment)
	add(a.LastComment)
	for _, c := range a.Comments {
		add(c)
	}
	return out
}
