package domain

type EntityType string

const (
	EntityTypePerson       EntityType = "PERSON"
	EntityTypeGroup        EntityType = "GROUP"
	EntityTypeOrganization EntityType = "ORGANIZATION"
	EntityTypeApplication  EntityType = "APPLICATION"
	EntityTypeResource     EntityType = "RESOURCE"
	EntityTypeNotSet       EntityType = "NOTSET"
)

// StreamEntityDTO identifies the entity behind an actor or a destination stream.
// UniqueID is the account id for people and the short name for groups.
type StreamEntityDTO struct {
	ID          int64      `json:"id"`
	Type        EntityType `json:"type"`
	UniqueID    string     `json:"unique_id"`
	DisplayName string     `json:"display_name"`
	AvatarID    string     `json:"avatar_id,omitempty"`
	Active      bool       `json:"active"` // Derived: false when the person's account is locked
}

// StreamKey identifies a stream by the type and id of the entity that owns it.
type StreamKey struct {
	Type EntityType
	ID   int64
}

// Key returns the stream's key, or the zero key for nil.
func (s *StreamEntityDTO) Key() StreamKey {
	if s == nil {
		return StreamKey{}
	}
	return StreamKey{Type: s.Type, ID: s.ID}
}
