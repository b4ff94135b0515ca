package notification

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
)

// Property keys shared by translators, notifiers and message templates.
const (
	PropActor        = "actor"
	PropStream       = "stream"
	PropSource       = "source"
	PropActivity     = "activity"
	PropComment      = "comment"
	PropGroup        = "group"
	PropGroupName    = "groupName"
	PropMessage      = "message"
	PropURL          = "url"
	PropHighPriority = "highPriority"
)

// PlaceholderActivity is the placeholder type of activities. Activities are not
// stream entities, so it has no domain.EntityType counterpart.
const PlaceholderActivity domain.EntityType = "ACTIVITY"

// ValueKind discriminates the variants of PropertyValue.
type ValueKind int

const (
	KindLiteral ValueKind = iota
	KindPlaceholder
	KindAlias
)

func (k ValueKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindPlaceholder:
		return "placeholder"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// PropertyValue is one entry of a PropertyMap: a literal value, a placeholder for
// an entity loaded late by type and id, or an alias naming another property.
type PropertyValue struct {
	Kind       ValueKind
	Value      any
	EntityType domain.EntityType
	ID         int64
	Target     string
}

func Literal(value any) PropertyValue {
	return PropertyValue{Kind: KindLiteral, Value: value}
}

func Placeholder(entityType domain.EntityType, id int64) PropertyValue {
	return PropertyValue{Kind: KindPlaceholder, EntityType: entityType, ID: id}
}

func Alias(target string) PropertyValue {
	return PropertyValue{Kind: KindAlias, Target: target}
}

// PropertyMap holds the values interpolated into notification messages.
type PropertyMap map[string]PropertyValue

// PlaceholderLoader loads the entity a placeholder stands for. A nil result with
// no error means the entity no longer exists.
type PlaceholderLoader interface {
	Load(ctx context.Context, entityType domain.EntityType, id int64) (any, error)
}

// PlaceholderLoaderFunc adapts a function to a PlaceholderLoader.
type PlaceholderLoaderFunc func(ctx context.Context, entityType domain.EntityType, id int64) (any, error)

func (f PlaceholderLoaderFunc) Load(ctx context.Context, entityType domain.EntityType, id int64) (any, error) {
	return f(ctx, entityType, id)
}

// Resolve turns the map into plain values. Each placeholder is loaded once, even
// when several keys name the same entity. An alias takes the resolved value of its
// target; an alias to a missing key resolves to nothing and is left out.
func (m PropertyMap) Resolve(ctx context.Context, loader PlaceholderLoader) (map[string]any, error) {
	type entityKey struct {
		entityType domain.EntityType
		id         int64
	}

	resolved := make(map[string]any, len(m))
	loaded := make(map[entityKey]any)
	for name, v := range m {
		switch v.Kind {
		case KindLiteral:
			resolved[name] = v.Value
		case KindPlaceholder:
			key := entityKey{v.EntityType, v.ID}
			entity, ok := loaded[key]
			if !ok {
				var err error
				entity, err = loader.Load(ctx, v.EntityType, v.ID)
				if err != nil {
					return nil, fmt.Errorf("failed to load %s %d for property %q: %w", v.EntityType, v.ID, name, err)
				}
				loaded[key] = entity
			}
			resolved[name] = entity
		}
	}

	for name, v := range m {
		if v.Kind != KindAlias {
			continue
		}
		target, err := m.aliasTarget(name)
		if err != nil {
			return nil, err
		}
		if value, ok := resolved[target]; ok {
			resolved[name] = value
		}
	}
	return resolved, nil
}

// aliasTarget follows a chain of aliases to the first non-alias key.
func (m PropertyMap) aliasTarget(name string) (string, error) {
	current := name
	for range len(m) {
		v, ok := m[current]
		if !ok || v.Kind != KindAlias {
			return current, nil
		}
		current = v.Target
	}
	return "", fmt.Errorf("alias cycle at property %q", name)
}
