// Package mappertest provides a testify mock for mapper.DomainMapper.
package mappertest

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock is a DomainMapper whose answers are set up with On("Execute", ...).
type Mock[K, V any] struct {
	mock.Mock
}

func New[K, V any]() *Mock[K, V] {
	return new(Mock[K, V])
}

func (m *Mock[K, V]) Execute(ctx context.Context, key K) (V, error) {
	args := m.Called(ctx, key)
	var v V
	if args.Get(0) != nil {
		v = args.Get(0).(V)
	}
	return v, args.Error(1)
}

// Returns sets up an answer for key under any context.
func (m *Mock[K, V]) Returns(key K, value V) *mock.Call {
	return m.On("Execute", mock.Anything, key).Return(value, nil)
}

// Fails sets up an error for key under any context.
func (m *Mock[K, V]) Fails(key K, err error) *mock.Call {
	return m.On("Execute", mock.Anything, key).Return(nil, err)
}
