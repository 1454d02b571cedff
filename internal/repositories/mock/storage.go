package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// ObjectStorage mocks repositories.ObjectStorage.
type ObjectStorage struct {
	mock.Mock
}

// PresignPut mocks the PresignPut call.
func (m *ObjectStorage) PresignPut(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

// PresignGet mocks the PresignGet call.
func (m *ObjectStorage) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

// Exists mocks the Exists call.
func (m *ObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}
