package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Transactor runs fn inline and records the call.
type Transactor struct {
	mock.Mock
}

func (m *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}
