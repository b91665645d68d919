package mocks

import (
	"context"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/stretchr/testify/mock"
)

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) CreateAuditLog(ctx context.Context, a model.AuditLog) (model.AuditLog, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(model.AuditLog), args.Error(1)
}
