package repository

import (
	"context"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresAuditLogRepository struct {
	*BaseRepository[model.AuditLog]
}

func NewAuditLogRepository(db *gorm.DB, tracer trace.Tracer) repository.AuditLogRepository {
	return &PostgresAuditLogRepository{
		BaseRepository: NewBaseRepository[model.AuditLog](db, tracer, "auditLogRepository"),
	}
}

// CreateAuditLog is idempotent on EventID.
func (r *PostgresAuditLogRepository) CreateAuditLog(ctx context.Context, a model.AuditLog) (model.AuditLog, error) {
	ctx, span := r.startSpan(ctx, "CreateAuditLog",
		attribute.String("event.id", a.EventID),
		attribute.String("event.type", a.EventType),
	)
	err := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&a).
		Error
	return a, endSpan(span, err, "create audit log")
}
