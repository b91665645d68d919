package events

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
)

type AuditLogSink struct {
	repository repository.AuditLogRepository
}

func NewAuditLogSink(repository repository.AuditLogRepository) *AuditLogSink {
	return &AuditLogSink{repository: repository}
}

func (s *AuditLogSink) Name() string { return "audit_log" }

func (s *AuditLogSink) Handle(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = s.repository.CreateAuditLog(ctx, model.AuditLog{
		CreatedAt: event.Timestamp,
		EventID:   event.ID,
		EventType: string(event.Type),
		UserID:    nullString(event.UserID),
		RoomID:    nullString(event.RoomID),
		BookingID: nullString(event.BookingID),
		Payload:   payload,
		Success:   true,
	})
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
