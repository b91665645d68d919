package repository

import (
	"context"

	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/infrastructure/persistence/database"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BaseRepository[TEntity any] struct {
	database *gorm.DB
	tracer   trace.Tracer
	name     string
	preloads []database.PreloadEntity
}

func NewBaseRepository[TEntity any](db *gorm.DB, tracer trace.Tracer, name string, preloads ...database.PreloadEntity) *BaseRepository[TEntity] {
	return &BaseRepository[TEntity]{
		database: db,
		tracer:   tracer,
		name:     name,
		preloads: preloads,
	}
}

func (r *BaseRepository[TEntity]) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.database)
}

func (r *BaseRepository[TEntity]) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := r.tracer.Start(ctx, r.name+"."+op)
	span.SetAttributes(attrs...)
	return ctx, span
}

// endSpan records err on span and returns it translated.
func endSpan(span trace.Span, err error, op string) error {
	defer span.End()
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return nil
	}

	translated := database.TranslateError(err, op)
	if translated != repository.ErrNotFound {
		span.RecordError(err)
	}
	span.SetStatus(codes.Error, translated.Error())
	return translated
}

func (r *BaseRepository[TEntity]) Create(ctx context.Context, entity *TEntity) error {
	ctx, span := r.startSpan(ctx, "Create")
	err := r.conn(ctx).Create(entity).Error
	return endSpan(span, err, "create "+r.name)
}

func (r *BaseRepository[TEntity]) GetByID(ctx context.Context, id string) (*TEntity, error) {
	ctx, span := r.startSpan(ctx, "GetByID", attribute.String("id", id))
	entity := new(TEntity)
	err := r.conn(ctx).Where("id = ?", id).First(entity).Error
	if err = endSpan(span, err, "get "+r.name); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *BaseRepository[TEntity]) GetDetailed(ctx context.Context, id string) (*TEntity, error) {
	ctx, span := r.startSpan(ctx, "GetDetailed", attribute.String("id", id))
	entity := new(TEntity)
	err := database.PreloadWithConditions(r.conn(ctx), r.preloads).
		Where("id = ?", id).
		First(entity).
		Error
	if err = endSpan(span, err, "get detailed "+r.name); err != nil {
		return nil, err
	}
	return entity, nil
}

// LockByID takes a FOR UPDATE lock that lives as long as the surrounding
// transaction.
func (r *BaseRepository[TEntity]) LockByID(ctx context.Context, id string) (*TEntity, error) {
	ctx, span := r.startSpan(ctx, "LockByID", attribute.String("id", id))
	entity := new(TEntity)
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(entity).
		Error
	if err = endSpan(span, err, "lock "+r.name); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *BaseRepository[TEntity]) Update(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := r.startSpan(ctx, "Update", attribute.String("id", id))
	result := r.conn(ctx).Model(new(TEntity)).Where("id = ?", id).Updates(fields)
	err := result.Error
	if err == nil && result.RowsAffected == 0 {
		err = gorm.ErrRecordNotFound
	}
	return endSpan(span, err, "update "+r.name)
}

func (r *BaseRepository[TEntity]) Delete(ctx context.Context, id string) error {
	ctx, span := r.startSpan(ctx, "Delete", attribute.String("id", id))
	result := r.conn(ctx).Where("id = ?", id).Delete(new(TEntity))
	err := result.Error
	if err == nil && result.RowsAffected == 0 {
		err = gorm.ErrRecordNotFound
	}
	return endSpan(span, err, "delete "+r.name)
}
