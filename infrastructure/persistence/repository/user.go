package repository

import (
	"context"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type userRepository struct {
	*BaseRepository[model.User]
}

func NewUserRepository(db *gorm.DB, tracer trace.Tracer) repository.UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository[model.User](db, tracer, "userRepository"),
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, span := r.startSpan(ctx, "GetByEmail", attribute.String("user.email", email))
	var user model.User
	err := r.conn(ctx).Where("email = ?", email).First(&user).Error
	if err = endSpan(span, err, "get user by email"); err != nil {
		return nil, err
	}
	return &user, nil
}
