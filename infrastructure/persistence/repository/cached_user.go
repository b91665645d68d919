package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/infrastructure/cache"
	"go.uber.org/zap"
)

const userCacheTTL = 10 * time.Minute

// cachedUserRepository serves GetByID from the distributed cache. Users are
// never updated, so entries only expire.
type cachedUserRepository struct {
	repository.UserRepository
	cache  *cache.DistributedCache
	logger *zap.Logger
}

func NewCachedUserRepository(inner repository.UserRepository, c *cache.DistributedCache, logger *zap.Logger) repository.UserRepository {
	return &cachedUserRepository{
		UserRepository: inner,
		cache:          c,
		logger:         logger,
	}
}

func userKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (r *cachedUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	found, err := r.cache.Get(ctx, userKey(id), &user)
	if err != nil {
		r.logger.Warn("user cache read failed", zap.String("userId", id), zap.Error(err))
	}
	if found && err == nil {
		return &user, nil
	}

	loaded, err := r.UserRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, userKey(id), loaded, userCacheTTL); err != nil {
		r.logger.Warn("user cache write failed", zap.String("userId", id), zap.Error(err))
	}
	return loaded, nil
}
