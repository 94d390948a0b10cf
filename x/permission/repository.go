package permission

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/custodia-cloud/custodia/core"
)

const (
	allowCachePrefix = "allow:"
	allowCacheTTL    = 5 * time.Minute
)

type Repository interface {
	Get(ctx context.Context, shape string) (core.Allow, error)
	Upsert(ctx context.Context, allow core.Allow) (core.Allow, error)
	List(ctx context.Context) ([]core.Allow, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewRepository(db *gorm.DB, rdb *redis.Client) Repository {
	return &repository{db, rdb}
}

func (r *repository) Get(ctx context.Context, shape string) (core.Allow, error) {
	ctx, span := tracer.Start(ctx, "Permission.Repository.Get")
	defer span.End()

	val, err := r.rdb.Get(ctx, allowCachePrefix+shape).Result()
	if err == nil {
		var allow core.Allow
		if json.Unmarshal([]byte(val), &allow) == nil {
			return allow, nil
		}
	}

	var allow core.Allow
	err = r.db.WithContext(ctx).First(&allow, "shape = ?", shape).Error
	if err != nil {
		return core.Allow{}, err
	}

	if body, err := json.Marshal(allow); err == nil {
		r.rdb.Set(ctx, allowCachePrefix+shape, body, allowCacheTTL)
	}

	return allow, nil
}

func (r *repository) Upsert(ctx context.Context, allow core.Allow) (core.Allow, error) {
	ctx, span := tracer.Start(ctx, "Permission.Repository.Upsert")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(&allow).Error; err != nil {
		return core.Allow{}, err
	}

	r.rdb.Del(ctx, allowCachePrefix+allow.Shape)

	return allow, nil
}

func (r *repository) List(ctx context.Context) ([]core.Allow, error) {
	ctx, span := tracer.Start(ctx, "Permission.Repository.List")
	defer span.End()

	var allows []core.Allow
	err := r.db.WithContext(ctx).Find(&allows).Error
	return allows, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Permission.Repository.Count")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&core.Allow{}).Count(&count).Error
	return count, err
}

// IsNotFound reports whether err is the storage-level missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
