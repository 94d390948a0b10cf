package policy

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
	policyListCacheKey = "policies:all"
	policyCacheTTL     = 5 * time.Minute
)

type Repository interface {
	Create(ctx context.Context, policy core.Policy) (core.Policy, error)
	Get(ctx context.Context, id string) (core.Policy, error)
	Update(ctx context.Context, policy core.Policy) (core.Policy, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]core.Policy, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewRepository(db *gorm.DB, rdb *redis.Client) Repository {
	return &repository{db, rdb}
}

func (r *repository) invalidate(ctx context.Context) {
	r.rdb.Del(ctx, policyListCacheKey)
}

func (r *repository) Create(ctx context.Context, policy core.Policy) (core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Policy.Repository.Create")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(&policy).Error; err != nil {
		return core.Policy{}, err
	}

	r.invalidate(ctx)

	return policy, nil
}

func (r *repository) Get(ctx context.Context, id string) (core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Policy.Repository.Get")
	defer span.End()

	var policy core.Policy
	err := r.db.WithContext(ctx).First(&policy, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Policy{}, core.NewErrorNotFound()
	}
	return policy, err
}

func (r *repository) Update(ctx context.Context, policy core.Policy) (core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Policy.Repository.Update")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(&policy).Error; err != nil {
		return core.Policy{}, err
	}

	r.invalidate(ctx)

	return policy, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Policy.Repository.Delete")
	defer span.End()

	result := r.db.WithContext(ctx).Delete(&core.Policy{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.NewErrorNotFound()
	}

	r.invalidate(ctx)

	return nil
}

func (r *repository) List(ctx context.Context) ([]core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Policy.Repository.List")
	defer span.End()

	val, err := r.rdb.Get(ctx, policyListCacheKey).Result()
	if err == nil {
		var policies []core.Policy
		if json.Unmarshal([]byte(val), &policies) == nil {
			return policies, nil
		}
	}

	var policies []core.Policy
	err = r.db.WithContext(ctx).Find(&policies).Error
	if err != nil {
		return nil, err
	}

	if body, err := json.Marshal(policies); err == nil {
		r.rdb.Set(ctx, policyListCacheKey, body, policyCacheTTL)
	}

	return policies, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Policy.Repository.Count")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&core.Policy{}).Count(&count).Error
	return count, err
}
