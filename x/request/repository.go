package request

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/custodia-cloud/custodia/core"
)

// expiryIndexKey is a sorted set of created request ids scored by their
// expiration time, so the sweep does not scan the whole table each tick.
const expiryIndexKey = "request:expiry"

type Repository interface {
	Create(ctx context.Context, request core.Request) (core.Request, error)
	Get(ctx context.Context, id string) (core.Request, error)
	Update(ctx context.Context, request core.Request) (core.Request, error)
	List(ctx context.Context, filter core.RequestFilter) ([]core.Request, error)
	GetLiveByDeduplicationKey(ctx context.Context, key string) (core.Request, error)
	ListScheduledBefore(ctx context.Context, now time.Time) ([]core.Request, error)
	ListCreatedByRequester(ctx context.Context, requester string) ([]core.Request, error)
	CreateApproval(ctx context.Context, approval core.Approval) (core.Approval, error)
	CountByStatus(ctx context.Context) (map[core.RequestStatus]int64, error)

	AddExpiry(ctx context.Context, id string, expiration time.Time) error
	RemoveExpiry(ctx context.Context, id string) error
	ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error)
}

type repository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewRepository(db *gorm.DB, rdb *redis.Client) Repository {
	return &repository{db, rdb}
}

func (r *repository) Create(ctx context.Context, request core.Request) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.Create")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(&request).Error; err != nil {
		return core.Request{}, err
	}

	return request, nil
}

func (r *repository) Get(ctx context.Context, id string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.Get")
	defer span.End()

	var request core.Request
	err := r.db.WithContext(ctx).Preload("Approvals").First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Request{}, core.NewErrorNotFound()
	}
	return request, err
}

func (r *repository) Update(ctx context.Context, request core.Request) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.Update")
	defer span.End()

	err := r.db.WithContext(ctx).Omit("Approvals").Save(&request).Error
	return request, err
}

func (r *repository) List(ctx context.Context, filter core.RequestFilter) ([]core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.List")
	defer span.End()

	query := r.db.WithContext(ctx).Preload("Approvals")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RequestedBy != "" {
		query = query.Where("requested_by = ?", filter.RequestedBy)
	}
	if filter.OperationType != "" {
		query = query.Where("operation_type = ?", filter.OperationType)
	}
	if filter.Tag != "" {
		query = query.Where("? = ANY(tags)", filter.Tag)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var requests []core.Request
	err := query.Order("c_date DESC").Find(&requests).Error
	return requests, err
}

// GetLiveByDeduplicationKey returns the non-terminal request carrying the
// key, if any.
func (r *repository) GetLiveByDeduplicationKey(ctx context.Context, key string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.GetLiveByDeduplicationKey")
	defer span.End()

	var request core.Request
	err := r.db.WithContext(ctx).
		Preload("Approvals").
		Where("deduplication_key = ? AND status IN ?", key, []core.RequestStatus{
			core.RequestStatusCreated,
			core.RequestStatusApproved,
			core.RequestStatusScheduled,
			core.RequestStatusProcessing,
		}).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Request{}, core.NewErrorNotFound()
	}
	return request, err
}

func (r *repository) ListScheduledBefore(ctx context.Context, now time.Time) ([]core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.ListScheduledBefore")
	defer span.End()

	var requests []core.Request
	err := r.db.WithContext(ctx).
		Preload("Approvals").
		Where("status = ? AND execution_dt <= ?", core.RequestStatusScheduled, now).
		Find(&requests).Error
	return requests, err
}

func (r *repository) ListCreatedByRequester(ctx context.Context, requester string) ([]core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.ListCreatedByRequester")
	defer span.End()

	var requests []core.Request
	err := r.db.WithContext(ctx).
		Where("status = ? AND requested_by = ?", core.RequestStatusCreated, requester).
		Find(&requests).Error
	return requests, err
}

// CreateApproval appends a vote. The unique index on (request, approver)
// turns a concurrent duplicate into ErrorAlreadyDecided.
func (r *repository) CreateApproval(ctx context.Context, approval core.Approval) (core.Approval, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.CreateApproval")
	defer span.End()

	err := r.db.WithContext(ctx).Create(&approval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return core.Approval{}, core.NewErrorAlreadyDecided()
		}
		return core.Approval{}, err
	}

	return approval, nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[core.RequestStatus]int64, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.CountByStatus")
	defer span.End()

	var rows []struct {
		Status core.RequestStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&core.Request{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[core.RequestStatus]int64)
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repository) AddExpiry(ctx context.Context, id string, expiration time.Time) error {
	ctx, span := tracer.Start(ctx, "Request.Repository.AddExpiry")
	defer span.End()

	return r.rdb.ZAdd(ctx, expiryIndexKey, redis.Z{
		Score:  float64(expiration.Unix()),
		Member: id,
	}).Err()
}

func (r *repository) RemoveExpiry(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Request.Repository.RemoveExpiry")
	defer span.End()

	return r.rdb.ZRem(ctx, expiryIndexKey, id).Err()
}

func (r *repository) ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Request.Repository.ListExpiredIDs")
	defer span.End()

	return r.rdb.ZRangeByScore(ctx, expiryIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
}
