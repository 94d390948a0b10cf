package actor

import (
	"context"
	"encoding/json"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/custodia-cloud/custodia/core"
)

const (
	actorCachePrefix      = "actor:"
	credentialCachePrefix = "credential:"
	actorCacheTTL         = 300 // 5 minutes
)

type Repository interface {
	CreateActor(ctx context.Context, actor core.Actor) (core.Actor, error)
	GetActor(ctx context.Context, id string) (core.Actor, error)
	UpdateActor(ctx context.Context, actor core.Actor) (core.Actor, error)
	DeleteActor(ctx context.Context, id string) (core.Actor, error)
	ListActors(ctx context.Context) ([]core.Actor, error)
	GetMembersOf(ctx context.Context, groupIDs []string) ([]core.Actor, error)
	Count(ctx context.Context) (int64, error)

	CreateCredential(ctx context.Context, credential core.Credential) (core.Credential, error)
	GetCredential(ctx context.Context, address string) (core.Credential, error)
	DeleteCredential(ctx context.Context, address string) error
	ListCredentials(ctx context.Context, actorID string) ([]core.Credential, error)

	UpsertGroup(ctx context.Context, group core.Group) (core.Group, error)
	GetGroup(ctx context.Context, id string) (core.Group, error)
	DeleteGroup(ctx context.Context, id string) error
	ListGroups(ctx context.Context) ([]core.Group, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {
	return &repository{db, mc}
}

func (r *repository) CreateActor(ctx context.Context, actor core.Actor) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.CreateActor")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(&actor).Error; err != nil {
		return core.Actor{}, err
	}

	return actor, nil
}

func (r *repository) GetActor(ctx context.Context, id string) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.GetActor")
	defer span.End()

	item, err := r.mc.Get(actorCachePrefix + id)
	if err == nil {
		var actor core.Actor
		if json.Unmarshal(item.Value, &actor) == nil {
			return actor, nil
		}
	}

	var actor core.Actor
	err = r.db.WithContext(ctx).First(&actor, "id = ?", id).Error
	if err != nil {
		return core.Actor{}, err
	}

	if body, err := json.Marshal(actor); err == nil {
		r.mc.Set(&memcache.Item{Key: actorCachePrefix + id, Value: body, Expiration: actorCacheTTL})
	}

	return actor, nil
}

func (r *repository) UpdateActor(ctx context.Context, actor core.Actor) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.UpdateActor")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(&actor).Error; err != nil {
		return core.Actor{}, err
	}

	r.mc.Delete(actorCachePrefix + actor.ID)

	return actor, nil
}

func (r *repository) DeleteActor(ctx context.Context, id string) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.DeleteActor")
	defer span.End()

	var deleted core.Actor
	err := r.db.WithContext(ctx).First(&deleted, "id = ?", id).Error
	if err != nil {
		return core.Actor{}, err
	}

	err = r.db.WithContext(ctx).Delete(&core.Actor{}, "id = ?", id).Error
	if err != nil {
		return core.Actor{}, err
	}

	r.mc.Delete(actorCachePrefix + id)

	return deleted, nil
}

func (r *repository) ListActors(ctx context.Context) ([]core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.ListActors")
	defer span.End()

	var actors []core.Actor
	err := r.db.WithContext(ctx).Find(&actors).Error
	return actors, err
}

// GetMembersOf returns every actor belonging to at least one of the groups.
func (r *repository) GetMembersOf(ctx context.Context, groupIDs []string) ([]core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.GetMembersOf")
	defer span.End()

	var actors []core.Actor
	err := r.db.WithContext(ctx).Where("groups && ?", pq.StringArray(groupIDs)).Find(&actors).Error
	return actors, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.Count")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&core.Actor{}).Count(&count).Error
	return count, err
}

func (r *repository) CreateCredential(ctx context.Context, credential core.Credential) (core.Credential, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.CreateCredential")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(&credential).Error; err != nil {
		return core.Credential{}, err
	}

	return credential, nil
}

func (r *repository) GetCredential(ctx context.Context, address string) (core.Credential, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.GetCredential")
	defer span.End()

	item, err := r.mc.Get(credentialCachePrefix + address)
	if err == nil {
		return core.Credential{Address: address, ActorID: string(item.Value)}, nil
	}

	var credential core.Credential
	err = r.db.WithContext(ctx).First(&credential, "address = ?", address).Error
	if err != nil {
		return core.Credential{}, err
	}

	r.mc.Set(&memcache.Item{
		Key:        credentialCachePrefix + address,
		Value:      []byte(credential.ActorID),
		Expiration: actorCacheTTL,
	})

	return credential, nil
}

func (r *repository) DeleteCredential(ctx context.Context, address string) error {
	ctx, span := tracer.Start(ctx, "Actor.Repository.DeleteCredential")
	defer span.End()

	err := r.db.WithContext(ctx).Delete(&core.Credential{}, "address = ?", address).Error
	if err != nil {
		return err
	}

	r.mc.Delete(credentialCachePrefix + address)

	return nil
}

func (r *repository) ListCredentials(ctx context.Context, actorID string) ([]core.Credential, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.ListCredentials")
	defer span.End()

	var credentials []core.Credential
	err := r.db.WithContext(ctx).Where("actor_id = ?", actorID).Find(&credentials).Error
	return credentials, err
}

func (r *repository) UpsertGroup(ctx context.Context, group core.Group) (core.Group, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.UpsertGroup")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(&group).Error; err != nil {
		return core.Group{}, err
	}

	return group, nil
}

func (r *repository) GetGroup(ctx context.Context, id string) (core.Group, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.GetGroup")
	defer span.End()

	var group core.Group
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	return group, err
}

func (r *repository) DeleteGroup(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Actor.Repository.DeleteGroup")
	defer span.End()

	return r.db.WithContext(ctx).Delete(&core.Group{}, "id = ?", id).Error
}

func (r *repository) ListGroups(ctx context.Context) ([]core.Group, error) {
	ctx, span := tracer.Start(ctx, "Actor.Repository.ListGroups")
	defer span.End()

	var groups []core.Group
	err := r.db.WithContext(ctx).Find(&groups).Error
	return groups, err
}
