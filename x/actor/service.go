// Package actor manages governable identities, their external credentials,
// and named groups.
package actor

import (
	"context"
	"errors"

	"github.com/rs/xid"
	"golang.org/x/exp/slices"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/custodia-cloud/custodia/core"
)

var tracer = otel.Tracer("actor")

type service struct {
	repository Repository
}

func NewService(repository Repository) core.ActorService {
	return &service{repository}
}

func (s *service) Create(ctx context.Context, name string, groups []string, credentials []string) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.Create")
	defer span.End()

	if name == "" {
		return core.Actor{}, core.NewErrorValidation("actor name is required")
	}

	for _, groupID := range groups {
		if _, err := s.repository.GetGroup(ctx, groupID); err != nil {
			return core.Actor{}, core.NewErrorValidation("unknown group: " + groupID)
		}
	}

	for _, address := range credentials {
		if !core.IsCredentialAddress(address) {
			return core.Actor{}, core.NewErrorValidation("malformed credential address: " + address)
		}
	}

	actor := core.Actor{
		ID:     xid.New().String(),
		Name:   name,
		Groups: groups,
	}

	actor, err := s.repository.CreateActor(ctx, actor)
	if err != nil {
		return core.Actor{}, err
	}

	for _, address := range credentials {
		_, err := s.repository.CreateCredential(ctx, core.Credential{
			Address: address,
			ActorID: actor.ID,
		})
		if err != nil {
			return core.Actor{}, err
		}
	}

	return actor, nil
}

func (s *service) Get(ctx context.Context, id string) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.Get")
	defer span.End()

	actor, err := s.repository.GetActor(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Actor{}, core.NewErrorNotFound()
	}
	return actor, err
}

// GetByCredential resolves an external credential address into its actor.
func (s *service) GetByCredential(ctx context.Context, address string) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.GetByCredential")
	defer span.End()

	credential, err := s.repository.GetCredential(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Actor{}, core.NewErrorNotFound()
		}
		return core.Actor{}, err
	}

	return s.Get(ctx, credential.ActorID)
}

func (s *service) List(ctx context.Context) ([]core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.List")
	defer span.End()

	return s.repository.ListActors(ctx)
}

func (s *service) Delete(ctx context.Context, id string) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.Delete")
	defer span.End()

	credentials, err := s.repository.ListCredentials(ctx, id)
	if err != nil {
		return core.Actor{}, err
	}
	for _, credential := range credentials {
		if err := s.repository.DeleteCredential(ctx, credential.Address); err != nil {
			return core.Actor{}, err
		}
	}

	deleted, err := s.repository.DeleteActor(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Actor{}, core.NewErrorNotFound()
	}
	return deleted, err
}

func (s *service) EditGroups(ctx context.Context, id string, groups []string) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.EditGroups")
	defer span.End()

	for _, groupID := range groups {
		if _, err := s.repository.GetGroup(ctx, groupID); err != nil {
			return core.Actor{}, core.NewErrorValidation("unknown group: " + groupID)
		}
	}

	actor, err := s.Get(ctx, id)
	if err != nil {
		return core.Actor{}, err
	}

	actor.Groups = groups
	return s.repository.UpdateActor(ctx, actor)
}

func (s *service) AddCredential(ctx context.Context, actorID, address string) (core.Credential, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.AddCredential")
	defer span.End()

	if !core.IsCredentialAddress(address) {
		return core.Credential{}, core.NewErrorValidation("malformed credential address: " + address)
	}

	if _, err := s.Get(ctx, actorID); err != nil {
		return core.Credential{}, err
	}

	if _, err := s.repository.GetCredential(ctx, address); err == nil {
		return core.Credential{}, core.NewErrorAlreadyExists()
	}

	return s.repository.CreateCredential(ctx, core.Credential{
		Address: address,
		ActorID: actorID,
	})
}

func (s *service) RemoveCredential(ctx context.Context, address string) error {
	ctx, span := tracer.Start(ctx, "Actor.Service.RemoveCredential")
	defer span.End()

	return s.repository.DeleteCredential(ctx, address)
}

func (s *service) UpsertGroup(ctx context.Context, group core.Group) (core.Group, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.UpsertGroup")
	defer span.End()

	if group.Name == "" {
		return core.Group{}, core.NewErrorValidation("group name is required")
	}
	if group.ID == "" {
		group.ID = xid.New().String()
	}

	return s.repository.UpsertGroup(ctx, group)
}

func (s *service) GetGroup(ctx context.Context, id string) (core.Group, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.GetGroup")
	defer span.End()

	group, err := s.repository.GetGroup(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Group{}, core.NewErrorNotFound()
	}
	return group, err
}

func (s *service) ListGroups(ctx context.Context) ([]core.Group, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.ListGroups")
	defer span.End()

	return s.repository.ListGroups(ctx)
}

// DeleteGroup removes the group and scrubs it from every member's list.
func (s *service) DeleteGroup(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Actor.Service.DeleteGroup")
	defer span.End()

	members, err := s.repository.GetMembersOf(ctx, []string{id})
	if err != nil {
		return err
	}
	for _, member := range members {
		member.Groups = slices.DeleteFunc(member.Groups, func(g string) bool { return g == id })
		if _, err := s.repository.UpdateActor(ctx, member); err != nil {
			return err
		}
	}

	return s.repository.DeleteGroup(ctx, id)
}

func (s *service) ResolveMembers(ctx context.Context, groupIDs []string) ([]core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.ResolveMembers")
	defer span.End()

	if len(groupIDs) == 0 {
		return nil, nil
	}

	return s.repository.GetMembersOf(ctx, groupIDs)
}

func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Actor.Service.Count")
	defer span.End()

	return s.repository.Count(ctx)
}
