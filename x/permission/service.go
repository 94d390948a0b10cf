// Package permission decides, for an actor and a resource, whether access
// is granted. One Allow record exists per resource shape; the record for a
// specific target always wins over the any-target record.
package permission

import (
	"context"

	"go.opentelemetry.io/otel"
	"golang.org/x/exp/slices"

	"github.com/custodia-cloud/custodia/core"
)

var tracer = otel.Tracer("permission")

type service struct {
	repository Repository
}

func NewService(repository Repository) core.PermissionService {
	return &service{repository}
}

// Resolve returns the effective Allow for a concrete resource: the
// specific-target record if one exists, else the any-target record for the
// same (type, action).
func (s *service) Resolve(ctx context.Context, resource core.Resource) (core.Allow, error) {
	ctx, span := tracer.Start(ctx, "Permission.Service.Resolve")
	defer span.End()

	allow, err := s.repository.Get(ctx, resource.Key())
	if err == nil {
		return allow, nil
	}
	if !IsNotFound(err) {
		return core.Allow{}, err
	}

	shapeKey := resource.ShapeKey()
	if shapeKey != resource.Key() {
		allow, err = s.repository.Get(ctx, shapeKey)
		if err == nil {
			return allow, nil
		}
		if !IsNotFound(err) {
			return core.Allow{}, err
		}
	}

	return core.Allow{}, core.NewErrorNotFound()
}

// IsAllowed implements the access decision. A missing Allow record denies.
// The system requester is always granted so that the very first records
// remain writable.
func (s *service) IsAllowed(ctx context.Context, requester core.RequesterContext, resource core.Resource) bool {
	ctx, span := tracer.Start(ctx, "Permission.Service.IsAllowed")
	defer span.End()

	if requester.IsSystem() {
		return true
	}

	allow, err := s.Resolve(ctx, resource)
	if err != nil {
		return false
	}

	switch allow.AuthScope {
	case core.AuthScopePublic:
		return true
	case core.AuthScopeAuthenticated:
		return !requester.IsAnonymous()
	case core.AuthScopeRestricted:
		if requester.IsAnonymous() {
			return false
		}
		if slices.Contains(allow.Users, requester.ActorID) {
			return true
		}
		for _, group := range requester.Groups {
			if slices.Contains(allow.Groups, group) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (s *service) Get(ctx context.Context, shape string) (core.Allow, error) {
	ctx, span := tracer.Start(ctx, "Permission.Service.Get")
	defer span.End()

	if _, err := core.ParseResourceKey(shape); err != nil {
		return core.Allow{}, err
	}

	allow, err := s.repository.Get(ctx, shape)
	if IsNotFound(err) {
		return core.Allow{}, core.NewErrorNotFound()
	}
	return allow, err
}

// Edit partially updates the Allow for a shape, creating it on first write.
func (s *service) Edit(ctx context.Context, shape string, patch core.AllowPatch) (core.Allow, error) {
	ctx, span := tracer.Start(ctx, "Permission.Service.Edit")
	defer span.End()

	if _, err := core.ParseResourceKey(shape); err != nil {
		return core.Allow{}, err
	}

	allow, err := s.repository.Get(ctx, shape)
	if err != nil {
		if !IsNotFound(err) {
			return core.Allow{}, err
		}
		allow = core.Allow{
			Shape:     shape,
			AuthScope: core.AuthScopeRestricted,
			Users:     []string{},
			Groups:    []string{},
		}
	}

	if patch.AuthScope != nil {
		switch *patch.AuthScope {
		case core.AuthScopePublic, core.AuthScopeAuthenticated, core.AuthScopeRestricted:
		default:
			return core.Allow{}, core.NewErrorValidation("unknown auth scope: " + string(*patch.AuthScope))
		}
		allow.AuthScope = *patch.AuthScope
	}
	if patch.Users != nil {
		allow.Users = *patch.Users
	}
	if patch.Groups != nil {
		allow.Groups = *patch.Groups
	}

	return s.repository.Upsert(ctx, allow)
}

func (s *service) List(ctx context.Context) ([]core.Allow, error) {
	ctx, span := tracer.Start(ctx, "Permission.Service.List")
	defer span.End()

	return s.repository.List(ctx)
}
