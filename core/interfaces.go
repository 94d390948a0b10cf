//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

type ActorService interface {
	Create(ctx context.Context, name string, groups []string, credentials []string) (Actor, error)
	Get(ctx context.Context, id string) (Actor, error)
	GetByCredential(ctx context.Context, address string) (Actor, error)
	List(ctx context.Context) ([]Actor, error)
	Delete(ctx context.Context, id string) (Actor, error)
	EditGroups(ctx context.Context, id string, groups []string) (Actor, error)
	AddCredential(ctx context.Context, actorID, address string) (Credential, error)
	RemoveCredential(ctx context.Context, address string) error
	UpsertGroup(ctx context.Context, group Group) (Group, error)
	GetGroup(ctx context.Context, id string) (Group, error)
	ListGroups(ctx context.Context) ([]Group, error)
	DeleteGroup(ctx context.Context, id string) error
	ResolveMembers(ctx context.Context, groupIDs []string) ([]Actor, error)
	Count(ctx context.Context) (int64, error)
}

type PermissionService interface {
	IsAllowed(ctx context.Context, requester RequesterContext, resource Resource) bool
	Resolve(ctx context.Context, resource Resource) (Allow, error)
	Get(ctx context.Context, shape string) (Allow, error)
	Edit(ctx context.Context, shape string, patch AllowPatch) (Allow, error)
	List(ctx context.Context) ([]Allow, error)
}

type PolicyService interface {
	Match(ctx context.Context, op Operation) ([]Policy, error)
	Evaluate(ctx context.Context, request Request) (EvaluationResult, error)
	Add(ctx context.Context, name string, specifier PolicySpecifier, rule Rule) (Policy, error)
	Edit(ctx context.Context, id string, name *string, specifier *PolicySpecifier, rule *Rule) (Policy, error)
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Policy, error)
	List(ctx context.Context) ([]Policy, error)
}

// CreateRequestOptions are the caller-supplied attributes of a new request.
type CreateRequestOptions struct {
	Title            string
	Summary          string
	Plan             ExecutionPlan
	ExecutionDT      *time.Time
	DeduplicationKey *string
	Tags             []string
}

type RequestService interface {
	Create(ctx context.Context, requester RequesterContext, op Operation, opts CreateRequestOptions) (Request, error)
	Approve(ctx context.Context, requester RequesterContext, id string, decision Decision, reason string) (Request, error)
	Cancel(ctx context.Context, requester RequesterContext, id string, reason string) (Request, error)
	Get(ctx context.Context, requester RequesterContext, id string) (Request, error)
	List(ctx context.Context, requester RequesterContext, filter RequestFilter) ([]Request, error)
	CompleteExecution(ctx context.Context, id string, outcome ExecutionOutcome, reason string) (Request, error)
	PromoteScheduled(ctx context.Context, now time.Time) (int, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
	CountByStatus(ctx context.Context) (map[RequestStatus]int64, error)
}

// ExecutorService runs the operation carried by a request whose policy is
// satisfied. OutcomeProcessing means an external executor owns the action
// and will report back through CompleteExecution.
type ExecutorService interface {
	Execute(ctx context.Context, request Request) (ExecutionOutcome, string)
}

// DispatchService is the background reactor: expiration sweep and
// promotion of scheduled requests.
type DispatchService interface {
	Boot()
}

type SocketManager interface {
	Subscribe(conn *websocket.Conn, requests []string)
	Unsubscribe(conn *websocket.Conn)
}

type EventService interface {
	Publish(ctx context.Context, event Event) error
}
