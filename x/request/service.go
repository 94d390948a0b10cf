package request

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel"

	"github.com/custodia-cloud/custodia/core"
	"github.com/custodia-cloud/custodia/util"
)

var tracer = otel.Tracer("request")

type service struct {
	repository Repository
	permission core.PermissionService
	policy     core.PolicyService
	executor   core.ExecutorService
	event      core.EventService
	config     util.Config
	locks      sync.Map
}

// NewService builds the request lifecycle service. The executor runs
// operations whose policy is satisfied; outcomes feed back through the
// state machine in core.
func NewService(
	repository Repository,
	permission core.PermissionService,
	policy core.PolicyService,
	executor core.ExecutorService,
	event core.EventService,
	config util.Config,
) core.RequestService {
	return &service{
		repository: repository,
		permission: permission,
		policy:     policy,
		executor:   executor,
		event:      event,
		config:     config,
	}
}

// lock serializes lifecycle mutations per request id. Concurrent votes on
// the same request are applied one at a time.
func (s *service) lock(id string) func() {
	value, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}

func (s *service) Create(ctx context.Context, requester core.RequesterContext, op core.Operation, opts core.CreateRequestOptions) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Service.Create")
	defer span.End()

	if requester.IsAnonymous() {
		return core.Request{}, core.NewErrorUnauthorized()
	}

	if opts.Title == "" {
		return core.Request{}, core.NewErrorValidation("title must not be empty")
	}

	resources, err := op.Resources()
	if err != nil {
		return core.Request{}, err
	}
	for _, resource := range resources {
		if !s.permission.IsAllowed(ctx, requester, resource) {
			return core.Request{}, core.NewErrorUnauthorized()
		}
	}

	plan := opts.Plan
	if plan == "" {
		plan = core.ExecutionPlanImmediate
	}
	switch plan {
	case core.ExecutionPlanImmediate:
		if opts.ExecutionDT != nil {
			return core.Request{}, core.NewErrorValidation("immediate plan does not take an execution time")
		}
	case core.ExecutionPlanScheduled:
		if opts.ExecutionDT == nil || !opts.ExecutionDT.After(time.Now()) {
			return core.Request{}, core.NewErrorValidation("scheduled plan requires a future execution time")
		}
	default:
		return core.Request{}, core.NewErrorValidation("unknown execution plan " + string(plan))
	}

	if opts.DeduplicationKey != nil && *opts.DeduplicationKey != "" {
		existing, err := s.repository.GetLiveByDeduplicationKey(ctx, *opts.DeduplicationKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, core.ErrorNotFound{}) {
			return core.Request{}, err
		}
	}

	document, err := op.MarshalString()
	if err != nil {
		return core.Request{}, err
	}

	ttl := time.Duration(s.config.Custodia.DefaultRequestTTL) * time.Second
	created := core.Request{
		ID:               xid.New().String(),
		RequestedBy:      requester.ActorID,
		OperationType:    string(op.Type),
		Operation:        document,
		Title:            opts.Title,
		Summary:          opts.Summary,
		Status:           core.RequestStatusCreated,
		ExecutionPlan:    plan,
		ExecutionDT:      opts.ExecutionDT,
		ExpirationDT:     time.Now().Add(ttl),
		DeduplicationKey: opts.DeduplicationKey,
		Tags:             opts.Tags,
	}

	created, err = s.repository.Create(ctx, created)
	if err != nil {
		return core.Request{}, err
	}

	if err := s.repository.AddExpiry(ctx, created.ID, created.ExpirationDT); err != nil {
		slog.WarnContext(ctx, "failed to index request expiry",
			slog.String("request", created.ID),
			slog.String("error", err.Error()),
		)
	}

	s.publish(ctx, created, "")

	return created, nil
}

func (s *service) Approve(ctx context.Context, requester core.RequesterContext, id string, decision core.Decision, reason string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Service.Approve")
	defer span.End()

	if requester.IsAnonymous() || requester.IsSystem() {
		return core.Request{}, core.NewErrorNotEligible()
	}

	unlock := s.lock(id)
	defer unlock()

	request, err := s.repository.Get(ctx, id)
	if err != nil {
		return core.Request{}, err
	}

	if request.Status != core.RequestStatusCreated {
		return request, core.NewErrorInvalidTransition(request.Status, core.RequestStatus(decision))
	}

	for _, approval := range request.Approvals {
		if approval.ApproverID == requester.ActorID {
			return request, core.NewErrorAlreadyDecided()
		}
	}

	if !s.permission.IsAllowed(ctx, requester, core.NewResource(core.ResourceRequest, core.ActionRead, id)) {
		return request, core.NewErrorNotEligible()
	}

	approval := core.Approval{
		RequestID:  id,
		ApproverID: requester.ActorID,
		Status:     decision,
		Reason:     reason,
	}
	approval, err = s.repository.CreateApproval(ctx, approval)
	if err != nil {
		return request, err
	}
	request.Approvals = append(request.Approvals, approval)

	result, err := s.policy.Evaluate(ctx, request)
	if err != nil {
		var confErr core.ErrorConfiguration
		if errors.As(err, &confErr) {
			// The vote is recorded but the request cannot resolve until
			// an operator repairs the policy set. Keep the cause visible.
			request.StatusReason = confErr.Error()
			if updated, saveErr := s.repository.Update(ctx, request); saveErr == nil {
				request = updated
			}
		}
		return request, err
	}

	switch result {
	case core.EvaluationRejected:
		return s.transition(ctx, request, core.RequestStatusRejected, "rejected by policy")
	case core.EvaluationApproved:
		return s.promote(ctx, request)
	default:
		return request, nil
	}
}

// promote moves a freshly approved request toward execution according to
// its plan.
func (s *service) promote(ctx context.Context, request core.Request) (core.Request, error) {
	request, err := s.transition(ctx, request, core.RequestStatusApproved, "quorum satisfied")
	if err != nil {
		return request, err
	}

	if request.ExecutionPlan == core.ExecutionPlanScheduled {
		return s.transition(ctx, request, core.RequestStatusScheduled, "")
	}

	request, err = s.transition(ctx, request, core.RequestStatusProcessing, "")
	if err != nil {
		return request, err
	}

	return s.execute(ctx, request)
}

// execute hands the request to the executor and applies the outcome.
func (s *service) execute(ctx context.Context, request core.Request) (core.Request, error) {
	outcome, reason := s.executor.Execute(ctx, request)

	switch outcome {
	case core.OutcomeCompleted:
		request, err := s.transition(ctx, request, core.RequestStatusCompleted, reason)
		if err != nil {
			return request, err
		}
		s.cascadeRemovedActor(ctx, request)
		return request, nil
	case core.OutcomeFailed:
		return s.transition(ctx, request, core.RequestStatusFailed, reason)
	default:
		// An external executor owns the action now and will report back
		// through CompleteExecution.
		return request, nil
	}
}

// cascadeRemovedActor cancels the open requests of an actor that has just
// been removed. Their votes elsewhere are left in place and simply stop
// counting once the actor is gone from eligible sets.
func (s *service) cascadeRemovedActor(ctx context.Context, request core.Request) {
	if request.OperationType != string(core.OpRemoveActor) {
		return
	}

	op, err := request.ParseOperation()
	if err != nil {
		return
	}
	payload, err := core.DecodePayload[core.RemoveActorPayload](op)
	if err != nil {
		return
	}

	orphaned, err := s.repository.ListCreatedByRequester(ctx, payload.ActorID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list requests of removed actor",
			slog.String("actor", payload.ActorID),
			slog.String("error", err.Error()),
		)
		return
	}

	for _, open := range orphaned {
		if _, err := s.transition(ctx, open, core.RequestStatusCancelled, "requester removed"); err != nil {
			slog.ErrorContext(ctx, "failed to cancel request of removed actor",
				slog.String("request", open.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *service) Cancel(ctx context.Context, requester core.RequesterContext, id string, reason string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Service.Cancel")
	defer span.End()

	unlock := s.lock(id)
	defer unlock()

	request, err := s.repository.Get(ctx, id)
	if err != nil {
		return core.Request{}, err
	}

	if !requester.IsSystem() && requester.ActorID != request.RequestedBy && !requester.Tags.Has("_admin") {
		return core.Request{}, core.NewErrorUnauthorized()
	}

	if request.Status != core.RequestStatusCreated {
		return request, core.NewErrorInvalidTransition(request.Status, core.RequestStatusCancelled)
	}

	if reason == "" {
		reason = "cancelled by " + requester.ActorID
	}

	return s.transition(ctx, request, core.RequestStatusCancelled, reason)
}

func (s *service) Get(ctx context.Context, requester core.RequesterContext, id string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Service.Get")
	defer span.End()

	request, err := s.repository.Get(ctx, id)
	if err != nil {
		return core.Request{}, err
	}

	if !s.canRead(ctx, requester, request) {
		return core.Request{}, core.NewErrorUnauthorized()
	}

	return request, nil
}

func (s *service) List(ctx context.Context, requester core.RequesterContext, filter core.RequestFilter) ([]core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Service.List")
	defer span.End()

	requests, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	visible := make([]core.Request, 0, len(requests))
	for _, request := range requests {
		if s.canRead(ctx, requester, request) {
			visible = append(visible, request)
		}
	}
	return visible, nil
}

func (s *service) canRead(ctx context.Context, requester core.RequesterContext, request core.Request) bool {
	if requester.IsSystem() {
		return true
	}
	if requester.ActorID == request.RequestedBy {
		return true
	}
	return s.permission.IsAllowed(ctx, requester, core.NewResource(core.ResourceRequest, core.ActionRead, request.ID))
}

func (s *service) CompleteExecution(ctx context.Context, id string, outcome core.ExecutionOutcome, reason string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Request.Service.CompleteExecution")
	defer span.End()

	unlock := s.lock(id)
	defer unlock()

	request, err := s.repository.Get(ctx, id)
	if err != nil {
		return core.Request{}, err
	}

	var target core.RequestStatus
	switch outcome {
	case core.OutcomeCompleted:
		target = core.RequestStatusCompleted
	case core.OutcomeFailed:
		target = core.RequestStatusFailed
	default:
		return request, core.NewErrorValidation("outcome must be completed or failed")
	}

	request, err = s.transition(ctx, request, target, reason)
	if err != nil {
		return request, err
	}

	if target == core.RequestStatusCompleted {
		s.cascadeRemovedActor(ctx, request)
	}

	return request, nil
}

func (s *service) PromoteScheduled(ctx context.Context, now time.Time) (int, error) {
	ctx, span := tracer.Start(ctx, "Request.Service.PromoteScheduled")
	defer span.End()

	due, err := s.repository.ListScheduledBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, request := range due {
		unlock := s.lock(request.ID)

		request, err := s.repository.Get(ctx, request.ID)
		if err != nil || request.Status != core.RequestStatusScheduled {
			unlock()
			continue
		}

		request, err = s.transition(ctx, request, core.RequestStatusProcessing, "")
		if err != nil {
			unlock()
			slog.ErrorContext(ctx, "failed to promote scheduled request",
				slog.String("request", request.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		if _, err := s.execute(ctx, request); err != nil {
			slog.ErrorContext(ctx, "failed to execute scheduled request",
				slog.String("request", request.ID),
				slog.String("error", err.Error()),
			)
		}
		unlock()
		promoted++
	}

	return promoted, nil
}

func (s *service) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	ctx, span := tracer.Start(ctx, "Request.Service.SweepExpired")
	defer span.End()

	ids, err := s.repository.ListExpiredIDs(ctx, now)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, id := range ids {
		unlock := s.lock(id)

		request, err := s.repository.Get(ctx, id)
		if err != nil {
			unlock()
			s.repository.RemoveExpiry(ctx, id)
			continue
		}

		if request.Status != core.RequestStatusCreated {
			// The index entry outlived the pending state. Drop it.
			unlock()
			s.repository.RemoveExpiry(ctx, id)
			continue
		}

		if _, err := s.transition(ctx, request, core.RequestStatusCancelled, "expired"); err != nil {
			unlock()
			slog.ErrorContext(ctx, "failed to expire request",
				slog.String("request", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		unlock()
		swept++
	}

	return swept, nil
}

func (s *service) CountByStatus(ctx context.Context) (map[core.RequestStatus]int64, error) {
	ctx, span := tracer.Start(ctx, "Request.Service.CountByStatus")
	defer span.End()

	return s.repository.CountByStatus(ctx)
}

// transition applies one edge of the request state machine, persists it,
// and emits the lifecycle event.
func (s *service) transition(ctx context.Context, request core.Request, to core.RequestStatus, reason string) (core.Request, error) {
	if !core.CanTransition(request.Status, to) {
		return request, core.NewErrorInvalidTransition(request.Status, to)
	}

	request.Status = to
	request.StatusReason = reason

	request, err := s.repository.Update(ctx, request)
	if err != nil {
		return request, err
	}

	if request.Status != core.RequestStatusCreated {
		if err := s.repository.RemoveExpiry(ctx, request.ID); err != nil {
			slog.WarnContext(ctx, "failed to drop request expiry index",
				slog.String("request", request.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.publish(ctx, request, reason)

	return request, nil
}

func (s *service) publish(ctx context.Context, request core.Request, reason string) {
	if s.event == nil {
		return
	}
	err := s.event.Publish(ctx, core.Event{
		RequestID: request.ID,
		Status:    request.Status,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish request event",
			slog.String("request", request.ID),
			slog.String("error", err.Error()),
		)
	}
}
