package request

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/custodia-cloud/custodia/core"
	mock_core "github.com/custodia-cloud/custodia/core/mock"
	"github.com/custodia-cloud/custodia/util"
)

var testConfig = util.Config{
	Custodia: util.Custodia{
		DefaultRequestTTL: 3600,
		SweepInterval:     60,
	},
}

// memoryRepository is an in-memory Repository for exercising the lifecycle
// service without postgres.
type memoryRepository struct {
	mu       sync.Mutex
	requests map[string]core.Request
	expiry   map[string]time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		requests: make(map[string]core.Request),
		expiry:   make(map[string]time.Time),
	}
}

func (r *memoryRepository) Create(ctx context.Context, request core.Request) (core.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.CDate = time.Now()
	r.requests[request.ID] = request
	return request, nil
}

func (r *memoryRepository) Get(ctx context.Context, id string) (core.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return core.Request{}, core.NewErrorNotFound()
	}
	return request, nil
}

func (r *memoryRepository) Update(ctx context.Context, request core.Request) (core.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.requests[request.ID]
	if !ok {
		return core.Request{}, core.NewErrorNotFound()
	}
	request.Approvals = stored.Approvals
	r.requests[request.ID] = request
	return request, nil
}

func (r *memoryRepository) List(ctx context.Context, filter core.RequestFilter) ([]core.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []core.Request
	for _, request := range r.requests {
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		if filter.RequestedBy != "" && request.RequestedBy != filter.RequestedBy {
			continue
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (r *memoryRepository) GetLiveByDeduplicationKey(ctx context.Context, key string) (core.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, request := range r.requests {
		if request.DeduplicationKey != nil && *request.DeduplicationKey == key && !request.Status.IsTerminal() {
			return request, nil
		}
	}
	return core.Request{}, core.NewErrorNotFound()
}

func (r *memoryRepository) ListScheduledBefore(ctx context.Context, now time.Time) ([]core.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []core.Request
	for _, request := range r.requests {
		if request.Status == core.RequestStatusScheduled && request.ExecutionDT != nil && !request.ExecutionDT.After(now) {
			due = append(due, request)
		}
	}
	return due, nil
}

func (r *memoryRepository) ListCreatedByRequester(ctx context.Context, requester string) ([]core.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var open []core.Request
	for _, request := range r.requests {
		if request.RequestedBy == requester && request.Status == core.RequestStatusCreated {
			open = append(open, request)
		}
	}
	return open, nil
}

func (r *memoryRepository) CreateApproval(ctx context.Context, approval core.Approval) (core.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[approval.RequestID]
	if !ok {
		return core.Approval{}, core.NewErrorNotFound()
	}
	for _, existing := range request.Approvals {
		if existing.ApproverID == approval.ApproverID {
			return core.Approval{}, core.NewErrorAlreadyDecided()
		}
	}
	approval.CDate = time.Now()
	request.Approvals = append(request.Approvals, approval)
	r.requests[approval.RequestID] = request
	return approval, nil
}

func (r *memoryRepository) CountByStatus(ctx context.Context) (map[core.RequestStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[core.RequestStatus]int64)
	for _, request := range r.requests {
		counts[request.Status]++
	}
	return counts, nil
}

func (r *memoryRepository) AddExpiry(ctx context.Context, id string, expiration time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expiry[id] = expiration
	return nil
}

func (r *memoryRepository) RemoveExpiry(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.expiry, id)
	return nil
}

func (r *memoryRepository) ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, expiration := range r.expiry {
		if !expiration.After(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func knownActor(id string) core.RequesterContext {
	return core.RequesterContext{
		ActorID: id,
		Type:    core.KnownActor,
		Tags:    core.NewTags(),
	}
}

func testOperation() core.Operation {
	return core.Operation{
		Type:    core.OpAddGroup,
		Payload: json.RawMessage(`{"name":"operators"}`),
	}
}

// setupService wires the lifecycle service over the in-memory repository.
// Policy evaluation approves once a request has reached quorum votes.
func setupService(t *testing.T, repo Repository, quorum int) core.RequestService {
	ctrl := gomock.NewController(t)

	mockPermission := mock_core.NewMockPermissionService(ctrl)
	mockPermission.EXPECT().IsAllowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()

	mockPolicy := mock_core.NewMockPolicyService(ctrl)
	mockPolicy.EXPECT().Evaluate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, request core.Request) (core.EvaluationResult, error) {
			rejected := 0
			approved := 0
			for _, approval := range request.Approvals {
				if approval.Status == core.DecisionRejected {
					rejected++
				} else {
					approved++
				}
			}
			if rejected > 0 {
				return core.EvaluationRejected, nil
			}
			if approved >= quorum {
				return core.EvaluationApproved, nil
			}
			return core.EvaluationUnmet, nil
		},
	).AnyTimes()

	mockExecutor := mock_core.NewMockExecutorService(ctrl)
	mockExecutor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(core.OutcomeCompleted, "done").AnyTimes()

	mockEvent := mock_core.NewMockEventService(ctrl)
	mockEvent.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return NewService(repo, mockPermission, mockPolicy, mockExecutor, mockEvent, testConfig)
}

func TestImmediateLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 2)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCreated, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.Contains(t, repo.expiry, created.ID)

	first, err := service.Approve(ctx, knownActor("bob"), created.ID, core.DecisionApproved, "lgtm")
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCreated, first.Status)
	assert.Len(t, first.Approvals, 1)

	second, err := service.Approve(ctx, knownActor("carol"), created.ID, core.DecisionApproved, "")
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCompleted, second.Status)
	assert.Equal(t, "done", second.StatusReason)
	assert.NotContains(t, repo.expiry, created.ID)
}

func TestRejectionShortCircuits(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 2)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	rejected, err := service.Approve(ctx, knownActor("bob"), created.ID, core.DecisionRejected, "no")
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusRejected, rejected.Status)
	assert.Equal(t, "rejected by policy", rejected.StatusReason)
}

func TestDoubleVoteIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 3)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	_, err = service.Approve(ctx, knownActor("bob"), created.ID, core.DecisionApproved, "")
	assert.NoError(t, err)

	_, err = service.Approve(ctx, knownActor("bob"), created.ID, core.DecisionRejected, "changed my mind")
	assert.Error(t, err)
	assert.IsType(t, core.ErrorAlreadyDecided{}, err)

	stored, err := repo.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Len(t, stored.Approvals, 1)
	assert.Equal(t, core.RequestStatusCreated, stored.Status)
}

func TestApproveDecidedRequest(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 2)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	_, err = service.Cancel(ctx, knownActor("alice"), created.ID, "")
	assert.NoError(t, err)

	_, err = service.Approve(ctx, knownActor("bob"), created.ID, core.DecisionApproved, "")
	assert.Error(t, err)
	assert.IsType(t, core.ErrorInvalidTransition{}, err)
}

func TestAnonymousAndSystemVotersAreNotEligible(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 2)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	_, err = service.Approve(ctx, core.RequesterContext{}, created.ID, core.DecisionApproved, "")
	assert.IsType(t, core.ErrorNotEligible{}, err)

	system := core.RequesterContext{ActorID: "system", Type: core.SystemAgent, Tags: core.NewTags()}
	_, err = service.Approve(ctx, system, created.ID, core.DecisionApproved, "")
	assert.IsType(t, core.ErrorNotEligible{}, err)
}

func TestScheduledPlanPromotion(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 1)

	executionDT := time.Now().Add(time.Hour)
	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title:       "add operators group",
		Plan:        core.ExecutionPlanScheduled,
		ExecutionDT: &executionDT,
	})
	assert.NoError(t, err)

	scheduled, err := service.Approve(ctx, knownActor("bob"), created.ID, core.DecisionApproved, "")
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusScheduled, scheduled.Status)

	promoted, err := service.PromoteScheduled(ctx, executionDT.Add(time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, 1, promoted)

	stored, err := repo.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCompleted, stored.Status)
}

func TestScheduledPlanValidation(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 1)

	past := time.Now().Add(-time.Hour)
	_, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title:       "backdated",
		Plan:        core.ExecutionPlanScheduled,
		ExecutionDT: &past,
	})
	assert.IsType(t, core.ErrorValidation{}, err)

	_, err = service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "dated immediate",
		Plan:  core.ExecutionPlanImmediate,
		ExecutionDT: &past,
	})
	assert.IsType(t, core.ErrorValidation{}, err)
}

func TestDeduplicationReturnsLiveRequest(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 2)

	key := "rotate-signing-key"
	first, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title:            "rotate",
		DeduplicationKey: &key,
	})
	assert.NoError(t, err)

	second, err := service.Create(ctx, knownActor("bob"), testOperation(), core.CreateRequestOptions{
		Title:            "rotate again",
		DeduplicationKey: &key,
	})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = service.Cancel(ctx, knownActor("alice"), first.ID, "")
	assert.NoError(t, err)

	third, err := service.Create(ctx, knownActor("bob"), testOperation(), core.CreateRequestOptions{
		Title:            "rotate after cancel",
		DeduplicationKey: &key,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestCancelAuthorization(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 2)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	_, err = service.Cancel(ctx, knownActor("mallory"), created.ID, "")
	assert.IsType(t, core.ErrorUnauthorized{}, err)

	cancelled, err := service.Cancel(ctx, knownActor("alice"), created.ID, "")
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCancelled, cancelled.Status)
	assert.Equal(t, "cancelled by alice", cancelled.StatusReason)

	_, err = service.Cancel(ctx, knownActor("alice"), created.ID, "")
	assert.IsType(t, core.ErrorInvalidTransition{}, err)
}

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 2)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	swept, err := service.SweepExpired(ctx, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 0, swept)

	swept, err = service.SweepExpired(ctx, created.ExpirationDT.Add(time.Second))
	assert.NoError(t, err)
	assert.Equal(t, 1, swept)

	stored, err := repo.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCancelled, stored.Status)
	assert.Equal(t, "expired", stored.StatusReason)
	assert.NotContains(t, repo.expiry, created.ID)
}

func TestSweepDropsStaleIndexEntries(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 1)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	approved, err := service.Approve(ctx, knownActor("bob"), created.ID, core.DecisionApproved, "")
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCompleted, approved.Status)

	// force a stale entry back into the index
	assert.NoError(t, repo.AddExpiry(ctx, created.ID, created.ExpirationDT))

	swept, err := service.SweepExpired(ctx, created.ExpirationDT.Add(time.Second))
	assert.NoError(t, err)
	assert.Equal(t, 0, swept)
	assert.NotContains(t, repo.expiry, created.ID)
}

func TestCompleteExecution(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 2)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	_, err = service.CompleteExecution(ctx, created.ID, core.OutcomeCompleted, "settled")
	assert.IsType(t, core.ErrorInvalidTransition{}, err)

	stored, _ := repo.Get(ctx, created.ID)
	stored.Status = core.RequestStatusProcessing
	_, err = repo.Update(ctx, stored)
	assert.NoError(t, err)

	completed, err := service.CompleteExecution(ctx, created.ID, core.OutcomeCompleted, "settled")
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCompleted, completed.Status)
	assert.Equal(t, "settled", completed.StatusReason)
}

func TestPolicyConfigurationErrorSurfaces(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	ctrl := gomock.NewController(t)

	mockPermission := mock_core.NewMockPermissionService(ctrl)
	mockPermission.EXPECT().IsAllowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()

	mockPolicy := mock_core.NewMockPolicyService(ctrl)
	mockPolicy.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
		Return(core.EvaluationUnmet, core.NewErrorConfiguration("no policy matches operation addGroup")).
		AnyTimes()

	service := NewService(repo, mockPermission, mockPolicy, nil, nil, testConfig)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	voted, err := service.Approve(ctx, knownActor("bob"), created.ID, core.DecisionApproved, "")
	assert.Error(t, err)
	assert.IsType(t, core.ErrorConfiguration{}, err)
	assert.Equal(t, core.RequestStatusCreated, voted.Status)
	assert.Len(t, voted.Approvals, 1)
	assert.Equal(t, "Configuration Error: no policy matches operation addGroup", voted.StatusReason)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 2)

	_, err := service.Create(ctx, core.RequesterContext{}, testOperation(), core.CreateRequestOptions{
		Title: "anonymous",
	})
	assert.IsType(t, core.ErrorUnauthorized{}, err)

	_, err = service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{})
	assert.IsType(t, core.ErrorValidation{}, err)
}

func TestRemovedActorCascade(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, 1)

	orphan, err := service.Create(ctx, knownActor("victor"), testOperation(), core.CreateRequestOptions{
		Title: "victor's open request",
	})
	assert.NoError(t, err)

	removal, err := service.Create(ctx, knownActor("alice"), core.Operation{
		Type:    core.OpRemoveActor,
		Payload: json.RawMessage(`{"actorID":"victor"}`),
	}, core.CreateRequestOptions{
		Title: "remove victor",
	})
	assert.NoError(t, err)

	removed, err := service.Approve(ctx, knownActor("bob"), removal.ID, core.DecisionApproved, "")
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCompleted, removed.Status)

	stored, err := repo.Get(ctx, orphan.ID)
	assert.NoError(t, err)
	assert.Equal(t, core.RequestStatusCancelled, stored.Status)
	assert.Equal(t, "requester removed", stored.StatusReason)
}

func TestVisibilityGating(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	ctrl := gomock.NewController(t)

	mockPermission := mock_core.NewMockPermissionService(ctrl)
	mockPermission.EXPECT().IsAllowed(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, requester core.RequesterContext, resource core.Resource) bool {
			return requester.ActorID == "alice" || requester.ActorID == "auditor"
		},
	).AnyTimes()

	mockPolicy := mock_core.NewMockPolicyService(ctrl)
	mockEvent := mock_core.NewMockEventService(ctrl)
	mockEvent.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	service := NewService(repo, mockPermission, mockPolicy, nil, mockEvent, testConfig)

	created, err := service.Create(ctx, knownActor("alice"), testOperation(), core.CreateRequestOptions{
		Title: "add operators group",
	})
	assert.NoError(t, err)

	_, err = service.Get(ctx, knownActor("mallory"), created.ID)
	assert.IsType(t, core.ErrorUnauthorized{}, err)

	_, err = service.Get(ctx, knownActor("auditor"), created.ID)
	assert.NoError(t, err)

	visible, err := service.List(ctx, knownActor("mallory"), core.RequestFilter{})
	assert.NoError(t, err)
	assert.Len(t, visible, 0)

	visible, err = service.List(ctx, knownActor("alice"), core.RequestFilter{})
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
}
