package policy

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/custodia-cloud/custodia/core"
	mock_core "github.com/custodia-cloud/custodia/core/mock"
)

type memoryRepository struct {
	mu       sync.Mutex
	policies map[string]core.Policy
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{policies: make(map[string]core.Policy)}
}

func (r *memoryRepository) Create(ctx context.Context, policy core.Policy) (core.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[policy.ID] = policy
	return policy, nil
}

func (r *memoryRepository) Get(ctx context.Context, id string) (core.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	policy, ok := r.policies[id]
	if !ok {
		return core.Policy{}, core.NewErrorNotFound()
	}
	return policy, nil
}

func (r *memoryRepository) Update(ctx context.Context, policy core.Policy) (core.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[policy.ID]; !ok {
		return core.Policy{}, core.NewErrorNotFound()
	}
	r.policies[policy.ID] = policy
	return policy, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[id]; !ok {
		return core.NewErrorNotFound()
	}
	delete(r.policies, id)
	return nil
}

func (r *memoryRepository) List(ctx context.Context) ([]core.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var policies []core.Policy
	for _, policy := range r.policies {
		policies = append(policies, policy)
	}
	return policies, nil
}

func (r *memoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.policies)), nil
}

func storePolicy(t *testing.T, repo *memoryRepository, id string, opType core.OperationType, rule core.Rule) {
	specifierJSON, err := json.Marshal(core.PolicySpecifier{Type: opType})
	assert.NoError(t, err)
	ruleJSON, err := json.Marshal(rule)
	assert.NoError(t, err)
	_, err = repo.Create(context.Background(), core.Policy{
		ID:        id,
		Name:      id,
		Specifier: string(specifierJSON),
		Rule:      string(ruleJSON),
	})
	assert.NoError(t, err)
}

func quorumRule(min uint16) core.Rule {
	return core.Rule{
		Type:        core.RuleQuorum,
		Approvers:   &core.ActorSpecifier{Type: core.SpecifierGroup, IDs: []string{"ops"}},
		MinApproved: min,
	}
}

func requestWith(t *testing.T, opType core.OperationType, approvals ...core.Approval) core.Request {
	op := core.Operation{Type: opType, Payload: json.RawMessage(`{}`)}
	document, err := op.MarshalString()
	assert.NoError(t, err)
	return core.Request{
		ID:            "req0000000000000000a",
		OperationType: string(opType),
		Operation:     document,
		Status:        core.RequestStatusCreated,
		Approvals:     approvals,
	}
}

func vote(approver string, decision core.Decision) core.Approval {
	return core.Approval{ApproverID: approver, Status: decision}
}

// setupService builds the policy service over three eligible ops voters:
// alice, bob and carol.
func setupService(t *testing.T, repo Repository, members ...string) core.PolicyService {
	ctrl := gomock.NewController(t)

	mockActor := mock_core.NewMockActorService(ctrl)
	mockActor.EXPECT().ResolveMembers(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, groupIDs []string) ([]core.Actor, error) {
			var actors []core.Actor
			for _, id := range members {
				actors = append(actors, core.Actor{ID: id, Name: id})
			}
			return actors, nil
		},
	).AnyTimes()
	mockActor.EXPECT().List(gomock.Any()).DoAndReturn(
		func(ctx context.Context) ([]core.Actor, error) {
			var actors []core.Actor
			for _, id := range members {
				actors = append(actors, core.Actor{ID: id, Name: id})
			}
			return actors, nil
		},
	).AnyTimes()

	mockPermission := mock_core.NewMockPermissionService(ctrl)
	mockPermission.EXPECT().IsAllowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()

	return NewService(repo, mockActor, mockPermission)
}

func TestQuorumTwoOfThree(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, quorumRule(2))
	service := setupService(t, repo, "alice", "bob", "carol")

	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationUnmet, result)

	result, err = service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionApproved),
		vote("bob", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationApproved, result)
}

func TestQuorumRejectionArithmetic(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, quorumRule(2))
	service := setupService(t, repo, "alice", "bob", "carol")

	// one rejection leaves two possible approvers, quorum still reachable
	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionRejected),
		vote("bob", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationUnmet, result)

	// two rejections make the quorum unreachable
	result, err = service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionRejected),
		vote("bob", core.DecisionRejected),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationRejected, result)
}

func TestQuorumIgnoresIneligibleVotes(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, quorumRule(2))
	service := setupService(t, repo, "alice", "bob", "carol")

	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionApproved),
		vote("mallory", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationUnmet, result)

	result, err = service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("mallory", core.DecisionRejected),
		vote("eve", core.DecisionRejected),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationUnmet, result)
}

func TestQuorumThresholdClampsToEligible(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, quorumRule(5))
	service := setupService(t, repo, "alice", "bob", "carol")

	// a threshold above the eligible set clamps to it, so the rule stays
	// open with no votes
	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationUnmet, result)

	// and every eligible voter approving satisfies the clamped quorum
	result, err = service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionApproved),
		vote("bob", core.DecisionApproved),
		vote("carol", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationApproved, result)

	// a single rejection makes the clamped quorum of three unreachable
	result, err = service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionApproved),
		vote("bob", core.DecisionRejected),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationRejected, result)
}

func TestQuorumPercentageRoundsUp(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, core.Rule{
		Type:          core.RuleQuorumPercentage,
		Approvers:     &core.ActorSpecifier{Type: core.SpecifierGroup, IDs: []string{"ops"}},
		MinPercentage: 50,
	})
	service := setupService(t, repo, "alice", "bob", "carol")

	// 50% of 3 is 1.5, which rounds up to 2
	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationUnmet, result)

	result, err = service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionApproved),
		vote("bob", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationApproved, result)
}

func TestEmptyEligibleSetRejects(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, quorumRule(1))
	service := setupService(t, repo)

	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationRejected, result)
}

func TestAutoApproved(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, core.Rule{Type: core.RuleAutoApproved})
	service := setupService(t, repo, "alice")

	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationApproved, result)
}

func TestAllOfCombinator(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, core.Rule{
		Type: core.RuleAllOf,
		Rules: []core.Rule{
			quorumRule(1),
			{
				Type:        core.RuleQuorum,
				Approvers:   &core.ActorSpecifier{Type: core.SpecifierId, IDs: []string{"alice"}},
				MinApproved: 1,
			},
		},
	})

	ctrl := gomock.NewController(t)
	mockActor := mock_core.NewMockActorService(ctrl)
	mockActor.EXPECT().ResolveMembers(gomock.Any(), gomock.Any()).Return([]core.Actor{
		{ID: "alice"}, {ID: "bob"}, {ID: "carol"},
	}, nil).AnyTimes()
	mockActor.EXPECT().Get(gomock.Any(), "alice").Return(core.Actor{ID: "alice"}, nil).AnyTimes()
	mockPermission := mock_core.NewMockPermissionService(ctrl)
	mockPermission.EXPECT().IsAllowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()
	service := NewService(repo, mockActor, mockPermission)

	// the group leg is satisfied but the mandatory approver has not voted
	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("bob", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationUnmet, result)

	result, err = service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationApproved, result)
}

func TestAnyOfCombinator(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, core.Rule{
		Type: core.RuleAnyOf,
		Rules: []core.Rule{
			quorumRule(3),
			{Type: core.RuleAutoApproved},
		},
	})
	service := setupService(t, repo, "alice", "bob", "carol")

	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationApproved, result)
}

func TestNotCombinator(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, core.Rule{
		Type: core.RuleNot,
		Rule: &core.Rule{Type: core.RuleAutoApproved},
	})
	service := setupService(t, repo, "alice")

	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationRejected, result)
}

func TestNamedRuleResolution(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "base", core.OpAddGroup, quorumRule(1))
	storePolicy(t, repo, "p1", core.OpRemoveGroup, core.Rule{
		Type:     core.RuleNamed,
		PolicyID: "base",
	})
	service := setupService(t, repo, "alice")

	result, err := service.Evaluate(ctx, requestWith(t, core.OpRemoveGroup,
		vote("alice", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationApproved, result)
}

func TestNamedRuleCycleIsConfigurationError(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, core.Rule{
		Type:     core.RuleNamed,
		PolicyID: "p1",
	})
	service := setupService(t, repo, "alice")

	_, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup))
	assert.Error(t, err)
	assert.IsType(t, core.ErrorConfiguration{}, err)
}

func TestNamedRuleMissingPolicy(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, core.Rule{
		Type:     core.RuleNamed,
		PolicyID: "ghost",
	})
	service := setupService(t, repo, "alice")

	_, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup))
	assert.Error(t, err)
	assert.IsType(t, core.ErrorConfiguration{}, err)
}

func TestNoMatchingPolicy(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "p1", core.OpAddGroup, quorumRule(1))
	service := setupService(t, repo, "alice")

	result, err := service.Evaluate(ctx, requestWith(t, core.OpTransfer))
	assert.Error(t, err)
	assert.IsType(t, core.ErrorConfiguration{}, err)
	assert.Equal(t, core.EvaluationUnmet, result)
}

func TestEvaluateCombinesPoliciesWithOr(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	storePolicy(t, repo, "strict", core.OpAddGroup, quorumRule(3))
	storePolicy(t, repo, "loose", core.OpAddGroup, quorumRule(1))
	service := setupService(t, repo, "alice", "bob", "carol")

	result, err := service.Evaluate(ctx, requestWith(t, core.OpAddGroup,
		vote("alice", core.DecisionApproved),
	))
	assert.NoError(t, err)
	assert.Equal(t, core.EvaluationApproved, result)
}

func TestAddValidatesRule(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := setupService(t, repo, "alice")

	_, err := service.Add(ctx, "broken", core.PolicySpecifier{Type: core.OpAddGroup}, core.Rule{
		Type: core.RuleQuorum,
	})
	assert.IsType(t, core.ErrorValidation{}, err)

	_, err = service.Add(ctx, "", core.PolicySpecifier{Type: core.OpAddGroup}, quorumRule(1))
	assert.IsType(t, core.ErrorValidation{}, err)

	policy, err := service.Add(ctx, "two of ops", core.PolicySpecifier{Type: core.OpAddGroup}, quorumRule(2))
	assert.NoError(t, err)
	assert.NotEmpty(t, policy.ID)

	stored, err := service.Get(ctx, policy.ID)
	assert.NoError(t, err)
	rule, err := stored.ParseRule()
	assert.NoError(t, err)
	assert.Equal(t, core.RuleQuorum, rule.Type)
	assert.Equal(t, uint16(2), rule.MinApproved)
}
