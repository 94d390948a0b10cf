// Package policy maps operations to approval-rule trees and evaluates
// whether a request's recorded approvals satisfy them.
package policy

import (
	"context"
	"encoding/json"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"golang.org/x/exp/slices"

	"github.com/custodia-cloud/custodia/core"
)

var tracer = otel.Tracer("policy")

// maxNamedDepth caps named-rule resolution so that a cyclic reference is a
// configuration error instead of an infinite loop.
const maxNamedDepth = 8

type service struct {
	repository Repository
	actor      core.ActorService
	permission core.PermissionService
}

func NewService(repository Repository, actor core.ActorService, permission core.PermissionService) core.PolicyService {
	return &service{repository, actor, permission}
}

// Match returns every policy whose specifier covers the operation.
func (s *service) Match(ctx context.Context, op core.Operation) ([]core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Policy.Service.Match")
	defer span.End()

	policies, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []core.Policy
	for _, policy := range policies {
		specifier, err := policy.ParseSpecifier()
		if err != nil {
			return nil, err
		}
		if specifier.Matches(op) {
			matched = append(matched, policy)
		}
	}

	return matched, nil
}

// Evaluate runs every matching rule tree against the request's approvals
// and combines the verdicts with logical OR. A request with no matching
// policy stays Unmet forever; the configuration error is returned alongside
// so callers can surface it.
func (s *service) Evaluate(ctx context.Context, request core.Request) (core.EvaluationResult, error) {
	ctx, span := tracer.Start(ctx, "Policy.Service.Evaluate")
	defer span.End()

	op, err := request.ParseOperation()
	if err != nil {
		return core.EvaluationUnmet, err
	}

	policies, err := s.Match(ctx, op)
	if err != nil {
		return core.EvaluationUnmet, err
	}

	if len(policies) == 0 {
		return core.EvaluationUnmet, core.NewErrorConfiguration("no policy matches operation " + string(op.Type))
	}

	anyApproved := false
	allRejected := true
	for _, policy := range policies {
		rule, err := policy.ParseRule()
		if err != nil {
			return core.EvaluationUnmet, err
		}

		result, err := s.evaluateRule(ctx, rule, request, 0)
		if err != nil {
			return core.EvaluationUnmet, err
		}

		if result == core.EvaluationApproved {
			anyApproved = true
		}
		if result != core.EvaluationRejected {
			allRejected = false
		}
	}

	if anyApproved {
		return core.EvaluationApproved, nil
	}
	if allRejected {
		return core.EvaluationRejected, nil
	}
	return core.EvaluationUnmet, nil
}

func (s *service) evaluateRule(ctx context.Context, rule core.Rule, request core.Request, depth int) (core.EvaluationResult, error) {
	switch rule.Type {
	case core.RuleAutoApproved:
		return core.EvaluationApproved, nil

	case core.RuleQuorum:
		return s.evaluateQuorum(ctx, rule, request, int(rule.MinApproved), false)

	case core.RuleQuorumPercentage:
		return s.evaluateQuorum(ctx, rule, request, int(rule.MinPercentage), true)

	case core.RuleAllOf:
		result := core.EvaluationApproved
		for _, child := range rule.Rules {
			childResult, err := s.evaluateRule(ctx, child, request, depth)
			if err != nil {
				return core.EvaluationUnmet, err
			}
			if childResult == core.EvaluationRejected {
				return core.EvaluationRejected, nil
			}
			if childResult == core.EvaluationUnmet {
				result = core.EvaluationUnmet
			}
		}
		return result, nil

	case core.RuleAnyOf:
		result := core.EvaluationRejected
		for _, child := range rule.Rules {
			childResult, err := s.evaluateRule(ctx, child, request, depth)
			if err != nil {
				return core.EvaluationUnmet, err
			}
			if childResult == core.EvaluationApproved {
				return core.EvaluationApproved, nil
			}
			if childResult == core.EvaluationUnmet {
				result = core.EvaluationUnmet
			}
		}
		return result, nil

	case core.RuleNot:
		childResult, err := s.evaluateRule(ctx, *rule.Rule, request, depth)
		if err != nil {
			return core.EvaluationUnmet, err
		}
		switch childResult {
		case core.EvaluationApproved:
			return core.EvaluationRejected, nil
		case core.EvaluationRejected:
			return core.EvaluationApproved, nil
		default:
			return core.EvaluationUnmet, nil
		}

	case core.RuleNamed:
		if depth >= maxNamedDepth {
			return core.EvaluationUnmet, core.NewErrorConfiguration("named rule nesting exceeds depth limit")
		}
		named, err := s.repository.Get(ctx, rule.PolicyID)
		if err != nil {
			return core.EvaluationUnmet, core.NewErrorConfiguration("named rule references missing policy " + rule.PolicyID)
		}
		namedRule, err := named.ParseRule()
		if err != nil {
			return core.EvaluationUnmet, err
		}
		return s.evaluateRule(ctx, namedRule, request, depth+1)

	default:
		return core.EvaluationUnmet, core.NewErrorConfiguration("unknown rule type: " + string(rule.Type))
	}
}

// evaluateQuorum applies the quorum arithmetic. threshold is a count, or a
// percentage when percentage is set. The threshold is clamped to the
// eligible set so a shrunk voter pool can still satisfy the rule; a quorum
// that rejections have made unreachable is Rejected, not stuck Unmet.
func (s *service) evaluateQuorum(ctx context.Context, rule core.Rule, request core.Request, threshold int, percentage bool) (core.EvaluationResult, error) {
	eligible, err := s.resolveEligible(ctx, *rule.Approvers, request)
	if err != nil {
		return core.EvaluationUnmet, err
	}

	if len(eligible) == 0 {
		return core.EvaluationRejected, nil
	}

	minApproved := threshold
	if percentage {
		minApproved = (threshold*len(eligible) + 99) / 100
	}
	if minApproved > len(eligible) {
		minApproved = len(eligible)
	}

	approvedCount := 0
	rejectedCount := 0
	for _, approval := range request.Approvals {
		if !slices.Contains(eligible, approval.ApproverID) {
			continue
		}
		switch approval.Status {
		case core.DecisionApproved:
			approvedCount++
		case core.DecisionRejected:
			rejectedCount++
		}
	}

	if rejectedCount > len(eligible)-minApproved {
		return core.EvaluationRejected, nil
	}

	if approvedCount >= minApproved {
		return core.EvaluationApproved, nil
	}

	return core.EvaluationUnmet, nil
}

// resolveEligible expands an actor specifier into the set of actor ids that
// are both selected by it and permitted to read the request.
func (s *service) resolveEligible(ctx context.Context, specifier core.ActorSpecifier, request core.Request) ([]string, error) {
	var candidates []core.Actor

	switch specifier.Type {
	case core.SpecifierAny:
		actors, err := s.actor.List(ctx)
		if err != nil {
			return nil, err
		}
		candidates = actors
	case core.SpecifierGroup:
		actors, err := s.actor.ResolveMembers(ctx, specifier.IDs)
		if err != nil {
			return nil, err
		}
		candidates = actors
	case core.SpecifierId:
		for _, id := range specifier.IDs {
			actor, err := s.actor.Get(ctx, id)
			if err != nil {
				continue // removed actors simply drop out of the voter set
			}
			candidates = append(candidates, actor)
		}
	default:
		return nil, core.NewErrorConfiguration("unknown specifier type: " + string(specifier.Type))
	}

	readResource := core.NewResource(core.ResourceRequest, core.ActionRead, request.ID)

	var eligible []string
	for _, candidate := range candidates {
		requester := core.RequesterContext{
			ActorID: candidate.ID,
			Type:    core.KnownActor,
			Groups:  candidate.Groups,
			Tags:    core.ParseTags(candidate.Tag),
		}
		if s.permission.IsAllowed(ctx, requester, readResource) {
			eligible = append(eligible, candidate.ID)
		}
	}

	return eligible, nil
}

func (s *service) Add(ctx context.Context, name string, specifier core.PolicySpecifier, rule core.Rule) (core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Policy.Service.Add")
	defer span.End()

	if name == "" {
		return core.Policy{}, core.NewErrorValidation("policy name is required")
	}
	if specifier.Type == "" {
		return core.Policy{}, core.NewErrorValidation("policy specifier requires an operation type")
	}
	if err := rule.Validate(); err != nil {
		return core.Policy{}, err
	}

	specifierJSON, err := json.Marshal(specifier)
	if err != nil {
		return core.Policy{}, err
	}
	ruleJSON, err := json.Marshal(rule)
	if err != nil {
		return core.Policy{}, err
	}

	policy := core.Policy{
		ID:        xid.New().String(),
		Name:      name,
		Specifier: string(specifierJSON),
		Rule:      string(ruleJSON),
	}

	return s.repository.Create(ctx, policy)
}

func (s *service) Edit(ctx context.Context, id string, name *string, specifier *core.PolicySpecifier, rule *core.Rule) (core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Policy.Service.Edit")
	defer span.End()

	policy, err := s.repository.Get(ctx, id)
	if err != nil {
		return core.Policy{}, err
	}

	if name != nil {
		if *name == "" {
			return core.Policy{}, core.NewErrorValidation("policy name is required")
		}
		policy.Name = *name
	}
	if specifier != nil {
		if specifier.Type == "" {
			return core.Policy{}, core.NewErrorValidation("policy specifier requires an operation type")
		}
		specifierJSON, err := json.Marshal(specifier)
		if err != nil {
			return core.Policy{}, err
		}
		policy.Specifier = string(specifierJSON)
	}
	if rule != nil {
		if err := rule.Validate(); err != nil {
			return core.Policy{}, err
		}
		ruleJSON, err := json.Marshal(rule)
		if err != nil {
			return core.Policy{}, err
		}
		policy.Rule = string(ruleJSON)
	}

	return s.repository.Update(ctx, policy)
}

func (s *service) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Policy.Service.Remove")
	defer span.End()

	return s.repository.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id string) (core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Policy.Service.Get")
	defer span.End()

	return s.repository.Get(ctx, id)
}

func (s *service) List(ctx context.Context) ([]core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Policy.Service.List")
	defer span.End()

	return s.repository.List(ctx)
}
