package dispatch

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/custodia-cloud/custodia/core"
)

var tracer = otel.Tracer("dispatch")

type executor struct {
	actor      core.ActorService
	permission core.PermissionService
	policy     core.PolicyService
}

// NewExecutor builds the in-process executor. Governance operations are
// applied directly against the platform services; operations owned by an
// external system are left in flight.
func NewExecutor(
	actor core.ActorService,
	permission core.PermissionService,
	policy core.PolicyService,
) core.ExecutorService {
	return &executor{
		actor:      actor,
		permission: permission,
		policy:     policy,
	}
}

func (e *executor) Execute(ctx context.Context, request core.Request) (core.ExecutionOutcome, string) {
	ctx, span := tracer.Start(ctx, "Dispatch.Service.Execute")
	defer span.End()

	op, err := request.ParseOperation()
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	switch op.Type {
	case core.OpAddActor:
		return e.addActor(ctx, op)
	case core.OpRemoveActor:
		return e.removeActor(ctx, op)
	case core.OpEditActorGroups:
		return e.editActorGroups(ctx, op)
	case core.OpAddGroup:
		return e.addGroup(ctx, op)
	case core.OpRemoveGroup:
		return e.removeGroup(ctx, op)
	case core.OpEditPermission:
		return e.editPermission(ctx, op)
	case core.OpAddPolicy:
		return e.addPolicy(ctx, op)
	case core.OpEditPolicy:
		return e.editPolicy(ctx, op)
	case core.OpRemovePolicy:
		return e.removePolicy(ctx, op)
	case core.OpTransfer, core.OpUpgradeSystem, core.OpManageDependency:
		// These touch systems outside this process. The external executor
		// reports back through the execution callback.
		return core.OutcomeProcessing, "handed off to external executor"
	default:
		return core.OutcomeFailed, "unknown operation type: " + string(op.Type)
	}
}

func (e *executor) addActor(ctx context.Context, op core.Operation) (core.ExecutionOutcome, string) {
	payload, err := core.DecodePayload[core.AddActorPayload](op)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	actor, err := e.actor.Create(ctx, payload.Name, payload.Groups, payload.Credentials)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	return core.OutcomeCompleted, "created actor " + actor.ID
}

func (e *executor) removeActor(ctx context.Context, op core.Operation) (core.ExecutionOutcome, string) {
	payload, err := core.DecodePayload[core.RemoveActorPayload](op)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	if _, err := e.actor.Delete(ctx, payload.ActorID); err != nil {
		return core.OutcomeFailed, err.Error()
	}

	return core.OutcomeCompleted, "removed actor " + payload.ActorID
}

func (e *executor) editActorGroups(ctx context.Context, op core.Operation) (core.ExecutionOutcome, string) {
	payload, err := core.DecodePayload[core.EditActorGroupsPayload](op)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	if _, err := e.actor.EditGroups(ctx, payload.ActorID, payload.Groups); err != nil {
		return core.OutcomeFailed, err.Error()
	}

	return core.OutcomeCompleted, ""
}

func (e *executor) addGroup(ctx context.Context, op core.Operation) (core.ExecutionOutcome, string) {
	payload, err := core.DecodePayload[core.AddGroupPayload](op)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	group, err := e.actor.UpsertGroup(ctx, core.Group{Name: payload.Name})
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	return core.OutcomeCompleted, "created group " + group.ID
}

func (e *executor) removeGroup(ctx context.Context, op core.Operation) (core.ExecutionOutcome, string) {
	payload, err := core.DecodePayload[core.RemoveGroupPayload](op)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	if err := e.actor.DeleteGroup(ctx, payload.GroupID); err != nil {
		return core.OutcomeFailed, err.Error()
	}

	return core.OutcomeCompleted, ""
}

func (e *executor) editPermission(ctx context.Context, op core.Operation) (core.ExecutionOutcome, string) {
	payload, err := core.DecodePayload[core.EditPermissionPayload](op)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	patch := core.AllowPatch{
		AuthScope: payload.AuthScope,
		Users:     payload.Users,
		Groups:    payload.Groups,
	}
	if _, err := e.permission.Edit(ctx, payload.Shape, patch); err != nil {
		return core.OutcomeFailed, err.Error()
	}

	return core.OutcomeCompleted, ""
}

func (e *executor) addPolicy(ctx context.Context, op core.Operation) (core.ExecutionOutcome, string) {
	payload, err := core.DecodePayload[core.AddPolicyPayload](op)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	policy, err := e.policy.Add(ctx, payload.Name, payload.Specifier, payload.Rule)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	return core.OutcomeCompleted, "created policy " + policy.ID
}

func (e *executor) editPolicy(ctx context.Context, op core.Operation) (core.ExecutionOutcome, string) {
	payload, err := core.DecodePayload[core.EditPolicyPayload](op)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	if _, err := e.policy.Edit(ctx, payload.PolicyID, payload.Name, payload.Specifier, payload.Rule); err != nil {
		return core.OutcomeFailed, err.Error()
	}

	return core.OutcomeCompleted, ""
}

func (e *executor) removePolicy(ctx context.Context, op core.Operation) (core.ExecutionOutcome, string) {
	payload, err := core.DecodePayload[core.RemovePolicyPayload](op)
	if err != nil {
		return core.OutcomeFailed, err.Error()
	}

	if err := e.policy.Remove(ctx, payload.PolicyID); err != nil {
		return core.OutcomeFailed, err.Error()
	}

	return core.OutcomeCompleted, ""
}
