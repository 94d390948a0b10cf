package core

const (
	RequesterIdCtxKey      = "cu-requesterId"
	RequesterTypeCtxKey    = "cu-requesterType"
	RequesterTagCtxKey     = "cu-requesterTag"
	RequesterGroupsCtxKey  = "cu-requesterGroups"
	RequesterContextCtxKey = "cu-requesterContext"
)

const (
	RequesterIdHeader     = "cu-requester-id"
	RequesterTypeHeader   = "cu-requester-type"
	RequesterTagHeader    = "cu-requester-tag"
	RequesterGroupsHeader = "cu-requester-groups"
)

const (
	Anonymous = iota
	KnownActor
	SystemAgent
)

func RequesterTypeString(t int) string {
	switch t {
	case Anonymous:
		return "Anonymous"
	case KnownActor:
		return "KnownActor"
	case SystemAgent:
		return "SystemAgent"
	default:
		return "Error"
	}
}

// RequesterContext carries the resolved identity of a caller through the
// permission and policy engines.
type RequesterContext struct {
	ActorID string
	Type    int
	Groups  []string
	Tags    *Tags
}

func (r RequesterContext) IsSystem() bool {
	return r.Type == SystemAgent
}

func (r RequesterContext) IsAnonymous() bool {
	return r.Type == Anonymous || r.ActorID == ""
}

type RequestStatus string

const (
	RequestStatusCreated    RequestStatus = "created"
	RequestStatusApproved   RequestStatus = "approved"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusCancelled  RequestStatus = "cancelled"
	RequestStatusScheduled  RequestStatus = "scheduled"
	RequestStatusProcessing RequestStatus = "processing"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusFailed     RequestStatus = "failed"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusCreated:    {RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled},
	RequestStatusApproved:   {RequestStatusScheduled, RequestStatusProcessing},
	RequestStatusScheduled:  {RequestStatusProcessing},
	RequestStatusProcessing: {RequestStatusCompleted, RequestStatusFailed},
}

// CanTransition reports whether the state machine permits moving a request
// from one status to another. Terminal statuses have no outgoing edges.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

type ExecutionPlan string

const (
	ExecutionPlanImmediate ExecutionPlan = "immediate"
	ExecutionPlanScheduled ExecutionPlan = "scheduled"
)

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

type EvaluationResult string

const (
	EvaluationUnmet    EvaluationResult = "unmet"
	EvaluationApproved EvaluationResult = "approved"
	EvaluationRejected EvaluationResult = "rejected"
)

type ExecutionOutcome string

const (
	OutcomeCompleted  ExecutionOutcome = "completed"
	OutcomeProcessing ExecutionOutcome = "processing"
	OutcomeFailed     ExecutionOutcome = "failed"
)
