package core

import (
	"encoding/json"
)

type OperationType string

const (
	OpTransfer         OperationType = "transfer"
	OpAddActor         OperationType = "addActor"
	OpRemoveActor      OperationType = "removeActor"
	OpEditActorGroups  OperationType = "editActorGroups"
	OpAddGroup         OperationType = "addGroup"
	OpRemoveGroup      OperationType = "removeGroup"
	OpEditPermission   OperationType = "editPermission"
	OpAddPolicy        OperationType = "addPolicy"
	OpEditPolicy       OperationType = "editPolicy"
	OpRemovePolicy     OperationType = "removePolicy"
	OpUpgradeSystem    OperationType = "upgradeSystem"
	OpManageDependency OperationType = "manageDependency"
)

// Operation is the closed union of privileged actions a request can carry.
// The payload schema is fixed per type; Specifier and Resources are
// exhaustive over the type tag so adding a kind is a compile-visible change.
type Operation struct {
	Type    OperationType   `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type TransferPayload struct {
	FromAccount string `json:"fromAccount"`
	ToAddress   string `json:"toAddress"`
	Amount      string `json:"amount"`
	Memo        string `json:"memo,omitempty"`
}

type AddActorPayload struct {
	Name        string   `json:"name"`
	Groups      []string `json:"groups,omitempty"`
	Credentials []string `json:"credentials,omitempty"`
}

type RemoveActorPayload struct {
	ActorID string `json:"actorID"`
}

type EditActorGroupsPayload struct {
	ActorID string   `json:"actorID"`
	Groups  []string `json:"groups"`
}

type AddGroupPayload struct {
	Name string `json:"name"`
}

type RemoveGroupPayload struct {
	GroupID string `json:"groupID"`
}

type EditPermissionPayload struct {
	Shape     string     `json:"shape"`
	AuthScope *AuthScope `json:"authScope,omitempty"`
	Users     *[]string  `json:"users,omitempty"`
	Groups    *[]string  `json:"groups,omitempty"`
}

type AddPolicyPayload struct {
	Name      string          `json:"name"`
	Specifier PolicySpecifier `json:"specifier"`
	Rule      Rule            `json:"rule"`
}

type EditPolicyPayload struct {
	PolicyID  string           `json:"policyID"`
	Name      *string          `json:"name,omitempty"`
	Specifier *PolicySpecifier `json:"specifier,omitempty"`
	Rule      *Rule            `json:"rule,omitempty"`
}

type RemovePolicyPayload struct {
	PolicyID string `json:"policyID"`
}

type UpgradeSystemPayload struct {
	Version     string `json:"version"`
	ArtifactURL string `json:"artifactURL"`
	Checksum    string `json:"checksum"`
}

const (
	DependencyRegister   = "register"
	DependencyDeregister = "deregister"
)

type ManageDependencyPayload struct {
	DependencyID string `json:"dependencyID"`
	Action       string `json:"action"`
	Endpoint     string `json:"endpoint,omitempty"`
}

// PolicySpecifier matches operations to a policy. AccountIDs narrows
// transfer policies to specific source accounts; empty means unscoped.
type PolicySpecifier struct {
	Type       OperationType `json:"type"`
	AccountIDs []string      `json:"accountIDs,omitempty"`
}

// Matches reports whether the specifier covers the given operation.
func (s PolicySpecifier) Matches(op Operation) bool {
	if s.Type != op.Type {
		return false
	}
	if len(s.AccountIDs) == 0 {
		return true
	}
	if op.Type != OpTransfer {
		return true
	}
	var payload TransferPayload
	if err := json.Unmarshal(op.Payload, &payload); err != nil {
		return false
	}
	for _, id := range s.AccountIDs {
		if id == payload.FromAccount {
			return true
		}
	}
	return false
}

// MarshalString returns the JSON encoding stored on the request row.
func (op Operation) MarshalString() (string, error) {
	document, err := json.Marshal(op)
	if err != nil {
		return "", NewErrorValidation("unencodable operation")
	}
	return string(document), nil
}

// DecodePayload decodes the payload of an operation into its fixed schema.
func DecodePayload[T any](op Operation) (T, error) {
	return decodePayload[T](op)
}

func decodePayload[T any](op Operation) (T, error) {
	var payload T
	if err := json.Unmarshal(op.Payload, &payload); err != nil {
		return payload, NewErrorValidation("malformed payload for operation " + string(op.Type))
	}
	return payload, nil
}

// Specifier returns the matcher key used to look up policies for this
// operation.
func (op Operation) Specifier() PolicySpecifier {
	return PolicySpecifier{Type: op.Type}
}

// Resources returns the resources a requester must hold create-side
// permission on to submit this operation.
func (op Operation) Resources() ([]Resource, error) {
	switch op.Type {
	case OpTransfer:
		payload, err := decodePayload[TransferPayload](op)
		if err != nil {
			return nil, err
		}
		if payload.FromAccount == "" {
			return nil, NewErrorValidation("transfer requires fromAccount")
		}
		return []Resource{
			NewResource(ResourceTransfer, ActionCreate, ""),
			NewResource(ResourceAccount, ActionRead, payload.FromAccount),
		}, nil
	case OpAddActor:
		return []Resource{NewResource(ResourceActor, ActionCreate, "")}, nil
	case OpRemoveActor:
		payload, err := decodePayload[RemoveActorPayload](op)
		if err != nil {
			return nil, err
		}
		return []Resource{NewResource(ResourceActor, ActionDelete, payload.ActorID)}, nil
	case OpEditActorGroups:
		payload, err := decodePayload[EditActorGroupsPayload](op)
		if err != nil {
			return nil, err
		}
		return []Resource{NewResource(ResourceActor, ActionUpdate, payload.ActorID)}, nil
	case OpAddGroup:
		return []Resource{NewResource(ResourceGroup, ActionCreate, "")}, nil
	case OpRemoveGroup:
		payload, err := decodePayload[RemoveGroupPayload](op)
		if err != nil {
			return nil, err
		}
		return []Resource{NewResource(ResourceGroup, ActionDelete, payload.GroupID)}, nil
	case OpEditPermission:
		payload, err := decodePayload[EditPermissionPayload](op)
		if err != nil {
			return nil, err
		}
		return []Resource{NewResource(ResourcePermission, ActionUpdate, payload.Shape)}, nil
	case OpAddPolicy:
		return []Resource{NewResource(ResourcePolicy, ActionCreate, "")}, nil
	case OpEditPolicy:
		payload, err := decodePayload[EditPolicyPayload](op)
		if err != nil {
			return nil, err
		}
		return []Resource{NewResource(ResourcePolicy, ActionUpdate, payload.PolicyID)}, nil
	case OpRemovePolicy:
		payload, err := decodePayload[RemovePolicyPayload](op)
		if err != nil {
			return nil, err
		}
		return []Resource{NewResource(ResourcePolicy, ActionDelete, payload.PolicyID)}, nil
	case OpUpgradeSystem:
		return []Resource{NewResource(ResourceSystem, ActionUpgrade, "")}, nil
	case OpManageDependency:
		payload, err := decodePayload[ManageDependencyPayload](op)
		if err != nil {
			return nil, err
		}
		if payload.Action == DependencyRegister {
			return []Resource{NewResource(ResourceDependency, ActionCreate, "")}, nil
		}
		return []Resource{NewResource(ResourceDependency, ActionDelete, payload.DependencyID)}, nil
	default:
		return nil, NewErrorValidation("unknown operation type: " + string(op.Type))
	}
}
