package core

import "strings"

// ResourceType enumerates the protectable entity families of the platform.
type ResourceType string

const (
	ResourceAccount    ResourceType = "account"
	ResourceTransfer   ResourceType = "transfer"
	ResourceActor      ResourceType = "actor"
	ResourceGroup      ResourceType = "group"
	ResourcePermission ResourceType = "permission"
	ResourcePolicy     ResourceType = "policy"
	ResourceRequest    ResourceType = "request"
	ResourceSystem     ResourceType = "system"
	ResourceDependency ResourceType = "dependency"
)

type ActionType string

const (
	ActionList    ActionType = "list"
	ActionCreate  ActionType = "create"
	ActionRead    ActionType = "read"
	ActionUpdate  ActionType = "update"
	ActionDelete  ActionType = "delete"
	ActionUpgrade ActionType = "upgrade"
)

// targetedActions are the actions that address a specific entity instance
// and therefore carry a target in their resource key.
var targetedActions = map[ActionType]bool{
	ActionRead:   true,
	ActionUpdate: true,
	ActionDelete: true,
}

const TargetAny = "*"

// Resource is a pure-data (type, action, target) triple compared
// structurally. Target is an entity id, TargetAny, or empty for actions
// that do not address an instance (list, create).
type Resource struct {
	Type   ResourceType `json:"type"`
	Action ActionType   `json:"action"`
	Target string       `json:"target,omitempty"`
}

func NewResource(t ResourceType, a ActionType, target string) Resource {
	if !targetedActions[a] {
		target = ""
	} else if target == "" {
		target = TargetAny
	}
	return Resource{Type: t, Action: a, Target: target}
}

// Key renders the canonical storage key, e.g. "account:read:acc1" or
// "actor:create".
func (r Resource) Key() string {
	parts := []string{string(r.Type), string(r.Action)}
	if targetedActions[r.Action] {
		target := r.Target
		if target == "" {
			target = TargetAny
		}
		parts = append(parts, target)
	}
	return strings.Join(parts, ":")
}

// Shape generalizes the target so that one Allow record covers every
// instance of the (type, action) pair unless a narrower record exists.
func (r Resource) Shape() Resource {
	if targetedActions[r.Action] {
		r.Target = TargetAny
	}
	return r
}

func (r Resource) ShapeKey() string {
	return r.Shape().Key()
}

// ParseResourceKey is the inverse of Key. Used when permission records are
// edited through the API by their shape key.
func ParseResourceKey(key string) (Resource, error) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return Resource{}, NewErrorValidation("malformed resource key: " + key)
	}
	resource := Resource{Type: ResourceType(parts[0]), Action: ActionType(parts[1])}
	if targetedActions[resource.Action] {
		if len(parts) != 3 || parts[2] == "" {
			return Resource{}, NewErrorValidation("resource key is missing a target: " + key)
		}
		resource.Target = parts[2]
	} else if len(parts) == 3 {
		return Resource{}, NewErrorValidation("resource action takes no target: " + key)
	}
	return resource, nil
}

type AuthScope string

const (
	AuthScopePublic        AuthScope = "public"
	AuthScopeAuthenticated AuthScope = "authenticated"
	AuthScopeRestricted    AuthScope = "restricted"
)
