package core

import "time"

// Event is the websocket feed packet emitted on every request lifecycle
// transition.
type Event struct {
	RequestID string        `json:"requestID"`
	Status    RequestStatus `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// RequestFilter narrows List queries. Zero-valued fields are ignored.
type RequestFilter struct {
	Status        RequestStatus
	RequestedBy   string
	OperationType OperationType
	Tag           string
	Limit         int
}

// AllowPatch is a partial update of a permission record. Nil fields are
// left untouched.
type AllowPatch struct {
	AuthScope *AuthScope `json:"authScope,omitempty"`
	Users     *[]string  `json:"users,omitempty"`
	Groups    *[]string  `json:"groups,omitempty"`
}

type ResponseBase[T any] struct {
	Status  string `json:"status"`
	Content T      `json:"content"`
	Error   string `json:"error,omitempty"`
}
