package core

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Actor is a governable identity. Group membership lives on the actor row;
// groups do not nest.
type Actor struct {
	ID     string         `json:"id" gorm:"primaryKey;type:char(20)"`
	Name   string         `json:"name" gorm:"type:text"`
	Tag    string         `json:"tag" gorm:"type:text"`
	Groups pq.StringArray `json:"groups" gorm:"type:text[]"`
	CDate  time.Time      `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate  time.Time      `json:"mdate" gorm:"autoUpdateTime"`
}

// Credential binds an external cryptographic identity to an actor. It is
// only ever used to resolve who is calling.
type Credential struct {
	Address string    `json:"address" gorm:"primaryKey;type:text"`
	ActorID string    `json:"actorID" gorm:"type:char(20);index"`
	CDate   time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Group struct {
	ID    string    `json:"id" gorm:"primaryKey;type:char(20)"`
	Name  string    `json:"name" gorm:"type:text"`
	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// Allow is the permission record for one resource shape. Exactly one
// effective Allow resolves for any concrete resource: the specific-target
// record wins over the any-target record for the same (type, action).
type Allow struct {
	Shape     string         `json:"shape" gorm:"primaryKey;type:text"`
	AuthScope AuthScope      `json:"authScope" gorm:"type:text"`
	Users     pq.StringArray `json:"users" gorm:"type:text[]"`
	Groups    pq.StringArray `json:"groups" gorm:"type:text[]"`
	CDate     time.Time      `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate     time.Time      `json:"mdate" gorm:"autoUpdateTime"`
}

// Policy binds an operation specifier to an approval-rule tree. Specifier
// and Rule are stored as their JSON encoding.
type Policy struct {
	ID        string    `json:"id" gorm:"primaryKey;type:char(20)"`
	Name      string    `json:"name" gorm:"type:text"`
	Specifier string    `json:"specifier" gorm:"type:json"`
	Rule      string    `json:"rule" gorm:"type:json"`
	CDate     time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate     time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// Request is the central governance entity. Terminal requests are retained
// for audit, never deleted.
type Request struct {
	ID               string         `json:"id" gorm:"primaryKey;type:char(20)"`
	RequestedBy      string         `json:"requestedBy" gorm:"type:char(20);index"`
	OperationType    string         `json:"operationType" gorm:"type:text;index"`
	Operation        string         `json:"operation" gorm:"type:json"`
	Title            string         `json:"title" gorm:"type:text"`
	Summary          string         `json:"summary" gorm:"type:text"`
	Status           RequestStatus  `json:"status" gorm:"type:text;index"`
	StatusReason     string         `json:"statusReason" gorm:"type:text"`
	ExecutionPlan    ExecutionPlan  `json:"executionPlan" gorm:"type:text"`
	ExecutionDT      *time.Time     `json:"executionDT" gorm:"type:timestamp with time zone"`
	ExpirationDT     time.Time      `json:"expirationDT" gorm:"type:timestamp with time zone;index"`
	DeduplicationKey *string        `json:"deduplicationKey,omitempty" gorm:"type:text;index"`
	Tags             pq.StringArray `json:"tags" gorm:"type:text[]"`
	Approvals        []Approval     `json:"approvals" gorm:"foreignKey:RequestID"`
	CDate            time.Time      `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate            time.Time      `json:"mdate" gorm:"autoUpdateTime"`
}

// ParseOperation decodes the stored operation envelope.
func (r Request) ParseOperation() (Operation, error) {
	var op Operation
	if err := json.Unmarshal([]byte(r.Operation), &op); err != nil {
		return Operation{}, NewErrorValidation("malformed stored operation")
	}
	return op, nil
}

// ParseSpecifier decodes the stored specifier of a policy.
func (p Policy) ParseSpecifier() (PolicySpecifier, error) {
	var specifier PolicySpecifier
	if err := json.Unmarshal([]byte(p.Specifier), &specifier); err != nil {
		return PolicySpecifier{}, NewErrorConfiguration("malformed specifier in policy " + p.ID)
	}
	return specifier, nil
}

// ParseRule decodes the stored rule tree of a policy.
func (p Policy) ParseRule() (Rule, error) {
	var rule Rule
	if err := json.Unmarshal([]byte(p.Rule), &rule); err != nil {
		return Rule{}, NewErrorConfiguration("malformed rule in policy " + p.ID)
	}
	return rule, nil
}

// Approval is an append-only vote. The composite unique index is the
// storage-level backstop for the one-vote-per-actor invariant.
type Approval struct {
	ID         uint      `json:"id" gorm:"primaryKey;auto_increment"`
	RequestID  string    `json:"requestID" gorm:"type:char(20);uniqueIndex:uniq_request_approver"`
	ApproverID string    `json:"approverID" gorm:"type:char(20);uniqueIndex:uniq_request_approver"`
	Status     Decision  `json:"status" gorm:"type:text"`
	Reason     string    `json:"reason" gorm:"type:text"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
