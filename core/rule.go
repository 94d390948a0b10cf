package core

type RuleType string

const (
	RuleAutoApproved     RuleType = "autoApproved"
	RuleQuorum           RuleType = "quorum"
	RuleQuorumPercentage RuleType = "quorumPercentage"
	RuleAllOf            RuleType = "allOf"
	RuleAnyOf            RuleType = "anyOf"
	RuleNot              RuleType = "not"
	RuleNamed            RuleType = "named"
)

type SpecifierType string

const (
	SpecifierAny   SpecifierType = "any"
	SpecifierGroup SpecifierType = "group"
	SpecifierId    SpecifierType = "id"
)

// ActorSpecifier selects the approver population of a quorum rule.
type ActorSpecifier struct {
	Type SpecifierType `json:"type"`
	IDs  []string      `json:"ids,omitempty"`
}

// Rule is one node of an approval-rule tree. Which fields are meaningful
// depends on Type, mirroring the Expr shape used for condition trees.
type Rule struct {
	Type          RuleType        `json:"type"`
	Approvers     *ActorSpecifier `json:"approvers,omitempty"`
	MinApproved   uint16          `json:"minApproved,omitempty"`
	MinPercentage uint16          `json:"minPercentage,omitempty"`
	Rules         []Rule          `json:"rules,omitempty"`
	Rule          *Rule           `json:"rule,omitempty"`
	PolicyID      string          `json:"policyID,omitempty"`
}

// Validate checks the structural invariants of a rule tree before it is
// accepted into a policy.
func (r Rule) Validate() error {
	switch r.Type {
	case RuleAutoApproved:
		return nil
	case RuleQuorum:
		if r.Approvers == nil {
			return NewErrorValidation("quorum rule requires approvers")
		}
		if r.MinApproved == 0 {
			return NewErrorValidation("quorum rule requires minApproved > 0")
		}
	case RuleQuorumPercentage:
		if r.Approvers == nil {
			return NewErrorValidation("quorumPercentage rule requires approvers")
		}
		if r.MinPercentage == 0 || r.MinPercentage > 100 {
			return NewErrorValidation("minPercentage must be within 1-100")
		}
	case RuleAllOf, RuleAnyOf:
		if len(r.Rules) == 0 {
			return NewErrorValidation(string(r.Type) + " rule requires children")
		}
		for _, child := range r.Rules {
			if err := child.Validate(); err != nil {
				return err
			}
		}
	case RuleNot:
		if r.Rule == nil {
			return NewErrorValidation("not rule requires a child")
		}
		return r.Rule.Validate()
	case RuleNamed:
		if r.PolicyID == "" {
			return NewErrorValidation("named rule requires a policyID")
		}
	default:
		return NewErrorValidation("unknown rule type: " + string(r.Type))
	}

	if r.Approvers != nil {
		switch r.Approvers.Type {
		case SpecifierAny:
		case SpecifierGroup, SpecifierId:
			if len(r.Approvers.IDs) == 0 {
				return NewErrorValidation("actor specifier requires ids")
			}
		default:
			return NewErrorValidation("unknown specifier type: " + string(r.Approvers.Type))
		}
	}

	return nil
}
