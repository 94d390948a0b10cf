package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleValidate(t *testing.T) {
	ok := Rule{
		Type: RuleAllOf,
		Rules: []Rule{
			{Type: RuleQuorum, Approvers: &ActorSpecifier{Type: SpecifierAny}, MinApproved: 2},
			{Type: RuleAutoApproved},
		},
	}
	assert.NoError(t, ok.Validate())

	assert.NoError(t, Rule{
		Type:          RuleQuorumPercentage,
		Approvers:     &ActorSpecifier{Type: SpecifierGroup, IDs: []string{"g1"}},
		MinPercentage: 51,
	}.Validate())

	assert.Error(t, Rule{Type: RuleQuorum, MinApproved: 2}.Validate())
	assert.Error(t, Rule{Type: RuleQuorum, Approvers: &ActorSpecifier{Type: SpecifierAny}}.Validate())
	assert.Error(t, Rule{Type: RuleQuorumPercentage, Approvers: &ActorSpecifier{Type: SpecifierAny}, MinPercentage: 101}.Validate())
	assert.Error(t, Rule{Type: RuleAllOf}.Validate())
	assert.Error(t, Rule{Type: RuleNot}.Validate())
	assert.Error(t, Rule{Type: RuleNamed}.Validate())
	assert.Error(t, Rule{Type: "magic"}.Validate())
	assert.Error(t, Rule{
		Type:        RuleQuorum,
		Approvers:   &ActorSpecifier{Type: SpecifierGroup},
		MinApproved: 1,
	}.Validate())

	// nested failures bubble up
	assert.Error(t, Rule{
		Type:  RuleAnyOf,
		Rules: []Rule{{Type: RuleNot, Rule: &Rule{Type: RuleQuorum}}},
	}.Validate())
}
