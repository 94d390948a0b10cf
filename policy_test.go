package custodia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-cloud/custodia/core"
)

func TestDefaultAllowShapesParse(t *testing.T) {
	for _, allow := range GetDefaultAllows("admin") {
		resource, err := core.ParseResourceKey(allow.Shape)
		if assert.NoError(t, err, allow.Shape) {
			assert.Equal(t, allow.Shape, resource.Key(), allow.Shape)
		}
	}
}

func TestDefaultPoliciesCoverEveryOperation(t *testing.T) {
	policies, err := GetDefaultPolicies("admin")
	assert.NoError(t, err)

	covered := make(map[core.OperationType]bool)
	for _, policy := range policies {
		// ids are stored in a char(20) column
		assert.Len(t, policy.ID, 20, policy.Name)

		var specifier core.PolicySpecifier
		err := json.Unmarshal([]byte(policy.Specifier), &specifier)
		assert.NoError(t, err)
		covered[specifier.Type] = true

		var rule core.Rule
		err = json.Unmarshal([]byte(policy.Rule), &rule)
		assert.NoError(t, err)
		assert.Equal(t, core.RuleQuorum, rule.Type)
	}

	kinds := []core.OperationType{
		core.OpTransfer,
		core.OpAddActor,
		core.OpRemoveActor,
		core.OpEditActorGroups,
		core.OpAddGroup,
		core.OpRemoveGroup,
		core.OpEditPermission,
		core.OpAddPolicy,
		core.OpEditPolicy,
		core.OpRemovePolicy,
		core.OpUpgradeSystem,
		core.OpManageDependency,
	}
	for _, kind := range kinds {
		assert.True(t, covered[kind], string(kind))
	}
}
