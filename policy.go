package custodia

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/lib/pq"
	"github.com/rs/xid"
	"gorm.io/gorm"

	"github.com/custodia-cloud/custodia/core"
	"github.com/custodia-cloud/custodia/util"
)

// GetDefaultAllows returns the permission records seeded into an empty
// deployment. Reads are open to any known actor; everything that changes
// governance state is restricted to the admin group until operators widen
// it through editPermission requests.
func GetDefaultAllows(adminGroup string) []core.Allow {
	authenticated := []string{
		"request:create",
		"request:read:*",
		"request:list",
		"actor:read:*",
		"actor:list",
		"group:read:*",
		"group:list",
		"policy:read:*",
		"policy:list",
		"permission:read:*",
		"permission:list",
	}

	restricted := []string{
		"transfer:create",
		"account:read:*",
		"actor:create",
		"actor:update:*",
		"actor:delete:*",
		"group:create",
		"group:delete:*",
		"permission:update:*",
		"policy:create",
		"policy:update:*",
		"policy:delete:*",
		"system:upgrade",
		"dependency:create",
		"dependency:delete:*",
	}

	var allows []core.Allow
	for _, shape := range authenticated {
		allows = append(allows, core.Allow{
			Shape:     shape,
			AuthScope: core.AuthScopeAuthenticated,
		})
	}
	for _, shape := range restricted {
		allows = append(allows, core.Allow{
			Shape:     shape,
			AuthScope: core.AuthScopeRestricted,
			Groups:    pq.StringArray{adminGroup},
		})
	}
	return allows
}

// GetDefaultPolicies returns one admin-quorum policy per operation kind.
// Every operation stays governable from the first boot; nothing resolves
// without at least one admin approval.
func GetDefaultPolicies(adminGroup string) ([]core.Policy, error) {
	rule := core.Rule{
		Type: core.RuleQuorum,
		Approvers: &core.ActorSpecifier{
			Type: core.SpecifierGroup,
			IDs:  []string{adminGroup},
		},
		MinApproved: 1,
	}
	ruleJson, err := json.Marshal(rule)
	if err != nil {
		return nil, err
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

	var policies []core.Policy
	for _, kind := range kinds {
		specifierJson, err := json.Marshal(core.PolicySpecifier{Type: kind})
		if err != nil {
			return nil, err
		}
		policies = append(policies, core.Policy{
			ID:        xid.New().String(),
			Name:      "default " + string(kind),
			Specifier: string(specifierJson),
			Rule:      string(ruleJson),
		})
	}
	return policies, nil
}

// Bootstrap seeds default permissions and policies into an empty database.
// It runs before the services are wired, so it writes through gorm
// directly. Populated tables are left untouched.
func Bootstrap(ctx context.Context, db *gorm.DB, config util.Config) error {
	var allowCount int64
	if err := db.WithContext(ctx).Model(&core.Allow{}).Count(&allowCount).Error; err != nil {
		return err
	}
	if allowCount == 0 {
		allows := GetDefaultAllows(config.Custodia.AdminGroup)
		if err := db.WithContext(ctx).Create(&allows).Error; err != nil {
			return err
		}
		slog.Info("seeded default permissions",
			slog.Int("count", len(allows)),
		)
	}

	var policyCount int64
	if err := db.WithContext(ctx).Model(&core.Policy{}).Count(&policyCount).Error; err != nil {
		return err
	}
	if policyCount == 0 {
		policies, err := GetDefaultPolicies(config.Custodia.AdminGroup)
		if err != nil {
			return err
		}
		if err := db.WithContext(ctx).Create(&policies).Error; err != nil {
			return err
		}
		slog.Info("seeded default policies",
			slog.Int("count", len(policies)),
		)
	}

	return nil
}
