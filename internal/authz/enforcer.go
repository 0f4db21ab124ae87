// Package authz maps dashboard roles onto the actions they may perform.
// Policies are static: they ship embedded in the binary and reload with it,
// so the enforcer is read-only at runtime.
package authz

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/frostyfucker/HotelBrendle/internal/auth"
)

//go:embed model.conf
var casbinModelContent string

//go:embed policy.csv
var casbinPolicyContent string

// Action names used across the dashboard. The export action gates the
// delegated Drive upload; the view/edit actions gate screens.
const (
	ActionExportDrive = "export:drive"
	ActionViewBudget  = "view:budget"
	ActionEditTasks   = "edit:tasks"
)

// NewEnforcer creates a Casbin enforcer with the embedded model and the
// embedded policy set behind a read-only adapter.
func NewEnforcer() (casbin.IEnforcer, error) {
	m, err := model.NewModelFromString(casbinModelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, newStaticAdapter(casbinPolicyContent))
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load casbin policies: %w", err)
	}

	return enforcer, nil
}

// Can reports whether a role may perform the given action. Enforcement
// errors fail closed.
func Can(e casbin.IEnforcer, role auth.Role, action string) bool {
	ok, err := e.Enforce(string(role), action)
	if err != nil {
		return false
	}
	return ok
}

// ActionsFor returns the full set of actions a role may perform, including
// actions inherited from lower roles.
func ActionsFor(e casbin.IEnforcer, role auth.Role) ([]string, error) {
	perms, err := e.GetImplicitPermissionsForUser(string(role))
	if err != nil {
		return nil, fmt.Errorf("resolve permissions for %s: %w", role, err)
	}

	actions := make([]string, 0, len(perms))
	for _, p := range perms {
		if len(p) >= 2 {
			actions = append(actions, p[1])
		}
	}
	return actions, nil
}
