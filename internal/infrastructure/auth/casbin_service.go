package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// DefaultModel is a role/path/method model with wildcard paths
const DefaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// AdminRole may manage route policies at runtime
const AdminRole = "admin"

// DefaultPolicies grant every session-backed user route to role_user and
// policy management to role_admin
var DefaultPolicies = [][]string{
	{"role_user", "/api/users/verifyEmailOtp", "POST"},
	{"role_user", "/api/users/verifyPhoneOtp", "POST"},
	{"role_user", "/api/users/resendEmailOtp", "POST"},
	{"role_user", "/api/users/resendPhoneOtp", "POST"},
	{"role_user", "/api/users/profile", "(GET|POST)"},
	{"role_user", "/api/users/progress", "(GET|PUT)"},
	{"role_admin", "/api/admin/policies", "(GET|POST|DELETE)"},
}

// CasbinService owns the enforcer shared by the policy service and middleware
type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer. Policies persist through the gorm
// adapter when db is non-nil and live in memory otherwise. An empty
// modelPath selects DefaultModel.
func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	m, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}

	if db == nil {
		e, err := casbin.NewEnforcer(m)
		if err != nil {
			return nil, err
		}
		return &CasbinService{E: e}, nil
	}

	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin gorm adapter: %w", err)
	}
	e, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E: e}, nil
}

func loadModel(path string) (model.Model, error) {
	if path == "" {
		return model.NewModelFromString(DefaultModel)
	}
	return model.NewModelFromFile(path)
}
