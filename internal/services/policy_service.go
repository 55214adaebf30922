package services

import (
	"log"

	"github.com/casbin/casbin/v2"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
	persist  bool
}

// NewPolicyService creates a policy service. persist controls whether
// changes are written back through the enforcer's adapter.
func NewPolicyService(enforcer *casbin.Enforcer, persist bool) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: NewCasbinEnforcerWrapper(enforcer),
		persist:  persist,
	}
}

// NewPolicyServiceWithEnforcer creates a policy service over any CasbinEnforcer
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer, persist bool) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer, persist: persist}
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if _, err := p.enforcer.AddPolicy(role, resource, action); err != nil {
		return err
	}
	return p.save()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	if _, err := p.enforcer.RemovePolicy(role, resource, action); err != nil {
		return err
	}
	return p.save()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, err := p.enforcer.GetPolicy()
	if err != nil {
		log.Printf("casbin: failed to read policies: %v", err)
		return nil
	}
	return policies
}

func (p *PolicyServiceImpl) save() error {
	if !p.persist {
		return nil
	}
	return p.enforcer.SavePolicy()
}

// SeedPolicies installs every given policy the store does not hold yet
func SeedPolicies(svc domain.PolicyService, policies [][]string) error {
	existing := make(map[[3]string]bool)
	for _, p := range svc.GetPolicies() {
		if len(p) >= 3 {
			existing[[3]string{p[0], p[1], p[2]}] = true
		}
	}

	added := 0
	for _, p := range policies {
		if existing[[3]string{p[0], p[1], p[2]}] {
			continue
		}
		if err := svc.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
		added++
	}
	if added > 0 {
		log.Printf("casbin: seeded %d default policies", added)
	}
	return nil
}
