package rbac

import (
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
	PermissionsForRole(role string) ([]Permission, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads policy into enforcer. Role names are matched case-insensitively.
func NewService(enforcer *casbin.Enforcer, policy []Permission, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.load(policy); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) load(policy []Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, p := range policy {
		if _, err := s.enforcer.AddPolicy(normalizeRole(p.Role), p.Resource, p.Action); err != nil {
			return err
		}
	}
	s.logger.Info("rbac policy loaded", zap.Int("rules", len(policy)))
	return nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(normalizeRole(role), resource, action)
	if err != nil {
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) PermissionsForRole(role string) ([]Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetImplicitPermissionsForUser(normalizeRole(role))
	if err != nil {
		return nil, err
	}

	perms := make([]Permission, 0, len(rules))
	for _, r := range rules {
		if len(r) < 3 {
			continue
		}
		perms = append(perms, Permission{Role: r[0], Resource: r[1], Action: r[2]})
	}
	return perms, nil
}

func normalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}
