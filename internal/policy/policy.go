// Package policy реализует правила выдачи книг по ролям пользователей.
package policy

import (
	"fmt"
	"os"
	"time"

	"library-loan-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// Rule - ограничения выдачи для одной роли.
type Rule struct {
	MaxActiveLoans int           `yaml:"max_active_loans"`
	LoanPeriod     time.Duration `yaml:"loan_period"`
}

// Policy - неизменяемая таблица правил по ролям.
type Policy struct {
	rules map[domain.Role]Rule
}

var _ domain.LoanPolicy = (*Policy)(nil)

// DefaultRules возвращает таблицу по умолчанию.
func DefaultRules() map[domain.Role]Rule {
	return map[domain.Role]Rule{
		domain.RoleCommon: {MaxActiveLoans: 3, LoanPeriod: 14 * 24 * time.Hour},
		domain.RoleAdmin:  {MaxActiveLoans: 10, LoanPeriod: 30 * 24 * time.Hour},
	}
}

// Default создает политику с таблицей по умолчанию.
func Default() *Policy {
	p, _ := New(DefaultRules())
	return p
}

// New создает политику из таблицы правил.
func New(rules map[domain.Role]Rule) (*Policy, error) {
	copied := make(map[domain.Role]Rule, len(rules))
	for role, rule := range rules {
		if rule.MaxActiveLoans < 1 {
			return nil, fmt.Errorf("role %s: max_active_loans must be at least 1, got %d", role, rule.MaxActiveLoans)
		}
		if rule.LoanPeriod <= 0 {
			return nil, fmt.Errorf("role %s: loan_period must be positive, got %s", role, rule.LoanPeriod)
		}
		copied[role] = rule
	}
	return &Policy{rules: copied}, nil
}

type fileFormat struct {
	Roles map[domain.Role]Rule `yaml:"roles"`
}

// Load читает YAML-файл с правилами. Роли, которых нет в файле, берутся из таблицы по умолчанию.
// Пустой path означает таблицу по умолчанию.
func Load(path string) (*Policy, error) {
	if path == "" {
		return Default(), nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read loan policy file: %w", err)
	}

	return Parse(buf)
}

// Parse разбирает YAML с правилами поверх таблицы по умолчанию.
func Parse(buf []byte) (*Policy, error) {
	var f fileFormat
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, fmt.Errorf("failed to parse loan policy: %w", err)
	}

	rules := DefaultRules()
	for role, rule := range f.Roles {
		rules[role] = rule
	}

	return New(rules)
}

// MaxActiveLoans возвращает максимум одновременных активных выдач для роли.
func (p *Policy) MaxActiveLoans(role domain.Role) (int, error) {
	rule, ok := p.rules[role]
	if !ok {
		return 0, &domain.ConfigurationError{Role: role}
	}
	return rule.MaxActiveLoans, nil
}

// LoanPeriod возвращает срок выдачи для роли.
func (p *Policy) LoanPeriod(role domain.Role) (time.Duration, error) {
	rule, ok := p.rules[role]
	if !ok {
		return 0, &domain.ConfigurationError{Role: role}
	}
	return rule.LoanPeriod, nil
}
