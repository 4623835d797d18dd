package rulesRepo

import (
	"sort"
	"sync"

	"torcal/models"
)

type memoryRuleRepo struct {
	mu     sync.RWMutex
	rules  []models.ClientEligibilityRule
	nextID int64
}

// NewMemoryRuleRepo constructs an empty in-memory RuleRepository.
func NewMemoryRuleRepo() RuleRepository {
	return &memoryRuleRepo{}
}

// ReplaceAll implements the delete-all-then-recreate lifecycle the sheet sync
// relies on. IDs keep climbing across replacements.
func (r *memoryRuleRepo) ReplaceAll(rules []models.ClientEligibilityRule) []models.ClientEligibilityRule {
	r.mu.Lock()
	defer r.mu.Unlock()
	replaced := make([]models.ClientEligibilityRule, len(rules))
	for i, rule := range rules {
		r.nextID++
		rule.ID = r.nextID
		replaced[i] = rule
	}
	r.rules = replaced
	return append([]models.ClientEligibilityRule(nil), replaced...)
}

func (r *memoryRuleRepo) All() []models.ClientEligibilityRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.ClientEligibilityRule(nil), r.rules...)
}

func (r *memoryRuleRepo) Active() []models.ClientEligibilityRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ClientEligibilityRule, 0, len(r.rules))
	for _, rule := range r.rules {
		if rule.Offered() {
			out = append(out, rule)
		}
	}
	return out
}

func (r *memoryRuleRepo) AllowedMeetingTypes(clientType string) map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	allowed := make(map[string]int)
	for _, rule := range r.rules {
		if rule.ClientType == clientType && rule.Offered() {
			allowed[rule.MeetingType] = rule.DurationMinutes
		}
	}
	return allowed
}

func (r *memoryRuleRepo) ClientTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rule := range r.rules {
		if _, ok := seen[rule.ClientType]; ok {
			continue
		}
		seen[rule.ClientType] = struct{}{}
		out = append(out, rule.ClientType)
	}
	sort.Strings(out)
	return out
}

func (r *memoryRuleRepo) DisplayName(clientType string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rule := range r.rules {
		if rule.ClientType == clientType && rule.DisplayName != "" {
			return rule.DisplayName
		}
	}
	return clientType
}

func (r *memoryRuleRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
