package validation

import (
	"fmt"
	"strings"

	"github.com/iudanet/dietpanel/internal/models"
)

const (
	// MaxComplianceThreshold верхняя граница порога соблюдения, %
	MaxComplianceThreshold = 100
	// MaxRepeatEvery максимальная длина цикла повторения плана
	MaxRepeatEvery = 365
)

// IsBlank reports whether s is empty after trimming whitespace
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateCredentials проверяет, что логин и пароль не пустые.
// Других проверок нет: вход в панель - демонстрационный
func ValidateCredentials(identifier, secret string) error {
	if IsBlank(identifier) {
		return fmt.Errorf("identifier cannot be empty")
	}
	if IsBlank(secret) {
		return fmt.Errorf("secret cannot be empty")
	}
	return nil
}

// ValidateRepeatRule проверяет правило повторения плана
func ValidateRepeatRule(rule models.RepeatRule) error {
	if rule.Every < 1 || rule.Every > MaxRepeatEvery {
		return fmt.Errorf("repeat interval must be between 1 and %d, got %d", MaxRepeatEvery, rule.Every)
	}

	switch rule.Unit {
	case models.RepeatDay, models.RepeatWeek:
		return nil
	default:
		return fmt.Errorf("unknown repeat unit %q", rule.Unit)
	}
}

// ValidateAlertRules проверяет настройки уведомлений
func ValidateAlertRules(rules models.AlertRules) error {
	if rules.ComplianceThreshold < 0 || rules.ComplianceThreshold > MaxComplianceThreshold {
		return fmt.Errorf("compliance threshold must be between 0 and %d, got %d",
			MaxComplianceThreshold, rules.ComplianceThreshold)
	}

	if rules.UnmarkedMealHours < 1 {
		return fmt.Errorf("unmarked meal hours must be positive, got %d", rules.UnmarkedMealHours)
	}

	if rules.PlanEndReminderDays < 0 {
		return fmt.Errorf("plan end reminder days cannot be negative, got %d", rules.PlanEndReminderDays)
	}

	for i, s := range rules.Scenarios {
		if IsBlank(s.Condition) || IsBlank(s.Action) {
			return fmt.Errorf("scenario %d must have a condition and an action", i+1)
		}
	}

	return nil
}
