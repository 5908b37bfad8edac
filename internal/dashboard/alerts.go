package dashboard

import (
	"fmt"
	"slices"

	"github.com/iudanet/dietpanel/internal/models"
	"github.com/iudanet/dietpanel/internal/validation"
)

// AlertRulesForm holds the edited alert settings
type AlertRulesForm struct {
	rules models.AlertRules
}

// NewAlertRulesForm creates a form filled with DefaultAlertRules
func NewAlertRulesForm() *AlertRulesForm {
	return &AlertRulesForm{rules: DefaultAlertRules()}
}

// Rules returns a copy of the current settings
func (f *AlertRulesForm) Rules() models.AlertRules {
	r := f.rules
	r.Scenarios = slices.Clone(f.rules.Scenarios)
	return r
}

// Update replaces the settings
func (f *AlertRulesForm) Update(rules models.AlertRules) {
	rules.Scenarios = slices.Clone(rules.Scenarios)
	f.rules = rules
}

// Save validates the settings. Nothing is persisted.
func (f *AlertRulesForm) Save() error {
	if err := validation.ValidateAlertRules(f.rules); err != nil {
		return fmt.Errorf("invalid alert rules: %w", err)
	}
	return nil
}

// Reset restores DefaultAlertRules
func (f *AlertRulesForm) Reset() {
	f.rules = DefaultAlertRules()
}
