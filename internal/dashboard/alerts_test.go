package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertRulesForm_Defaults(t *testing.T) {
	form := NewAlertRulesForm()
	rules := form.Rules()

	assert.Equal(t, 70, rules.ComplianceThreshold)
	assert.Equal(t, 4, rules.UnmarkedMealHours)
	assert.Equal(t, 2, rules.PlanEndReminderDays)
	assert.True(t, rules.Mute.Night)
	assert.False(t, rules.Mute.Weekend)
	assert.False(t, rules.Mute.Holidays)
	assert.Len(t, rules.Scenarios, 3)
	assert.NoError(t, form.Save())
}

func TestAlertRulesForm_SaveAndReset(t *testing.T) {
	form := NewAlertRulesForm()

	rules := form.Rules()
	rules.ComplianceThreshold = 150
	form.Update(rules)

	assert.Error(t, form.Save())

	form.Reset()
	assert.Equal(t, DefaultAlertRules(), form.Rules())
	assert.NoError(t, form.Save())
}

func TestAlertRulesForm_RulesIsCopy(t *testing.T) {
	form := NewAlertRulesForm()

	rules := form.Rules()
	rules.Scenarios[0].Action = "changed"

	assert.NotEqual(t, "changed", form.Rules().Scenarios[0].Action)
}
