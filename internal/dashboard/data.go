// Package dashboard holds the dietitian panel data and the logic behind its
// views: patient search, summary figures, the plan template editor and the
// alert rules form. All data is hardcoded and saving is a no-op.
package dashboard

import "github.com/iudanet/dietpanel/internal/models"

// DefaultComplianceThreshold is the compliance percentage under which a patient is flagged
const DefaultComplianceThreshold = 70

// Patients returns the mock patient list
func Patients() []models.Patient {
	return []models.Patient{
		{
			ID:         1,
			Name:       "Barış Karapelit",
			Plan:       "2 Haftalık Fit Plan",
			StartDate:  "2025-11-03",
			EndDate:    "2025-11-17",
			Compliance: 72,
			LastAction: "Bugün 14:05",
			Status:     models.StatusActive,
		},
		{
			ID:         2,
			Name:       "Elif Y.",
			Plan:       "Düşük Karb Plan",
			StartDate:  "2025-11-01",
			EndDate:    "2025-11-15",
			Compliance: 86,
			LastAction: "Dün 20:11",
			Status:     models.StatusActive,
		},
		{
			ID:         3,
			Name:       "Meriç B.",
			Plan:       "Glütensiz 14G",
			StartDate:  "2025-10-29",
			EndDate:    "2025-11-12",
			Compliance: 54,
			LastAction: "3 gün önce",
			Status:     models.StatusRisk,
		},
	}
}

// AdherenceSeries returns the weekly adherence chart data
func AdherenceSeries() []models.AdherencePoint {
	return []models.AdherencePoint{
		{Day: "1", Value: 70},
		{Day: "2", Value: 68},
		{Day: "3", Value: 72},
		{Day: "4", Value: 74},
		{Day: "5", Value: 71},
		{Day: "6", Value: 76},
		{Day: "7", Value: 78},
	}
}

// MealCompletion returns completion percentages per meal slot
func MealCompletion() []models.MealCompletion {
	return []models.MealCompletion{
		{Label: "Kahvaltı", Done: 85},
		{Label: "Ara 1", Done: 78},
		{Label: "Öğle", Done: 82},
		{Label: "Ara 2", Done: 73},
		{Label: "Akşam", Done: 88},
		{Label: "Gece Ara", Done: 60},
	}
}

// MealSchedule returns the daily meal slots
func MealSchedule() []models.MealSlot {
	return []models.MealSlot{
		{Label: "Kahvaltı", Time: "09:00"},
		{Label: "Ara 1", Time: "11:00"},
		{Label: "Öğle", Time: "13:30"},
		{Label: "Ara 2", Time: "16:30"},
		{Label: "Akşam", Time: "19:30"},
		{Label: "Gece Ara", Time: "22:30"},
	}
}

// DefaultPlanTemplate returns the template shown in the plan editor
func DefaultPlanTemplate() models.PlanTemplate {
	return models.PlanTemplate{
		Name: "2 Haftalık Fit Plan",
		Items: []models.PlanItem{
			{ID: "k", Label: "Kahvaltı: 1 haşlanmış yumurta"},
			{ID: "a1", Label: "Ara 1: 1 fincan sade kahve"},
			{ID: "o", Label: "Öğle: 1 kase mevsim salata + 1 dilim tam buğday"},
			{ID: "a2", Label: "Ara 2: 6 adet badem"},
			{ID: "a", Label: "Akşam: Izgara tavuk + salata"},
		},
		Repeat: models.RepeatRule{Every: 14, Unit: models.RepeatDay},
	}
}

// DefaultAlertRules returns the alert settings the form starts with
func DefaultAlertRules() models.AlertRules {
	return models.AlertRules{
		ComplianceThreshold: DefaultComplianceThreshold,
		UnmarkedMealHours:   4,
		PlanEndReminderDays: 2,
		Mute:                models.MuteWindows{Night: true},
		Scenarios: []models.AlertScenario{
			{Condition: "48 saatte 3 öğün kaçtı", Action: "Hastaya push bildirimi"},
			{Condition: "Uyum <60", Action: "Diyetisyene e-posta"},
			{Condition: "Plan bitişine 1 gün", Action: "Yeni plan öner"},
		},
	}
}
