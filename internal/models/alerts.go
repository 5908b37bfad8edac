package models

// MuteWindows периоды, в которые уведомления не отправляются
type MuteWindows struct {
	Night    bool `json:"night"` // 23:00-07:00
	Weekend  bool `json:"weekend"`
	Holidays bool `json:"holidays"`
}

// AlertScenario автоматический сценарий: условие и действие
type AlertScenario struct {
	Condition string `json:"condition"`
	Action    string `json:"action"`
}

// AlertRules настройки уведомлений диетолога
type AlertRules struct {
	Scenarios           []AlertScenario `json:"scenarios"`
	Mute                MuteWindows     `json:"mute"`
	ComplianceThreshold int             `json:"compliance_threshold"`   // %, ниже - уведомление
	UnmarkedMealHours   int             `json:"unmarked_meal_hours"`    // часов после приёма пищи без отметки
	PlanEndReminderDays int             `json:"plan_end_reminder_days"` // дней до окончания плана
}
