package models

// PatientStatus отражает состояние пациента в списке
type PatientStatus string

const (
	// StatusActive пациент следует плану
	StatusActive PatientStatus = "Aktif"
	// StatusRisk пациент в зоне риска по соблюдению плана
	StatusRisk PatientStatus = "Risk"
)

// Patient представляет пациента диетолога (mock данные)
type Patient struct {
	Name       string        `json:"name"`        // имя пациента
	Plan       string        `json:"plan"`        // название активного плана
	StartDate  string        `json:"start_date"`  // начало плана, YYYY-MM-DD
	EndDate    string        `json:"end_date"`    // окончание плана, YYYY-MM-DD
	LastAction string        `json:"last_action"` // последнее действие, как показывается в UI
	Status     PatientStatus `json:"status"`      // Aktif или Risk
	ID         int           `json:"id"`          // идентификатор
	Compliance int           `json:"compliance"`  // соблюдение плана, %
}

// AdherencePoint точка графика соблюдения плана по дням
type AdherencePoint struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}

// MealCompletion процент отмеченных приёмов пищи по слоту
type MealCompletion struct {
	Label string `json:"label"`
	Done  int    `json:"done"`
}

// MealSlot слот приёма пищи в расписании
type MealSlot struct {
	Label string `json:"label"`
	Time  string `json:"time"` // HH:MM
}
