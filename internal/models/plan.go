package models

// RepeatUnit единица периода повторения плана
type RepeatUnit string

const (
	RepeatDay  RepeatUnit = "day"
	RepeatWeek RepeatUnit = "week"
)

// RepeatRule правило повторения шаблона плана, например каждые 14 дней
type RepeatRule struct {
	Unit  RepeatUnit `json:"unit"`
	Every int        `json:"every"`
}

// PlanItem элемент шаблона плана питания
type PlanItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PlanTemplate шаблон плана питания
type PlanTemplate struct {
	Name   string     `json:"name"`
	Items  []PlanItem `json:"items"`
	Repeat RepeatRule `json:"repeat"`
}
