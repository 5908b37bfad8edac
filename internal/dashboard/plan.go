package dashboard

import (
	"fmt"
	"slices"

	"github.com/iudanet/dietpanel/internal/models"
	"github.com/iudanet/dietpanel/internal/validation"
)

// PlanEditor edits a plan template in memory
type PlanEditor struct {
	template models.PlanTemplate
}

// NewPlanEditor creates an editor over a copy of template
func NewPlanEditor(template models.PlanTemplate) *PlanEditor {
	template.Items = slices.Clone(template.Items)
	return &PlanEditor{template: template}
}

// Template returns a copy of the edited template
func (e *PlanEditor) Template() models.PlanTemplate {
	t := e.template
	t.Items = slices.Clone(e.template.Items)
	return t
}

// Items returns the items in their current order
func (e *PlanEditor) Items() []models.PlanItem {
	return slices.Clone(e.template.Items)
}

// Move takes the item with id out of the list and inserts it at toIndex.
// toIndex is clamped to the list bounds.
func (e *PlanEditor) Move(id string, toIndex int) error {
	from := slices.IndexFunc(e.template.Items, func(it models.PlanItem) bool {
		return it.ID == id
	})
	if from == -1 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	moved := e.template.Items[from]
	items := slices.Delete(slices.Clone(e.template.Items), from, from+1)
	toIndex = max(0, min(toIndex, len(items)))
	e.template.Items = slices.Insert(items, toIndex, moved)

	return nil
}

// SetRepeat replaces the repeat rule if it is valid
func (e *PlanEditor) SetRepeat(rule models.RepeatRule) error {
	if err := validation.ValidateRepeatRule(rule); err != nil {
		return fmt.Errorf("invalid repeat rule: %w", err)
	}
	e.template.Repeat = rule
	return nil
}

// Rename sets the template name
func (e *PlanEditor) Rename(name string) error {
	if validation.IsBlank(name) {
		return fmt.Errorf("template name cannot be empty")
	}
	e.template.Name = name
	return nil
}

// Save validates the template. Nothing is persisted.
func (e *PlanEditor) Save() error {
	if validation.IsBlank(e.template.Name) {
		return fmt.Errorf("template name cannot be empty")
	}
	if len(e.template.Items) == 0 {
		return ErrEmptyPlan
	}
	return validation.ValidateRepeatRule(e.template.Repeat)
}

// SaveAs validates the template under a new name and returns the copy.
// Nothing is persisted.
func (e *PlanEditor) SaveAs(name string) (models.PlanTemplate, error) {
	copied := NewPlanEditor(e.Template())
	if err := copied.Rename(name); err != nil {
		return models.PlanTemplate{}, err
	}
	if err := copied.Save(); err != nil {
		return models.PlanTemplate{}, err
	}
	return copied.Template(), nil
}
