package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/dietpanel/internal/models"
)

func itemIDs(items []models.PlanItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestPlanEditor_Move(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		toIndex int
		want    []string
	}{
		{name: "first to last", id: "k", toIndex: 4, want: []string{"a1", "o", "a2", "a", "k"}},
		{name: "last to first", id: "a", toIndex: 0, want: []string{"a", "k", "a1", "o", "a2"}},
		{name: "middle down", id: "a1", toIndex: 2, want: []string{"k", "o", "a1", "a2", "a"}},
		{name: "same place", id: "o", toIndex: 2, want: []string{"k", "a1", "o", "a2", "a"}},
		{name: "index above bounds", id: "k", toIndex: 99, want: []string{"a1", "o", "a2", "a", "k"}},
		{name: "negative index", id: "a2", toIndex: -3, want: []string{"a2", "k", "a1", "o", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			editor := NewPlanEditor(DefaultPlanTemplate())

			require.NoError(t, editor.Move(tt.id, tt.toIndex))
			assert.Equal(t, tt.want, itemIDs(editor.Items()))
		})
	}
}

func TestPlanEditor_MoveUnknown(t *testing.T) {
	editor := NewPlanEditor(DefaultPlanTemplate())
	before := editor.Items()

	err := editor.Move("missing", 0)

	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, before, editor.Items())
}

func TestPlanEditor_DoesNotAliasTemplate(t *testing.T) {
	template := DefaultPlanTemplate()
	editor := NewPlanEditor(template)

	require.NoError(t, editor.Move("a", 0))

	assert.Equal(t, "k", template.Items[0].ID)
	items := editor.Items()
	items[0].Label = "changed"
	assert.NotEqual(t, "changed", editor.Items()[0].Label)
}

func TestPlanEditor_SetRepeat(t *testing.T) {
	editor := NewPlanEditor(DefaultPlanTemplate())

	require.NoError(t, editor.SetRepeat(models.RepeatRule{Every: 2, Unit: models.RepeatWeek}))
	assert.Equal(t, models.RepeatRule{Every: 2, Unit: models.RepeatWeek}, editor.Template().Repeat)

	assert.Error(t, editor.SetRepeat(models.RepeatRule{Every: 0, Unit: models.RepeatDay}))
	assert.Equal(t, models.RepeatRule{Every: 2, Unit: models.RepeatWeek}, editor.Template().Repeat)
}

func TestPlanEditor_Save(t *testing.T) {
	editor := NewPlanEditor(DefaultPlanTemplate())
	assert.NoError(t, editor.Save())

	empty := NewPlanEditor(models.PlanTemplate{
		Name:   "Boş",
		Repeat: models.RepeatRule{Every: 7, Unit: models.RepeatDay},
	})
	assert.ErrorIs(t, empty.Save(), ErrEmptyPlan)

	assert.Error(t, editor.Rename("  "))
}

func TestPlanEditor_SaveAs(t *testing.T) {
	editor := NewPlanEditor(DefaultPlanTemplate())

	copied, err := editor.SaveAs("Yeni Plan")
	require.NoError(t, err)
	assert.Equal(t, "Yeni Plan", copied.Name)
	assert.Equal(t, "2 Haftalık Fit Plan", editor.Template().Name)

	_, err = editor.SaveAs("")
	assert.Error(t, err)
}
