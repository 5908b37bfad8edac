package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/dietpanel/internal/models"
)

func names(patients []models.Patient) []string {
	out := make([]string, 0, len(patients))
	for _, p := range patients {
		out = append(out, p.Name)
	}
	return out
}

func TestFilterPatients(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "blank query returns all",
			query: "   ",
			want:  []string{"Barış Karapelit", "Elif Y.", "Meriç B."},
		},
		{
			name:  "case insensitive",
			query: "ELIF",
			want:  []string{"Elif Y."},
		},
		{
			name:  "trimmed substring",
			query: "  karap ",
			want:  []string{"Barış Karapelit"},
		},
		{
			name:  "shared substring",
			query: "i",
			want:  []string{"Barış Karapelit", "Elif Y.", "Meriç B."},
		},
		{
			name:  "no match",
			query: "zeynep",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPatients(Patients(), tt.query)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Patients(), DefaultComplianceThreshold)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.Risk)
	// (72 + 86 + 54) / 3 = 70.67
	assert.Equal(t, 71, s.AverageCompliance)
	require.Len(t, s.BelowThreshold, 1)
	assert.Equal(t, "Meriç B.", s.BelowThreshold[0].Name)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, DefaultComplianceThreshold)

	assert.Equal(t, Summary{}, s)
}
