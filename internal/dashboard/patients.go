package dashboard

import (
	"math"
	"strings"

	"github.com/iudanet/dietpanel/internal/models"
)

// FilterPatients returns patients whose name contains query, ignoring case.
// A blank query returns the list unchanged.
func FilterPatients(patients []models.Patient, query string) []models.Patient {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return patients
	}

	filtered := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.Name), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Summary holds the figures of the dashboard cards
type Summary struct {
	BelowThreshold    []models.Patient
	Total             int
	Active            int
	Risk              int
	AverageCompliance int // rounded, 0 for an empty list
}

// Summarize computes dashboard figures; patients with compliance under
// threshold are listed in BelowThreshold
func Summarize(patients []models.Patient, threshold int) Summary {
	s := Summary{Total: len(patients)}
	if len(patients) == 0 {
		return s
	}

	sum := 0
	for _, p := range patients {
		switch p.Status {
		case models.StatusActive:
			s.Active++
		case models.StatusRisk:
			s.Risk++
		}
		if p.Compliance < threshold {
			s.BelowThreshold = append(s.BelowThreshold, p)
		}
		sum += p.Compliance
	}
	s.AverageCompliance = int(math.Round(float64(sum) / float64(len(patients))))

	return s
}
