package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/iudanet/dietpanel/internal/dashboard"
)

func (c *Cli) runPatients(args []string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	all := dashboard.Patients()
	list := dashboard.FilterPatients(all, strings.Join(args, " "))

	c.io.Println("=== Patients ===")
	c.io.Println()
	if len(list) == 0 {
		c.io.Println("No patients found.")
	} else {
		var b strings.Builder
		w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPLAN\tDATES\tCOMPLIANCE\tLAST ACTION\tSTATUS")
		for _, p := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s - %s\t%d%%\t%s\t%s\n",
				p.ID, p.Name, p.Plan, p.StartDate, p.EndDate, p.Compliance, p.LastAction, p.Status)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("failed to render patients: %w", err)
		}
		c.io.Printf("%s", b.String())
	}

	// Сводка считается по всем пациентам, как на карточках дашборда
	threshold := c.alerts.Rules().ComplianceThreshold
	summary := dashboard.Summarize(all, threshold)
	c.io.Println()
	c.io.Printf("Active: %d  Risk: %d  Average compliance: %d%%\n",
		summary.Active, summary.Risk, summary.AverageCompliance)
	for _, p := range summary.BelowThreshold {
		c.io.Printf("⚠️  %s is below %d%% compliance (%d%%)\n", p.Name, threshold, p.Compliance)
	}

	c.io.Println()
	c.io.Println("Adherence (7 days):")
	points := make([]string, 0, 7)
	for _, p := range dashboard.AdherenceSeries() {
		points = append(points, fmt.Sprintf("%s:%d%%", p.Day, p.Value))
	}
	c.io.Println(" ", strings.Join(points, "  "))

	c.io.Println("Meal completion:")
	meals := make([]string, 0, 6)
	for _, m := range dashboard.MealCompletion() {
		meals = append(meals, fmt.Sprintf("%s %d%%", m.Label, m.Done))
	}
	c.io.Println(" ", strings.Join(meals, ", "))

	return nil
}
