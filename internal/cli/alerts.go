package cli

import (
	"fmt"
	"strconv"
)

func (c *Cli) runAlerts(args []string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	if len(args) > 0 {
		switch args[0] {
		case "set":
			if err := c.alertsSet(args[1:]); err != nil {
				return err
			}
			c.io.Println("✓ Alert rules saved")
		case "reset":
			c.alerts.Reset()
			c.io.Println("✓ Alert rules reset to defaults")
		default:
			return fmt.Errorf("%w: unknown alerts action %q", ErrUsage, args[0])
		}
		c.io.Println()
	}

	c.printAlerts()
	return nil
}

// alertsSet changes one field and saves the form. Invalid values leave the
// rules unchanged.
func (c *Cli) alertsSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: alerts set <field> <value>", ErrUsage)
	}
	field, value := args[0], args[1]

	prev := c.alerts.Rules()
	next := c.alerts.Rules()

	var err error
	switch field {
	case "threshold":
		next.ComplianceThreshold, err = strconv.Atoi(value)
	case "unmarked-hours":
		next.UnmarkedMealHours, err = strconv.Atoi(value)
	case "reminder-days":
		next.PlanEndReminderDays, err = strconv.Atoi(value)
	case "mute-night":
		next.Mute.Night, err = strconv.ParseBool(value)
	case "mute-weekend":
		next.Mute.Weekend, err = strconv.ParseBool(value)
	case "mute-holidays":
		next.Mute.Holidays, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%w: unknown alerts field %q", ErrUsage, field)
	}
	if err != nil {
		return fmt.Errorf("%w: bad value %q for %s", ErrUsage, value, field)
	}

	c.alerts.Update(next)
	if err := c.alerts.Save(); err != nil {
		c.alerts.Update(prev)
		return fmt.Errorf("failed to save alert rules: %w", err)
	}
	return nil
}

func (c *Cli) printAlerts() {
	r := c.alerts.Rules()
	c.io.Println("=== Alert Rules ===")
	c.io.Println()
	c.io.Printf("Compliance threshold: %d%%\n", r.ComplianceThreshold)
	c.io.Printf("Unmarked meal after: %d h\n", r.UnmarkedMealHours)
	c.io.Printf("Plan end reminder: %d days before\n", r.PlanEndReminderDays)
	c.io.Printf("Mute: night=%t weekend=%t holidays=%t\n", r.Mute.Night, r.Mute.Weekend, r.Mute.Holidays)

	c.io.Println()
	c.io.Println("Scenarios:")
	for _, s := range r.Scenarios {
		c.io.Printf("  IF %s THEN %s\n", s.Condition, s.Action)
	}
}
