package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/dietpanel/internal/dashboard"
	"github.com/iudanet/dietpanel/internal/models"
)

func (c *Cli) runPlan(args []string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	if len(args) > 0 {
		switch args[0] {
		case "move":
			if err := c.planMove(args[1:]); err != nil {
				return err
			}
		case "repeat":
			if err := c.planRepeat(args[1:]); err != nil {
				return err
			}
		case "rename":
			if err := c.plan.Rename(strings.Join(args[1:], " ")); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
		case "save-as":
			return c.planSaveAs(args[1:])
		default:
			return fmt.Errorf("%w: unknown plan action %q", ErrUsage, args[0])
		}

		// Сохранение только проверяет шаблон, ничего не пишется
		if err := c.plan.Save(); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
		c.io.Println("✓ Plan saved")
		c.io.Println()
	}

	c.printPlan()
	return nil
}

func (c *Cli) planMove(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: plan move <id> <index>", ErrUsage)
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: index must be a number, got %q", ErrUsage, args[1])
	}
	return c.plan.Move(args[0], index)
}

func (c *Cli) planRepeat(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: plan repeat <n> <day|week>", ErrUsage)
	}
	every, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: repeat count must be a number, got %q", ErrUsage, args[0])
	}
	return c.plan.SetRepeat(models.RepeatRule{Every: every, Unit: models.RepeatUnit(args[1])})
}

// planSaveAs validates a copy under a new name; the edited template is unchanged
func (c *Cli) planSaveAs(args []string) error {
	t, err := c.plan.SaveAs(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	c.io.Printf("✓ Plan saved as %q (%d items)\n", t.Name, len(t.Items))
	return nil
}

func (c *Cli) printPlan() {
	t := c.plan.Template()
	c.io.Printf("=== %s ===\n", t.Name)
	c.io.Printf("Repeat: every %d %s\n", t.Repeat.Every, t.Repeat.Unit)
	c.io.Println()
	for i, item := range t.Items {
		c.io.Printf("%d. [%s] %s\n", i, item.ID, item.Label)
	}

	c.io.Println()
	c.io.Println("Meal schedule:")
	for _, slot := range dashboard.MealSchedule() {
		c.io.Printf("  %s  %s\n", slot.Time, slot.Label)
	}
}
