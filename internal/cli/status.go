package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iudanet/dietpanel/internal/session"
)

func (c *Cli) runStatus() error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	state := c.manager.State()
	if !state.Authenticated {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'dietpanel login' to start a session.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("User: %s\n", state.Snapshot.User)
	c.io.Printf("Expires at: %s\n", time.UnixMilli(state.Snapshot.ExpiresAt).Format(time.RFC3339))
	c.io.Printf("Time remaining: %s\n", session.FormatMMSS(state.RemainingSeconds))

	return nil
}

func (c *Cli) runExtend(ctx context.Context, args []string) error {
	minutes := session.DefaultExtendMinutes
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 || n > session.MaxExtendMinutes {
			return fmt.Errorf("%w: minutes must be between 1 and %d, got %q",
				ErrUsage, session.MaxExtendMinutes, args[0])
		}
		minutes = n
	}

	if err := c.requireSession(); err != nil {
		return err
	}
	if err := c.manager.Extend(ctx, minutes); err != nil {
		return err
	}

	state := c.manager.State()
	c.io.Printf("✓ Session extended by %d minutes\n", minutes)
	c.io.Printf("Time remaining: %s\n", session.FormatMMSS(state.RemainingSeconds))
	return nil
}
