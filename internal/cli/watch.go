package cli

import (
	"context"

	"github.com/iudanet/dietpanel/internal/session"
)

// runWatch drives the session event loop and prints the countdown until the
// session ends here or in another context, or ctx is cancelled.
func (c *Cli) runWatch(ctx context.Context) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.manager.Run(ctx)
	}()

	c.io.Println("Watching session, press Ctrl+C to stop")
	last := -1
	show := func(state session.State) {
		if state.RemainingSeconds == last {
			return
		}
		last = state.RemainingSeconds
		c.io.Printf("\rSession expires in %s ", session.FormatMMSS(state.RemainingSeconds))
	}
	show(c.manager.State())

	for {
		select {
		case <-ctx.Done():
			c.io.Println()
			return <-errCh
		case err := <-errCh:
			c.io.Println()
			return err
		case state := <-c.updates:
			if !state.Authenticated {
				cancel()
				c.io.Println()
				c.io.Println("Session ended")
				return <-errCh
			}
			show(state)
		}
	}
}
