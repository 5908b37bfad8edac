package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/dietpanel/internal/session"
	"github.com/iudanet/dietpanel/internal/validation"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	// Запрашиваем email
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	// Запрашиваем пароль (любой непустой принимается)
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := validation.ValidateCredentials(email, password); err != nil {
		return fmt.Errorf("%w: %w", ErrEmptyCredentials, err)
	}

	if err := c.manager.Login(ctx, email, password); err != nil {
		return err
	}

	state := c.manager.State()

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("User: %s\n", state.Snapshot.User)
	c.io.Printf("Session expires in: %s\n", session.FormatMMSS(state.RemainingSeconds))

	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.manager.Logout(ctx); err != nil {
		return err
	}
	c.io.Println("✓ Logged out")
	return nil
}
