package cli

import (
	"context"
	"fmt"
	"io"
)

// Run executes command with its arguments
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus()
	case "extend":
		return c.runExtend(ctx, args)
	case "watch":
		return c.runWatch(ctx)
	case "patients":
		return c.runPatients(args)
	case "plan":
		return c.runPlan(args)
	case "alerts":
		return c.runAlerts(args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage prints usage information
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `DietPanel - dietitian dashboard (demo session)

Usage:
  dietpanel [global flags] <command> [arguments]

Global flags:
  -version           Show version information
  -backend string    Session storage: memory, bolt, sqlite, redis
  -db string         Path to BoltDB file
  -sqlite string     Path to SQLite file
  -redis-addr string Redis address

Commands:
  login                      Start a 30 minute demo session
  logout                     End the session
  status                     Show session status
  extend [minutes]           Extend the session (default 15 minutes)
  watch                      Show a live countdown until the session ends
  patients [query]           List patients, optionally filtered by name
  plan                       Show the plan template
  plan move <id> <index>     Move a plan item to a position
  plan repeat <n> <day|week> Set the repeat rule
  plan rename <name>         Rename the plan template
  plan save-as <name>        Save a copy under a new name
  alerts                     Show alert rules
  alerts set <field> <value> Change a rule: threshold, unmarked-hours,
                             reminder-days, mute-night, mute-weekend, mute-holidays
  alerts reset               Restore the default rules

Examples:
  dietpanel login
  dietpanel extend 30
  dietpanel patients elif
  dietpanel plan move a2 0
  dietpanel alerts set threshold 60
`)
}
