package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	// Only apply formatting if output is a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// reportError prints a single-line failure message identifying the action
// and resource. Commands report failures this way and still return nil so
// the CLI stays fire-and-forget; the full error goes to the log.
func reportError(action string, err error) {
	log.Debug().Err(err).Str("action", action).Msg("Command failed")
	fmt.Printf(MsgErrorFormat, action, err)
}
