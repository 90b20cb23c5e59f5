package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// parseFlags populates selected Config fields from command-line flags.
// args is filtered with flagx.FilterArgs first so flags meant for other
// components do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server REST API base URL")
	timeout := fs.String("t", "", "request timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *timeout != "" {
		d, err := timex.ParseDuration(*timeout)
		if err != nil {
			return fmt.Errorf("-t: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
