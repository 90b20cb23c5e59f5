package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   REST bind address (e.g. ":8080")
//	-g string   gRPC health bind address; empty disables it
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-t string   token lifetime ("1d", "12h", "3600")
//	-i string   token issuer
//	-b int      bcrypt cost
//	-l string   log format: json, text, zap
//
// Only these flags are considered; everything else in args is filtered out
// with flagx.FilterArgs first.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-i", "-b", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the REST API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run the gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	ttl := fs.String("t", "", "token lifetime")
	fs.StringVar(&config.TokenIssuer, "i", config.TokenIssuer, "token issuer")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *ttl != "" {
		d, err := timex.ParseDuration(*ttl)
		if err != nil {
			return fmt.Errorf("-t: %w", err)
		}
		config.TokenTTL = d
	}
	return nil
}
