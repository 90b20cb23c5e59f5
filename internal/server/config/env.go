package config

import (
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// Environment variables recognised by parseEnv.
const (
	EnvRunAddress  = "RUN_ADDRESS"
	EnvGRPCAddress = "GRPC_ADDRESS"
	EnvDatabaseDSN = "DATABASE_DSN"
	EnvJWTSecret   = "JWT_SECRET"
	EnvJWTExpires  = "JWT_EXPIRES_IN"
	EnvLogFormat   = "LOG_FORMAT"
)

type lookupFunc func(key string) (string, bool)

// parseEnv overlays non-empty environment variables onto config.
func parseEnv(config *Config, lookup lookupFunc) error {
	strs := map[string]*string{
		EnvRunAddress:  &config.EndpointAddrHTTP,
		EnvGRPCAddress: &config.EndpointAddrGRPC,
		EnvDatabaseDSN: &config.DatabaseDSN,
		EnvJWTSecret:   &config.SecretKey,
		EnvLogFormat:   &config.LogFormat,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(EnvJWTExpires); ok && v != "" {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJWTExpires, err)
		}
		config.TokenTTL = d
	}

	return nil
}
