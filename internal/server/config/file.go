package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Pointer fields
// distinguish "absent" from "zero", so a file only overrides what it sets.
type FileConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN      *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey        *string         `json:"secret_key" yaml:"secret_key"`
	TokenTTL         *timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	TokenIssuer      *string         `json:"token_issuer" yaml:"token_issuer"`
	BcryptCost       *int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	LogFormat        *string         `json:"log_format" yaml:"log_format"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// parseFile overlays the file given by -c/-config, if any. The format is
// chosen by extension: .yaml and .yml are YAML, anything else is JSON.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(config *Config) {
	setIf(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, fc.DatabaseDSN)
	setIf(&config.SecretKey, fc.SecretKey)
	setIf(&config.TokenIssuer, fc.TokenIssuer)
	setIf(&config.BcryptCost, fc.BcryptCost)
	setIf(&config.LogFormat, fc.LogFormat)
	if fc.TokenTTL != nil {
		config.TokenTTL = fc.TokenTTL.Duration
	}
	if fc.ShutdownTimeout != nil {
		config.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
