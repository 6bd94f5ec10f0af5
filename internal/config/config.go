// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix for environment variable overrides.
// CREDGATE_TOKEN__SIGNING_SECRET maps to token.signing_secret.
const EnvPrefix = "CREDGATE_"

// Signing algorithms the gateway will accept. Anything else is a
// startup-fatal misconfiguration; there is no insecure fallback.
var allowedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Config holds all runtime settings for the gateway. It is built once at
// startup and passed by value into the components that need it; nothing
// reads configuration from ambient process state after load.
type Config struct {
	HTTP     HTTP     `koanf:"http" json:"http"`
	Upstream Upstream `koanf:"upstream" json:"upstream"`
	Token    Token    `koanf:"token" json:"token"`
	Metrics  Metrics  `koanf:"metrics" json:"metrics"`
	Log      Log      `koanf:"log" json:"log"`
}

// HTTP configures the inbound API server.
type HTTP struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `koanf:"addr" json:"addr"`
	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout" jsonschema:"oneof_type=string;integer"`
	// AllowedOrigins is the CORS origin allow-list. Empty means
	// cross-origin browser requests are rejected.
	AllowedOrigins []string `koanf:"allowed_origins" json:"allowed_origins,omitempty"`
}

// Upstream configures the user-directory lookup call.
type Upstream struct {
	// BaseURL is the directory service base, e.g. "http://user-api:8000".
	BaseURL string `koanf:"base_url" json:"base_url"`
	// Timeout bounds each lookup call. A hung directory must not pin
	// gateway capacity, so this is required.
	Timeout time.Duration `koanf:"timeout" json:"timeout" jsonschema:"oneof_type=string;integer"`
	// ServiceToken authenticates the gateway to the directory service.
	// Deliberately distinct from Token.SigningSecret: the client-facing
	// signing key and the service-to-service credential are separate
	// trust boundaries.
	ServiceToken string `koanf:"service_token" json:"service_token"`
}

// Token configures access token signing.
type Token struct {
	SigningSecret string `koanf:"signing_secret" json:"signing_secret"`
	// Algorithm is the JWT signing algorithm: HS256, HS384 or HS512.
	Algorithm string `koanf:"algorithm" json:"algorithm"`
	// TTL is the default token lifetime.
	TTL time.Duration `koanf:"ttl" json:"ttl" jsonschema:"oneof_type=string;integer"`
	// Issuer is the iss claim stamped on every token.
	Issuer string `koanf:"issuer" json:"issuer"`
}

// Metrics configures the observability server.
type Metrics struct {
	// Addr is the metrics/health listen address. Empty disables the server.
	Addr string `koanf:"addr" json:"addr,omitempty"`
}

// Log configures logging output.
type Log struct {
	// Format is "json" or "text".
	Format string `koanf:"format" json:"format"`
}

// Default returns the configuration baseline. Secrets and the upstream
// location have no defaults; they must be supplied explicitly.
func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Upstream: Upstream{
			Timeout: 5 * time.Second,
		},
		Token: Token{
			Algorithm: "HS256",
			TTL:       30 * time.Minute,
			Issuer:    "credgate",
		},
		Metrics: Metrics{
			Addr: "127.0.0.1:9100",
		},
		Log: Log{
			Format: "json",
		},
	}
}

// Load builds a Config from defaults, an optional YAML file, CREDGATE_*
// environment variables and command-line flags, in increasing precedence.
// path may be empty. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_FILE_UNREADABLE").
				With("path", path).
				Wrap(err)
		}
	}

	// Double underscore separates sections so single underscores survive
	// inside key names (CREDGATE_TOKEN__SIGNING_SECRET).
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return Config{}, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	return cfg, nil
}

// Validate enforces the fail-closed invariants. A gateway with missing or
// weak signing material must refuse to start rather than issue tokens.
func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("http.addr is required")
	}
	if c.Token.SigningSecret == "" {
		return oops.Code("CONFIG_INVALID").Errorf("token.signing_secret is required")
	}
	if c.Token.Algorithm == "" {
		return oops.Code("CONFIG_INVALID").Errorf("token.algorithm is required")
	}
	if _, ok := allowedAlgorithms[c.Token.Algorithm]; !ok {
		return oops.Code("CONFIG_INVALID").
			With("algorithm", c.Token.Algorithm).
			Errorf("token.algorithm must be one of HS256, HS384, HS512")
	}
	if c.Token.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("token.ttl must be positive")
	}
	if c.Upstream.BaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("upstream.base_url is required")
	}
	if c.Upstream.Timeout <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("upstream.timeout must be positive")
	}
	if c.Upstream.ServiceToken == "" {
		return oops.Code("CONFIG_INVALID").Errorf("upstream.service_token is required")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return oops.Code("CONFIG_INVALID").
			With("format", c.Log.Format).
			Errorf("log.format must be json or text")
	}
	return nil
}
