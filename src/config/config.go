// Package config provides environment configuration for the cirrus-run CLI.
// The core packages never read the environment themselves; the CLI loads this
// once and hands the values to the session and poller constructors.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the CLI needs to construct a session.
type Config struct {
	// Token authenticates against the Cirrus CI API.
	Token string `env:"CIRRUS_TOKEN"`
	// APIURL is the GraphQL endpoint.
	APIURL string `env:"CIRRUS_API_URL" envDefault:"https://api.cirrus-ci.com/graphql"`
	// LogURL is the base URL for raw task log downloads.
	LogURL string `env:"CIRRUS_LOG_URL" envDefault:"https://api.cirrus-ci.com/v1"`
	// PollInterval is the sleep between status polls.
	PollInterval time.Duration `env:"CIRRUS_POLL_INTERVAL" envDefault:"3s"`
	// BuildTimeout is the overall wall-clock budget for one build.
	BuildTimeout time.Duration `env:"CIRRUS_TIMEOUT" envDefault:"1h"`
	// CreditsMessage, when set, marks builds failing with a matching task
	// notification as credit-exhaustion failures.
	CreditsMessage string `env:"CIRRUS_CREDITS_MESSAGE"`
}

// Load parses the configuration from the given environment, e.g.
// os.Environ().
func Load(environ []string) (*Config, error) {
	var cfg Config
	err := env.ParseWithOptions(&cfg, env.Options{
		Environment: env.ToMap(environ),
	})
	if err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("CIRRUS_TOKEN environment variable is required")
	}
	return &cfg, nil
}
