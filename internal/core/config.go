package core

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-driven settings for the client.
type Config struct {
	// Host is the Love Monster server host (no scheme).
	Host string `env:"LOVEMONSTER_HOST" envDefault:"love.snc1"`

	// ClientID identifies this client to the server. Sent as the
	// clientId query parameter on every request.
	ClientID string `env:"LOVEMONSTER_CLIENT_ID" envDefault:"gocli"`

	// Cookie is the auth cookie header value obtained from the Okta
	// web login flow. May be empty for unauthenticated usage.
	Cookie string `env:"LOVEMONSTER_COOKIE"`

	// ProfileImageURLFormat derives profile image URLs from usernames.
	ProfileImageURLFormat string `env:"LOVEMONSTER_PROFILE_IMAGE_URL_FORMAT" envDefault:"https://love.snc1/avatars/%s.png"`

	// DisableUserCache turns off user deduplication during parsing.
	DisableUserCache bool `env:"LOVEMONSTER_DISABLE_USER_CACHE"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from environment: %w", err)
	}
	return cfg, nil
}
