package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Auth modes selectable via SF_AUTH_MODE.
const (
	AuthModePassword          = "password"
	AuthModeClientCredentials = "client_credentials"
)

const defaultAPIVersion = "v59.0"

type Config struct {
	InstanceURL  string
	AuthMode     string
	ClientID     string
	ClientSecret string
	Username     string
	APIVersion   string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		InstanceURL:  os.Getenv("SF_INSTANCE_URL"),
		AuthMode:     os.Getenv("SF_AUTH_MODE"),
		ClientID:     os.Getenv("SF_CLIENT_ID"),
		ClientSecret: os.Getenv("SF_CLIENT_SECRET"),
		Username:     os.Getenv("SF_USERNAME"),
		APIVersion:   os.Getenv("SF_API_VERSION"),
	}

	if cfg.AuthMode == "" {
		cfg.AuthMode = AuthModePassword
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.InstanceURL == "" {
		return fmt.Errorf("SF_INSTANCE_URL is required (see .env.example)")
	}

	switch c.AuthMode {
	case AuthModePassword:
		if c.Username == "" {
			return fmt.Errorf("SF_USERNAME is required for password auth (see .env.example)")
		}
		// ClientID/ClientSecret are optional extras for the password grant
	case AuthModeClientCredentials:
		if c.ClientID == "" {
			return fmt.Errorf("SF_CLIENT_ID is required for client_credentials auth")
		}
		if c.ClientSecret == "" {
			return fmt.Errorf("SF_CLIENT_SECRET is required for client_credentials auth")
		}
	default:
		return fmt.Errorf("SF_AUTH_MODE must be %q or %q, got %q", AuthModePassword, AuthModeClientCredentials, c.AuthMode)
	}

	return nil
}
