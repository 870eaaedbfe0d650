package sessions

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "AUTH"

type tokenEnvConfig struct {
	SigningKey string        `envconfig:"JWT_SIGNING_KEY" required:"true"`
	Issuer     string        `envconfig:"TOKEN_ISSUER" default:"inkwell"`
	TTL        time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

// GetTokenConfigFromEnvironment returns credential configuration drawn from
// AUTH_* environment variables.
func GetTokenConfigFromEnvironment() (TokenConfig, error) {
	c := tokenEnvConfig{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return TokenConfig{}, errors.Wrap(
			err,
			"error getting token configuration from environment",
		)
	}
	return TokenConfig{
		SigningKey: []byte(c.SigningKey),
		Issuer:     c.Issuer,
		TTL:        c.TTL,
	}, nil
}
