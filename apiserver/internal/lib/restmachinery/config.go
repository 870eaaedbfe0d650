package restmachinery

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "API_SERVER"

// serverConfig represents the options that tell the server how to listen,
// drawn from the environment.
type serverConfig struct {
	APIPort        int    `envconfig:"PORT" default:"8080"`
	APITLSEnabled  bool   `envconfig:"TLS_ENABLED" default:"false"`
	APITLSCertPath string `envconfig:"TLS_CERT_PATH"`
	APITLSKeyPath  string `envconfig:"TLS_KEY_PATH"`
}

// GetConfigFromEnvironment returns server configuration drawn from
// API_SERVER_* environment variables.
func GetConfigFromEnvironment() (Config, error) {
	c := serverConfig{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return nil, errors.Wrap(
			err,
			"error getting api server configuration from environment",
		)
	}
	return &c, nil
}

func (s *serverConfig) Port() int {
	return s.APIPort
}

func (s *serverConfig) TLSEnabled() bool {
	return s.APITLSEnabled
}

func (s *serverConfig) TLSCertPath() string {
	return s.APITLSCertPath
}

func (s *serverConfig) TLSKeyPath() string {
	return s.APITLSKeyPath
}
