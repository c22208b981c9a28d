package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings read from the process environment rather than the
// config file: the runtime environment name and the optional database
// connection for the PostgreSQL-backed store.
type Env struct {
	Environment string `env:"DUTY_ROSTER_ENV" envDefault:"development"`
	Database    struct {
		DSN            string `env:"DSN"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
	} `envPrefix:"DUTY_ROSTER_DATABASE_"`
}

// LoadEnv parses the environment settings.
func LoadEnv() (*Env, error) {
	e := &Env{}
	if err := env.Parse(e); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Only return the first error to keep logs readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return e, nil
}
