package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", env.Environment)
	assert.Equal(t, "", env.Database.DSN)
	assert.Equal(t, 10, env.Database.ConnectTimeout)
	assert.Equal(t, 10, env.Database.QueryTimeout)
}

func TestLoadEnv_ReadsDatabaseSettings(t *testing.T) {
	t.Setenv("DUTY_ROSTER_ENV", "production")
	t.Setenv("DUTY_ROSTER_DATABASE_DSN", "postgres://localhost:5432/duty_roster")
	t.Setenv("DUTY_ROSTER_DATABASE_QUERY_TIMEOUT", "30")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "production", env.Environment)
	assert.Equal(t, "postgres://localhost:5432/duty_roster", env.Database.DSN)
	assert.Equal(t, 30, env.Database.QueryTimeout)
	assert.Equal(t, 10, env.Database.ConnectTimeout)
}

func TestLoadEnv_RejectsMalformedTimeout(t *testing.T) {
	t.Setenv("DUTY_ROSTER_DATABASE_CONNECT_TIMEOUT", "soon")

	_, err := LoadEnv()
	assert.Error(t, err)
}
