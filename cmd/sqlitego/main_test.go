package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Defaults(t *testing.T) {
	v := viper.New()
	cmd := newRootCommand(v)

	assert.Equal(t, "sqlitego", cmd.Use)
	assert.Equal(t, "sqlitego.db", v.GetString("db"))
	assert.False(t, v.GetBool("verbose"))
}

func TestRootCommand_Env(t *testing.T) {
	t.Setenv("SQLITEGO_DB", "/tmp/from-env.db")
	t.Setenv("SQLITEGO_VERBOSE", "true")

	v := viper.New()
	newRootCommand(v)

	assert.Equal(t, "/tmp/from-env.db", v.GetString("db"))
	assert.True(t, v.GetBool("verbose"))
}

func TestRootCommand_Flags(t *testing.T) {
	v := viper.New()
	cmd := newRootCommand(v)

	require.NoError(t, cmd.Flags().Parse([]string{"--db", "flag.db", "--verbose"}))
	assert.Equal(t, "flag.db", v.GetString("db"))
	assert.True(t, v.GetBool("verbose"))
}
