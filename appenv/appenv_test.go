package appenv

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/confload/errors"
	"github.com/kbukum/confload/logger"
)

// resetState forgets every fixed setting.
func resetState(t *testing.T) {
	t.Helper()
	state = newSettingsState()
	t.Cleanup(func() { state = newSettingsState() })
}

// unsetEnv removes key for the duration of the test and restores it after.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFileName), []byte(content), 0o644))
	return dir
}

func TestEnv(t *testing.T) {
	unsetEnv(t, "CONFLOAD_UNSET_VAR")
	t.Setenv("CONFLOAD_SET_VAR", "value")
	t.Setenv("CONFLOAD_EMPTY_VAR", "")

	tests := []struct {
		name     string
		key      string
		def      string
		required bool
		want     string
		wantCode errors.ErrorCode
	}{
		{"unset returns default", "CONFLOAD_UNSET_VAR", "fallback", false, "fallback", ""},
		{"unset required fails", "CONFLOAD_UNSET_VAR", "ignored", true, "", errors.ErrCodeRequiredEnvMissing},
		{"set returns value", "CONFLOAD_SET_VAR", "fallback", false, "value", ""},
		{"set required returns value", "CONFLOAD_SET_VAR", "", true, "value", ""},
		{"empty counts as set", "CONFLOAD_EMPTY_VAR", "fallback", true, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Env(tc.key, tc.def, tc.required)
			if tc.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tc.wantCode), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGet(t *testing.T) {
	unsetEnv(t, "CONFLOAD_UNSET_VAR")
	assert.Equal(t, "fallback", Get("CONFLOAD_UNSET_VAR", "fallback"))
}

func TestName_Default(t *testing.T) {
	resetState(t)
	unsetEnv(t, "APP_ENV")

	assert.Equal(t, DefaultName, Name())
}

func TestName_ReadsVariableWhenNotFixed(t *testing.T) {
	resetState(t)
	t.Setenv("APP_ENV", "test")

	assert.Equal(t, "test", Name())
	assert.Nil(t, Fixed().Name, "reading the variable must not fix it")
}

func TestBootstrap_LoadsDotEnvWithoutOverwriting(t *testing.T) {
	resetState(t)
	unsetEnv(t, "APP_ENV", "APP_DEBUG", "CONFLOAD_FROM_DOTENV")
	t.Setenv("CONFLOAD_PRESET", "process")

	dir := writeDotEnv(t, "APP_ENV=prod\nCONFLOAD_FROM_DOTENV=yes\nCONFLOAD_PRESET=file\n")

	require.NoError(t, Bootstrap(dir))

	assert.Equal(t, "process", os.Getenv("CONFLOAD_PRESET"))
	assert.Equal(t, "yes", os.Getenv("CONFLOAD_FROM_DOTENV"))
	assert.Equal(t, "prod", Name())
	require.NotNil(t, Fixed().Name)
	assert.Equal(t, "prod", *Fixed().Name)
}

func TestBootstrap_MissingDotEnvIsFine(t *testing.T) {
	resetState(t)
	unsetEnv(t, "APP_ENV", "APP_DEBUG")

	require.NoError(t, Bootstrap(t.TempDir()))
	require.NoError(t, Bootstrap(""))
	assert.Equal(t, DefaultName, Name())
	assert.Nil(t, Fixed().Debug)
}

func TestBootstrap_FixOnce(t *testing.T) {
	resetState(t)
	unsetEnv(t, "APP_DEBUG")
	t.Setenv("APP_ENV", "staging")

	require.NoError(t, Bootstrap(""))
	assert.Equal(t, "staging", Name())

	t.Setenv("APP_ENV", "prod")
	require.NoError(t, Bootstrap(""), "re-bootstrap must not fail")
	assert.Equal(t, "staging", Name())
}

func TestBootstrap_DebugWidensLogging(t *testing.T) {
	resetState(t)
	unsetEnv(t, "APP_ENV")
	t.Setenv("APP_DEBUG", "true")
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	require.NoError(t, Bootstrap(""))

	assert.True(t, Debug())
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	logger.NewFromEnv("later")
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel(), "loggers built after bootstrap keep debug verbosity")
}

func TestBootstrap_DebugFalseKeepsLevel(t *testing.T) {
	resetState(t)
	unsetEnv(t, "APP_ENV")
	t.Setenv("APP_DEBUG", "false")
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	require.NoError(t, Bootstrap(""))

	assert.False(t, Debug())
	require.NotNil(t, Fixed().Debug)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	t.Setenv("APP_DEBUG", "true")
	require.NoError(t, Bootstrap(""))
	assert.False(t, Debug(), "debug flag is fixed once")
}

func TestBootstrap_InvalidDebug(t *testing.T) {
	resetState(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_DEBUG", "maybe")

	err := Bootstrap("")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidEnvValue))
	assert.False(t, Debug())

	require.NotNil(t, Fixed().Name, "the name is fixed even when debug is invalid")
	t.Setenv("APP_ENV", "staging")
	assert.Equal(t, "prod", Name())
}

func TestBootstrap_CustomPrefix(t *testing.T) {
	resetState(t)
	unsetEnv(t, "APP_ENV")
	t.Setenv("MYAPP_ENV", "qa")

	require.NoError(t, Bootstrap("", WithPrefix("MYAPP_")))
	assert.Equal(t, "qa", Name())
}

func TestBootstrap_PrefixIsKeptUntilGivenAgain(t *testing.T) {
	resetState(t)
	unsetEnv(t, "MYAPP_ENV", "APP_DEBUG", "MYAPP_DEBUG")
	t.Setenv("APP_ENV", "from-default-prefix")

	require.NoError(t, Bootstrap("", WithPrefix("MYAPP_")))
	require.NoError(t, Bootstrap(""))
	assert.Equal(t, DefaultName, Name(), "a bootstrap without WithPrefix must not switch back to APP_")

	t.Setenv("MYAPP_ENV", "qa")
	assert.Equal(t, "qa", Name())
}

func TestBootstrap_DotEnvDirectoryIsIgnored(t *testing.T) {
	resetState(t)
	unsetEnv(t, "APP_ENV", "APP_DEBUG")
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, EnvFileName), 0o755))

	require.NoError(t, Bootstrap(dir))
	assert.Equal(t, DefaultName, Name())
}

func TestBootstrap_InjectedEnvLoader(t *testing.T) {
	resetState(t)
	unsetEnv(t, "APP_ENV", "APP_DEBUG")

	var loaded []string
	err := Bootstrap("/virtual",
		WithExists(func(path string) bool { return true }),
		WithEnvLoader(func(path string) error {
			loaded = append(loaded, path)
			return nil
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/virtual", EnvFileName)}, loaded)

	boom := stderrors.New("unreadable")
	err = Bootstrap("/virtual",
		WithExists(func(path string) bool { return true }),
		WithEnvLoader(func(path string) error { return boom }),
	)
	assert.ErrorIs(t, err, boom)
}
