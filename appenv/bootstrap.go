package appenv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/kbukum/confload/errors"
	"github.com/kbukum/confload/logger"
)

const (
	// DefaultPrefix is prepended to the debug and environment-name variables.
	DefaultPrefix = "APP_"
	// EnvFileName is the environment-definition file looked up by Bootstrap.
	EnvFileName = ".env"

	debugVar = "DEBUG"
	nameVar  = "ENV"
)

// nameVars and debugVars are populated by caarlos0/env. Pointer fields
// stay nil when the variable is absent or empty. They are parsed separately
// so a bad debug value cannot keep the name from being fixed.
type nameVars struct {
	Name *string `env:"ENV"`
}

type debugVars struct {
	Debug *bool `env:"DEBUG"`
}

type options struct {
	prefix  string
	exists  func(path string) bool
	loadEnv func(path string) error
}

// Option configures Bootstrap.
type Option func(*options)

// WithPrefix changes the prefix of the debug and environment-name variables.
// Name keeps reading the last prefix given explicitly; calls without this
// option leave it alone.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithExists overrides the file existence check used for the .env file.
func WithExists(fn func(path string) bool) Option {
	return func(o *options) { o.exists = fn }
}

// WithEnvLoader overrides how the .env file is applied to the process
// environment. The loader must not overwrite variables that are already set.
func WithEnvLoader(fn func(path string) error) Option {
	return func(o *options) { o.loadEnv = fn }
}

// Bootstrap loads directory/.env when present and fixes the debug flag and
// environment name from the process environment. Values fixed by an
// earlier call are never redefined.
func Bootstrap(directory string, opts ...Option) error {
	o := options{
		exists:  fileExists,
		loadEnv: func(path string) error { return godotenv.Load(path) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.Get("appenv")

	if directory != "" {
		path := filepath.Join(directory, EnvFileName)
		if o.exists(path) {
			if err := o.loadEnv(path); err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			log.Debug("loaded environment file", logger.Fields(logger.FieldPath, path))
		}
	}

	prefix := o.prefix
	if prefix == "" {
		prefix = state.currentPrefix()
	} else {
		state.setPrefix(prefix)
	}
	parseOpts := env.Options{Prefix: prefix}

	var names nameVars
	if err := env.ParseWithOptions(&names, parseOpts); err != nil {
		return errors.InvalidEnvValue(prefix+nameVar, err)
	}
	if names.Name != nil {
		state.fixName(*names.Name)
	}

	var debug debugVars
	if err := env.ParseWithOptions(&debug, parseOpts); err != nil {
		return errors.InvalidEnvValue(prefix+debugVar, err)
	}
	if debug.Debug != nil {
		if state.fixDebug(*debug.Debug) {
			logger.EnableDebug()
		}
	}

	log.Trace("environment bootstrapped", logger.Fields(logger.FieldEnv, Name(), "debug", Debug()))
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
