package appenv

import (
	"os"

	"github.com/kbukum/confload/errors"
)

// Env returns the value of the named environment variable. When the
// variable is absent it returns def, or a REQUIRED_ENV_MISSING error if
// required is set. A variable that is set to the empty string counts as
// present.
func Env(name, def string, required bool) (string, error) {
	v, ok := os.LookupEnv(name)
	if ok {
		return v, nil
	}
	if required {
		return "", errors.RequiredEnvMissing(name)
	}
	return def, nil
}

// Get is Env without the required check.
func Get(name, def string) string {
	v, _ := Env(name, def, false)
	return v
}
