// Package appenv prepares the process environment for configuration
// loading.
//
// Bootstrap loads an optional .env file from the configuration directory
// without overwriting variables that are already set, then fixes the
// process-wide debug flag and environment name from APP_DEBUG and APP_ENV.
// Both settings are fix-once: the first bootstrap that sees a variable
// wins and later calls leave it untouched.
//
//	if err := appenv.Bootstrap("./config"); err != nil {
//	    return err
//	}
//	env := appenv.Name() // "dev" unless APP_ENV says otherwise
//
// Env reads single variables with an optional default or a required flag.
package appenv
