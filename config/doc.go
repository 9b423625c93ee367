// Package config loads layered configuration for one application part.
//
// Files live directly in a configuration directory and are named
// {name}.{ext}. For a part such as "frontend" running in environment
// "dev", the loader considers, in order:
//
//	main.yaml                 (plus any extra common files)
//	frontend.yaml             mandatory
//	frontend_dev.yaml
//	local_frontend.yaml       only with local overrides enabled
//	local_frontend_dev.yaml   only with local overrides enabled
//
// Every file except the plain part file is optional. Existing files are
// parsed as plain data and deep-merged in that order, later files winning,
// and the caller's extra mapping is merged last.
//
// # Usage
//
//	loader := config.New("./config", config.WithCommonFiles("params"))
//	cfg, err := loader.LoadConfig("frontend", config.Mapping{"debug": true})
//
// Local overrides are enabled by WithLocalOverrides or, when that option
// is not given, by the ENABLE_LOCALCONF environment variable. The
// environment name comes from appenv.Name.
package config
