// Package logger provides structured logging for confload using zerolog.
//
// It supports JSON and console output, log level configuration and
// component-scoped loggers. Environment bootstrap calls EnableDebug when
// the application runs in debug mode, which lowers the global level to
// trace so loader resolution details become visible.
//
// # Usage
//
//	log := logger.Get("config")
//	log.Debug("resolved config file", logger.Fields("path", p))
package logger
