// Package errors provides the structured error type used across confload.
//
// Every failure the loader produces itself carries a machine-readable
// ErrorCode so callers can branch on it without string matching:
//
//	cfg, err := loader.LoadConfig("frontend", nil)
//	if errors.HasCode(err, errors.ErrCodeConfigFileNotFound) {
//	    // the mandatory frontend file is missing
//	}
//
// Failures that come from reading or parsing a configuration file are not
// wrapped in an AppError; they reach the caller exactly as the parser
// reported them.
package errors
