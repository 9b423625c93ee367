package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors
const (
	// ErrCodeConfigFileNotFound indicates the mandatory file of a part is missing.
	ErrCodeConfigFileNotFound ErrorCode = "CONFIG_FILE_NOT_FOUND"
)

// Environment errors
const (
	// ErrCodeRequiredEnvMissing indicates a required environment variable is not set.
	ErrCodeRequiredEnvMissing ErrorCode = "REQUIRED_ENV_MISSING"
	// ErrCodeInvalidEnvValue indicates an environment variable holds a value
	// that cannot be converted to the expected type.
	ErrCodeInvalidEnvValue ErrorCode = "INVALID_ENV_VALUE"
)

// Input errors
const (
	// ErrCodeInvalidInput indicates the caller passed an unusable argument.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)
