package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad part")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Message != "bad part" {
		t.Errorf("expected message 'bad part', got %q", err.Message)
	}
}

func TestAppError_ConfigFileNotFound_Success(t *testing.T) {
	err := ConfigFileNotFound("/etc/app/frontend.yaml")
	if err.Code != ErrCodeConfigFileNotFound {
		t.Errorf("expected CONFIG_FILE_NOT_FOUND, got %s", err.Code)
	}
	if !strings.Contains(err.Error(), "/etc/app/frontend.yaml") {
		t.Errorf("expected path in message, got %q", err.Error())
	}
	if err.Details["path"] != "/etc/app/frontend.yaml" {
		t.Errorf("expected path detail, got %v", err.Details["path"])
	}
}

func TestAppError_RequiredEnvMissing_Success(t *testing.T) {
	err := RequiredEnvMissing("DB_DSN")
	if err.Code != ErrCodeRequiredEnvMissing {
		t.Errorf("expected REQUIRED_ENV_MISSING, got %s", err.Code)
	}
	if err.Details["name"] != "DB_DSN" {
		t.Errorf("expected name=DB_DSN, got %v", err.Details["name"])
	}
}

func TestAppError_InvalidEnvValue_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("strconv.ParseBool: parsing \"maybe\": invalid syntax")
	err := InvalidEnvValue("APP_DEBUG", cause)
	if err.Code != ErrCodeInvalidEnvValue {
		t.Errorf("expected INVALID_ENV_VALUE, got %s", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("part", "must not be empty")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "part" {
		t.Errorf("expected field=part, got %v", err.Details["field"])
	}

	err = InvalidInput("", "anything")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no 'field' key when field is empty")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := New(ErrCodeInvalidInput, "wrapped").WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("expected cause in error string, got %q", err.Error())
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{Code: ErrCodeInvalidInput, Message: "x"}
	err.WithDetail("key", "value")
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized")
	}
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := InvalidEnvValue("X", cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if ConfigFileNotFound("x").Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", RequiredEnvMissing("TOKEN"))

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to find the AppError")
	}
	if appErr.Code != ErrCodeRequiredEnvMissing {
		t.Errorf("expected REQUIRED_ENV_MISSING, got %s", appErr.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("plain error should not convert")
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to be true for wrapped AppError")
	}
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"matching code", ConfigFileNotFound("a"), ErrCodeConfigFileNotFound, true},
		{"wrapped matching code", fmt.Errorf("ctx: %w", ConfigFileNotFound("a")), ErrCodeConfigFileNotFound, true},
		{"different code", RequiredEnvMissing("A"), ErrCodeConfigFileNotFound, false},
		{"plain error", fmt.Errorf("nope"), ErrCodeConfigFileNotFound, false},
		{"nil error", nil, ErrCodeConfigFileNotFound, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasCode(tc.err, tc.code); got != tc.want {
				t.Errorf("HasCode() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var err error = ConfigFileNotFound("x")
	if err.Error() == "" {
		t.Error("expected non-empty error string")
	}
}
