package config

import (
	"fmt"
	"testing"

	"weatherdesk/internal/types"
)

// TestSecretStringAlias verifies that config.SecretString is the same type
// as types.SecretString and retains its redaction behavior.
func TestSecretStringAlias(t *testing.T) {
	secret := SecretString("my-api-key")

	if got := fmt.Sprintf("%v", secret); got != "***REDACTED***" {
		t.Errorf("fmt.Sprintf(%%v) = %q, want redacted", got)
	}
	if got := secret.Unmask(); got != "my-api-key" {
		t.Errorf("SecretString.Unmask() = %q, want %q", got, "my-api-key")
	}

	var typesSecret types.SecretString = "test"
	var configSecret SecretString = typesSecret
	if configSecret != typesSecret {
		t.Error("config.SecretString and types.SecretString should be the same type")
	}
}

// TestConfigErrorFormat verifies the diagnostic message layout.
func TestConfigErrorFormat(t *testing.T) {
	withCause := &ConfigError{Type: ErrParsing, Message: "bad value", Err: fmt.Errorf("boom")}
	if got, want := withCause.Error(), "[PARSING_FAILED] bad value: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &ConfigError{Type: ErrValidation, Message: "invalid"}
	if got, want := bare.Error(), "[VALIDATION_FAILED] invalid"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if bare.Unwrap() != nil {
		t.Error("Unwrap() should be nil without a cause")
	}
}
