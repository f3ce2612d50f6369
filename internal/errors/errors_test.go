package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap_PreservesSentinelAndUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != ErrInternalServer.Code || err.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected code/status: %s/%d", err.Code, err.StatusCode)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the internal cause")
	}
	if err.Error() != ErrInternalServer.Message {
		t.Errorf("Error() = %q, must not leak internal detail", err.Error())
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "amount is required")
	if err.Message != "amount is required" {
		t.Errorf("message = %q", err.Message)
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("sentinel must not be mutated")
	}
}

func TestWithFields(t *testing.T) {
	fields := map[string]string{"email": "Valid email is required"}
	err := WithFields(ErrInvalidInput, fields)
	if err.Fields["email"] != "Valid email is required" {
		t.Errorf("fields = %v", err.Fields)
	}
	if ErrInvalidInput.Fields != nil {
		t.Error("sentinel must not carry fields")
	}
}
