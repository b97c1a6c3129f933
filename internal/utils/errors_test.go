package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeGenerationFailed, http.StatusBadGateway},
		{CodeConversationFailed, http.StatusBadGateway},
		{CodeFeedbackFailed, http.StatusBadGateway},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := E(tt.code, "Svc.Op", "msg", nil)
		if got := HTTPStatus(err); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}

	if got := HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("plain error = %d, want 500", got)
	}
	if got := HTTPStatus(fmt.Errorf("lookup: %w", ErrNotFound)); got != http.StatusNotFound {
		t.Errorf("wrapped ErrNotFound = %d, want 404", got)
	}
}

func TestIsCode_Wrapped(t *testing.T) {
	inner := E(CodeNotFound, "Repo.Get", "row missing", ErrNotFound)
	outer := fmt.Errorf("service: %w", inner)

	if !IsCode(outer, CodeNotFound) {
		t.Error("IsCode should see through wrapping")
	}
	if IsCode(outer, CodeConflict) {
		t.Error("IsCode matched the wrong code")
	}
	if IsCode(errors.New("plain"), CodeNotFound) {
		t.Error("IsCode matched a non-AppError")
	}
}

func TestAppError_Message(t *testing.T) {
	err := E(CodeInternal, "Svc.Op", "it broke", errors.New("cause"))
	if err.Error() != "Svc.Op: it broke: cause" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, err.(*AppError).Err) {
		t.Error("Unwrap should expose the cause")
	}
}
