package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeInvalidInput, "start time after end time", http.StatusBadRequest)

	if err.Code != CodeInvalidInput {
		t.Errorf("expected code %s, got %s", CodeInvalidInput, err.Code)
	}
	if err.Message != "start time after end time" {
		t.Errorf("unexpected message: %s", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("write to reserves collection failed")
	wrapped := Wrap(cause, CodeInternal, "could not persist reservation", http.StatusInternalServerError)

	if wrapped.Err != cause {
		t.Error("expected wrapped error to retain the original cause")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "reservation not found",
			},
			expected: "NOT_FOUND: reservation not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "could not persist reservation",
				Err:     errors.New("connection reset"),
			},
			expected: "INTERNAL_ERROR: could not persist reservation (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appErr := Wrap(cause, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != cause {
		t.Error("Unwrap() should return the original error")
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Reservation", "4f7c3a6e")

	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", err.HTTPStatus)
	}
	if err.Details["id"] != "4f7c3a6e" {
		t.Errorf("expected id detail, got %v", err.Details)
	}
}

func TestConflict(t *testing.T) {
	err := Conflict("'Laser Cutter' is already reserved in this time slot")

	if err.Code != CodeConflict {
		t.Errorf("expected code %s, got %s", CodeConflict, err.Code)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected status 409, got %d", err.HTTPStatus)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := InvalidInput("bad date")
	if AsAppError(appErr) != appErr {
		t.Error("AsAppError should pass AppError through unchanged")
	}

	plain := errors.New("boom")
	coerced := AsAppError(plain)
	if coerced.Code != CodeInternal {
		t.Errorf("expected internal code for plain errors, got %s", coerced.Code)
	}
	if coerced.Err != plain {
		t.Error("expected original error to be preserved as cause")
	}
}
