package validator

import (
	"io"
	"testing"

	"fablab/pkg/logger"
	"fablab/pkg/model"
)

func testValidator() *ReservationValidator {
	return NewReservationValidator(logger.New(logger.Config{
		Level:  "error",
		Format: logger.JSON,
		Output: io.Discard,
	}))
}

func validReservation() *model.Reservation {
	return &model.Reservation{
		UserID:    "u-arnau",
		Service:   "Impressora 3D",
		Date:      "2026-03-12",
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func TestValidateReservation(t *testing.T) {
	v := testValidator()

	if err := v.Validate(validReservation()); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidateReservationWithID(t *testing.T) {
	v := testValidator()

	r := validReservation()
	r.ID = "11111111-2222-4333-8444-555555555555"
	if err := v.Validate(r); err != nil {
		t.Errorf("Validate() with uuid4 id error = %v, want nil", err)
	}

	r.ID = "not-a-uuid"
	if err := v.Validate(r); err == nil {
		t.Error("Validate() accepted a malformed id")
	}
}

func TestValidateReservationFailures(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *model.Reservation)
	}{
		{"missing user", func(r *model.Reservation) { r.UserID = "" }},
		{"missing service", func(r *model.Reservation) { r.Service = "" }},
		{"missing date", func(r *model.Reservation) { r.Date = "" }},
		{"missing start time", func(r *model.Reservation) { r.StartTime = "" }},
		{"missing end time", func(r *model.Reservation) { r.EndTime = "" }},
		{"slash date", func(r *model.Reservation) { r.Date = "2026/03/12" }},
		{"reversed date", func(r *model.Reservation) { r.Date = "12-03-2026" }},
		{"unpadded date", func(r *model.Reservation) { r.Date = "2026-3-2" }},
		{"impossible date", func(r *model.Reservation) { r.Date = "2026-02-30" }},
		{"unpadded time", func(r *model.Reservation) { r.StartTime = "9:00" }},
		{"hour out of range", func(r *model.Reservation) { r.EndTime = "24:00" }},
		{"minute out of range", func(r *model.Reservation) { r.EndTime = "10:60" }},
		{"time with seconds", func(r *model.Reservation) { r.StartTime = "10:00:00" }},
	}

	v := testValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReservation()
			tt.modify(r)

			err := v.Validate(r)
			if err == nil {
				t.Fatal("Validate() error = nil, want validation failure")
			}
			if _, ok := err.(ValidationErrors); !ok {
				t.Errorf("Validate() error type = %T, want ValidationErrors", err)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	v := testValidator()

	r := validReservation()
	r.UserID = ""
	r.Date = "nope"

	err := v.Validate(r)
	if err == nil {
		t.Fatal("Validate() error = nil, want validation failure")
	}

	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Validate() error type = %T, want ValidationErrors", err)
	}
	if len(errs) != 2 {
		t.Errorf("got %d validation errors, want 2", len(errs))
	}
}
