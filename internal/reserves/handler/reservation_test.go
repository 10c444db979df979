package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"fablab/pkg/config"
	apperrors "fablab/pkg/errors"
	"fablab/pkg/logger"
	"fablab/pkg/model"
)

// Mock service for testing
type mockReservationService struct {
	createFunc func(ctx context.Context, req *model.Reservation) (*model.Reservation, error)
	listFunc   func(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error)
	cancelFunc func(ctx context.Context, id string) error
}

func (m *mockReservationService) Create(ctx context.Context, req *model.Reservation) (*model.Reservation, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return req, nil
}

func (m *mockReservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	return nil, apperrors.NotFoundWithID("Reservation", id)
}

func (m *mockReservationService) List(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationService) Cancel(ctx context.Context, id string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return nil
}

func testHandler(svc *mockReservationService) (*ReservationHandler, *httprouter.Router) {
	cfg := &config.Config{
		FabLabName:  "UPC Terrassa",
		OpeningTime: "09:00",
		ClosingTime: "13:30",
		Log: logger.New(logger.Config{
			Level:  "error",
			Format: logger.JSON,
			Output: io.Discard,
		}),
	}

	h := NewReservationHandler(svc, cfg)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return h, router
}

func TestStatusEndpoint(t *testing.T) {
	_, router := testHandler(&mockReservationService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Status != "online" {
		t.Errorf("status field = %q, want %q", body.Status, "online")
	}
	if body.FabLab != "UPC Terrassa" {
		t.Errorf("fablab field = %q, want %q", body.FabLab, "UPC Terrassa")
	}
	if body.HorariLimit != "09:00 - 13:30" {
		t.Errorf("horari_limit field = %q, want %q", body.HorariLimit, "09:00 - 13:30")
	}
}

func TestCreateReservationEndpoint(t *testing.T) {
	svc := &mockReservationService{
		createFunc: func(_ context.Context, req *model.Reservation) (*model.Reservation, error) {
			created := *req
			created.ID = "11111111-2222-4333-8444-555555555555"
			return &created, nil
		},
	}
	_, router := testHandler(svc)

	payload := `{"usuari_id":"u-arnau","servei":"Impressora 3D","data":"2026-03-12","hora_inici":"10:00","hora_fi":"11:00"}`
	req := httptest.NewRequest(http.MethodPost, "/reserves", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var body model.Reservation
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.ID == "" {
		t.Error("created reservation has no id")
	}
	if body.Service != "Impressora 3D" {
		t.Errorf("servei = %q, want %q", body.Service, "Impressora 3D")
	}
}

func TestCreateReservationEndpointMalformedBody(t *testing.T) {
	_, router := testHandler(&mockReservationService{})

	req := httptest.NewRequest(http.MethodPost, "/reserves", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateReservationEndpointErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"rule violation", apperrors.InvalidInput("Reservations cannot be made for past dates"), http.StatusBadRequest},
		{"slot conflict", apperrors.Conflict("'Impressora 3D' is already reserved in this time slot on 2026-03-12"), http.StatusConflict},
		{"storage failure", apperrors.Internal("Failed to save the reservation", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReservationService{
				createFunc: func(context.Context, *model.Reservation) (*model.Reservation, error) {
					return nil, tt.err
				},
			}
			_, router := testHandler(svc)

			payload := `{"usuari_id":"u","servei":"s","data":"2026-03-12","hora_inici":"10:00","hora_fi":"11:00"}`
			req := httptest.NewRequest(http.MethodPost, "/reserves", strings.NewReader(payload))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestListReservationsEndpoint(t *testing.T) {
	var receivedFilter model.ReservationFilter
	svc := &mockReservationService{
		listFunc: func(_ context.Context, filter model.ReservationFilter) ([]*model.Reservation, error) {
			receivedFilter = filter
			return []*model.Reservation{}, nil
		},
	}
	_, router := testHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/reserves?servei=Impressora+3D&data=2026-03-12", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if receivedFilter.Service != "Impressora 3D" {
		t.Errorf("servei filter = %q, want %q", receivedFilter.Service, "Impressora 3D")
	}
	if receivedFilter.Date != "2026-03-12" {
		t.Errorf("data filter = %q, want %q", receivedFilter.Date, "2026-03-12")
	}
}

func TestListReservationsEndpointEmptyArray(t *testing.T) {
	_, router := testHandler(&mockReservationService{})

	req := httptest.NewRequest(http.MethodGet, "/reserves", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want %q", body, "[]")
	}
}

func TestListReservationsEndpointInvalidDate(t *testing.T) {
	tests := []string{"12-03-2026", "2026/03/12", "tomorrow", "2026-3-2"}

	for _, date := range tests {
		t.Run(date, func(t *testing.T) {
			_, router := testHandler(&mockReservationService{})

			req := httptest.NewRequest(http.MethodGet, "/reserves?data="+date, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCancelReservationEndpoint(t *testing.T) {
	var receivedID string
	svc := &mockReservationService{
		cancelFunc: func(_ context.Context, id string) error {
			receivedID = id
			return nil
		},
	}
	_, router := testHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/reserves/abc-123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if receivedID != "abc-123" {
		t.Errorf("cancelled id = %q, want %q", receivedID, "abc-123")
	}
}

func TestCancelReservationEndpointNotFound(t *testing.T) {
	svc := &mockReservationService{
		cancelFunc: func(_ context.Context, id string) error {
			return apperrors.NotFoundWithID("Reservation", id)
		},
	}
	_, router := testHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/reserves/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
