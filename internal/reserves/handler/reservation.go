package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/julienschmidt/httprouter"

	"fablab/internal/reserves/service"
	"fablab/pkg/config"
	apperrors "fablab/pkg/errors"
	httputil "fablab/pkg/http"
	"fablab/pkg/logger"
	"fablab/pkg/model"
)

var queryDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// StatusResponse is the payload of GET /, served without touching storage.
type StatusResponse struct {
	Status      string `json:"status"`
	FabLab      string `json:"fablab"`
	HorariLimit string `json:"horari_limit"`
}

type ReservationHandler struct {
	service service.ReservationService
	cfg     *config.Config
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, cfg *config.Config) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

func (h *ReservationHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, StatusResponse{
		Status:      "online",
		FabLab:      h.cfg.FabLabName,
		HorariLimit: fmt.Sprintf("%s - %s", h.cfg.OpeningTime, h.cfg.ClosingTime),
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Status", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reservation model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	created, err := h.service.Create(r.Context(), &reservation)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	filter := model.ReservationFilter{
		Service: query.Get("servei"),
	}

	if date := query.Get("data"); date != "" {
		if !queryDateRegex.MatchString(date) {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid data parameter: %s, expected YYYY-MM-DD", date))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		filter.Date = date
	}

	reservations, err := h.service.List(r.Context(), filter)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	reservation, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Cancel(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Status)
	router.POST("/reserves", h.Create)
	router.GET("/reserves", h.List)
	router.GET("/reserves/:id", h.GetByID)
	router.DELETE("/reserves/:id", h.Cancel)
}
