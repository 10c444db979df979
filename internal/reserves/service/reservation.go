package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	reserveserrors "fablab/internal/reserves/errors"
	"fablab/internal/reserves/repository"
	"fablab/internal/reserves/validator"
	"fablab/pkg/config"
	apperrors "fablab/pkg/errors"
	"fablab/pkg/model"
)

// ReservationService is the admission engine. Create applies the validation
// rules in a fixed short-circuit order and admits the reservation only if no
// other reservation for the same service and date overlaps it.
type ReservationService interface {
	Create(ctx context.Context, req *model.Reservation) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	List(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error)
	Cancel(ctx context.Context, id string) error
}

// EventPublisher emits reservation lifecycle events after a successful
// write. Publishing is best-effort: failures are logged, never returned.
type EventPublisher interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation) error
	ReservationCancelled(ctx context.Context, reservation *model.Reservation) error
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	validator *validator.ReservationValidator
	events    EventPublisher
	cfg       *config.Config

	now func() time.Time
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	validator *validator.ReservationValidator,
	events EventPublisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		events:    events,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *reservationService) Create(ctx context.Context, req *model.Reservation) (*model.Reservation, error) {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return nil, apperrors.Validation("Invalid reservation request", map[string]any{"error": err.Error()})
	}

	// Rule order is part of the contract: past date, then lab hours, then
	// interval order, then the conflict scan. First failure wins.
	if err := s.checkRules(req); err != nil {
		return nil, err
	}

	// Serialize admissions per (service, date) so the conflict scan and the
	// insert act as one unit against concurrent requests for the same slot.
	lockID, err := s.acquireSlotLock(ctx, req.Service, req.Date)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(context.WithoutCancel(ctx), lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	admitted := &model.Reservation{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Service:   req.Service,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		conflicting, err := s.repo.FindConflicting(sessCtx, req.Service, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			return apperrors.Internal("Failed to scan for conflicting reservations", err)
		}
		if conflicting != nil {
			return apperrors.Conflict(fmt.Sprintf(
				"'%s' is already reserved in this time slot on %s",
				conflicting.Service, conflicting.Date,
			))
		}

		if err := s.repo.Insert(sessCtx, admitted); err != nil {
			return apperrors.Internal("Failed to save the reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation",
			"servei", req.Service,
			"data", req.Date,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", admitted.ID,
		"usuari_id", admitted.UserID,
		"servei", admitted.Service,
		"data", admitted.Date,
		"hora_inici", admitted.StartTime,
		"hora_fi", admitted.EndTime,
	)

	if s.events != nil {
		if err := s.events.ReservationCreated(ctx, admitted); err != nil {
			s.cfg.Log.Warn("Failed to publish reservation created event", "id", admitted.ID, "error", err)
		}
	}

	return admitted, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reserveserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

func (s *reservationService) List(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error) {
	reservations, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations",
			"servei", filter.Service,
			"data", filter.Date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}

	if reservations == nil {
		reservations = []*model.Reservation{}
	}
	return reservations, nil
}

// Cancel removes a reservation. Cancelling an unknown id is an error, not a
// no-op; clients rely on the 404 to detect a stale id.
func (s *reservationService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reserveserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		return apperrors.Internal("Failed to check reservation existence", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reserveserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		return apperrors.Internal("Failed to delete reservation", err)
	}

	s.cfg.Log.Info("Reservation cancelled successfully",
		"id", id,
		"servei", reservation.Service,
		"data", reservation.Date,
	)

	if s.events != nil {
		if err := s.events.ReservationCancelled(ctx, reservation); err != nil {
			s.cfg.Log.Warn("Failed to publish reservation cancelled event", "id", id, "error", err)
		}
	}

	return nil
}

// --- Helpers ---

// checkRules applies the admission rules that precede the conflict scan.
func (s *reservationService) checkRules(req *model.Reservation) error {
	today := s.now().Format("2006-01-02")
	if req.Date < today {
		return apperrors.InvalidInput("Reservations cannot be made for past dates")
	}

	open, close := s.cfg.OpeningTime, s.cfg.ClosingTime
	if req.StartTime < open || req.StartTime > close || req.EndTime < open || req.EndTime > close {
		return apperrors.InvalidInput(fmt.Sprintf("The lab is open from %s to %s", open, close))
	}

	if req.StartTime >= req.EndTime {
		return apperrors.InvalidInput("Start time must be before end time")
	}

	return nil
}

// acquireSlotLock takes the advisory lock for one (service, date) pair,
// retrying briefly while another admission holds it. Exhausting the retries
// is reported as a conflict so the caller can simply try again.
func (s *reservationService) acquireSlotLock(ctx context.Context, service, date string) (string, error) {
	lockID := fmt.Sprintf("reserve_lock_%s_%s", service, date)

	for attempt := 0; ; attempt++ {
		lock := &model.ReservationLock{
			ID:        lockID,
			ExpiresAt: s.now().Add(s.cfg.SlotLockTTL),
		}

		_, err := s.lockRepo.Create(ctx, lock)
		if err == nil {
			return lockID, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Internal("Failed to acquire reservation lock", err)
		}

		if attempt >= s.cfg.SlotLockMaxRetries {
			return "", apperrors.Conflict(fmt.Sprintf(
				"'%s' is currently being reserved by another request on %s, please retry",
				service, date,
			))
		}

		select {
		case <-ctx.Done():
			return "", apperrors.Internal("Cancelled while waiting for reservation lock", ctx.Err())
		case <-time.After(s.cfg.SlotLockRetryInterval):
		}
	}
}

func (s *reservationService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
