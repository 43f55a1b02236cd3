package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type periodSwapRepository interface {
	Create(ctx context.Context, swap *models.PeriodSwapRequest) error
	FindByID(ctx context.Context, schoolID, id string) (*models.PeriodSwapRequest, error)
	ExistsPending(ctx context.Context, schoolID, entryA, entryB string, date time.Time) (bool, error)
	Decide(ctx context.Context, schoolID, id string, to models.SwapStatus, decidedBy string, rejectReason *string) error
	List(ctx context.Context, schoolID string, filter models.SwapFilter) ([]models.PeriodSwapRequest, int, error)
}

// PeriodSwapService negotiates swaps between two entries on a date. Approval
// records the decision only; rewriting the entries is a separate timetable update.
type PeriodSwapService struct {
	repo      periodSwapRepository
	entries   entryReader
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPeriodSwapService constructs the swap negotiation service.
func NewPeriodSwapService(repo periodSwapRepository, entries entryReader, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PeriodSwapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodSwapService{repo: repo, entries: entries, metrics: metrics, validator: newSchedulingValidator(validate), logger: logger}
}

// Request opens a PENDING swap. A pending request for the same pair and date,
// in either order, is a duplicate.
func (s *PeriodSwapService) Request(ctx context.Context, schoolID, requester string, req dto.CreateSwapRequest) (*models.PeriodSwapRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid swap request payload")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	for _, id := range []string{req.EntryID1, req.EntryID2} {
		entry, err := s.entries.FindByID(ctx, schoolID, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrEntryNotFound, "timetable entry "+id+" not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entry")
		}
		if !entry.IsActive() {
			return nil, appErrors.Clone(appErrors.ErrEntryNotFound, "timetable entry "+id+" is inactive")
		}
	}

	exists, err := s.repo.ExistsPending(ctx, schoolID, req.EntryID1, req.EntryID2, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending swaps")
	}
	if exists {
		return nil, appErrors.ErrDuplicateSwapRequest
	}

	swap := &models.PeriodSwapRequest{
		ID:          uuid.NewString(),
		SchoolID:    schoolID,
		EntryID1:    req.EntryID1,
		EntryID2:    req.EntryID2,
		SwapDate:    date,
		Reason:      strings.TrimSpace(req.Reason),
		RequestedBy: requester,
		Status:      models.SwapPending,
	}
	if err := s.repo.Create(ctx, swap); err != nil {
		if constraint, ok := repository.UniqueViolation(err); ok && constraint == repository.ConstraintSwapPending {
			return nil, appErrors.Wrap(err, appErrors.ErrDuplicateSwapRequest.Code, appErrors.ErrDuplicateSwapRequest.Status, appErrors.ErrDuplicateSwapRequest.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create swap request")
	}

	s.metrics.RecordTransition("swap", string(models.SwapPending))
	s.logger.Info("swap requested",
		zap.String("school_id", schoolID),
		zap.String("swap_id", swap.ID),
		zap.String("requested_by", requester),
	)
	return swap, nil
}

// Approve accepts a pending request.
func (s *PeriodSwapService) Approve(ctx context.Context, schoolID, id, approver string) (*models.PeriodSwapRequest, error) {
	return s.decide(ctx, schoolID, id, models.SwapApproved, approver, nil)
}

// Reject declines a pending request.
func (s *PeriodSwapService) Reject(ctx context.Context, schoolID, id, approver, reason string) (*models.PeriodSwapRequest, error) {
	var rejectReason *string
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		rejectReason = &trimmed
	}
	return s.decide(ctx, schoolID, id, models.SwapRejected, approver, rejectReason)
}

// Cancel withdraws a pending request. Only its requester or an administrator may cancel.
func (s *PeriodSwapService) Cancel(ctx context.Context, schoolID, id, actor string, isAdmin bool) (*models.PeriodSwapRequest, error) {
	swap, err := s.Get(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && swap.RequestedBy != actor {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the requester can cancel this swap")
	}
	return s.decide(ctx, schoolID, id, models.SwapCancelled, actor, nil)
}

func (s *PeriodSwapService) decide(ctx context.Context, schoolID, id string, to models.SwapStatus, actor string, reason *string) (*models.PeriodSwapRequest, error) {
	if err := s.repo.Decide(ctx, schoolID, id, to, actor, reason); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update swap request")
		}
		current, getErr := s.Get(ctx, schoolID, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "swap request is already "+strings.ToLower(string(current.Status)))
	}

	s.metrics.RecordTransition("swap", string(to))
	s.logger.Info("swap request decided",
		zap.String("school_id", schoolID),
		zap.String("swap_id", id),
		zap.String("status", string(to)),
		zap.String("decided_by", actor),
	)
	return s.Get(ctx, schoolID, id)
}

// Get returns one swap request.
func (s *PeriodSwapService) Get(ctx context.Context, schoolID, id string) (*models.PeriodSwapRequest, error) {
	swap, err := s.repo.FindByID(ctx, schoolID, id)
	if err != nil {
		return nil, lookupError(err, "swap request not found", "failed to load swap request")
	}
	return swap, nil
}

// List returns a page of swap requests.
func (s *PeriodSwapService) List(ctx context.Context, schoolID string, filter models.SwapFilter) ([]models.PeriodSwapRequest, *models.Pagination, error) {
	if filter.Status != "" {
		switch filter.Status {
		case models.SwapPending, models.SwapApproved, models.SwapRejected, models.SwapCancelled:
		default:
			return nil, nil, invalid("unknown status %q", filter.Status)
		}
	}
	items, total, err := s.repo.List(ctx, schoolID, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list swap requests")
	}
	page, size := pageBounds(filter.Page, filter.PageSize)
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
