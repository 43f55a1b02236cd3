package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type calendarConfigRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, cfg *models.CalendarConfig) error
	DeactivateOthers(ctx context.Context, exec sqlx.ExtContext, schoolID, keepID string) (int64, error)
	SetStatus(ctx context.Context, exec sqlx.ExtContext, schoolID, id string, status models.LifecycleStatus) error
	UpdateStructure(ctx context.Context, cfg *models.CalendarConfig) error
	SoftDelete(ctx context.Context, schoolID, id string) error
	FindByID(ctx context.Context, schoolID, id string) (*models.CalendarConfig, error)
	FindActive(ctx context.Context, schoolID string) (*models.CalendarConfig, error)
	ExistsForYear(ctx context.Context, schoolID, academicYear string) (bool, error)
	List(ctx context.Context, schoolID string) ([]models.CalendarConfig, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// CalendarConfigService manages the weekly calendar structure of each school.
type CalendarConfigService struct {
	repo      calendarConfigRepository
	tx        txProvider
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarConfigService constructs the calendar structure service.
func NewCalendarConfigService(repo calendarConfigRepository, tx txProvider, validate *validator.Validate, logger *zap.Logger) *CalendarConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarConfigService{repo: repo, tx: tx, validator: newSchedulingValidator(validate), logger: logger}
}

// Create stores a new config for the academic year and makes it the only active one.
func (s *CalendarConfigService) Create(ctx context.Context, schoolID, createdBy string, req dto.CreateCalendarConfigRequest) (*models.CalendarConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid calendar configuration payload")
	}

	cfg := &models.CalendarConfig{
		ID:           uuid.NewString(),
		SchoolID:     schoolID,
		AcademicYear: strings.TrimSpace(req.AcademicYear),
		WorkingDays:  normalizeWorkingDays(req.WorkingDays),
		Periods:      models.PeriodList{},
		Shifts:       models.ShiftList{},
		Status:       models.StatusActive,
	}
	if createdBy != "" {
		cfg.CreatedBy = &createdBy
	}

	for _, shiftReq := range req.Shifts {
		shift, err := buildShift(shiftReq)
		if err != nil {
			return nil, err
		}
		if cfg.HasShift(shift.ShiftID) {
			return nil, invalid("shift %s is defined twice", shift.ShiftID)
		}
		cfg.Shifts = append(cfg.Shifts, shift)
	}
	for _, periodReq := range req.Periods {
		period, err := buildPeriod(periodReq)
		if err != nil {
			return nil, err
		}
		if period.ShiftID != nil && !cfg.HasShift(*period.ShiftID) {
			return nil, invalid("period %d references unknown shift %s", period.PeriodNumber, *period.ShiftID)
		}
		cfg.Periods = upsertPeriod(cfg.Periods, period)
	}

	exists, err := s.repo.ExistsForYear(ctx, schoolID, cfg.AcademicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check academic year")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateConfig, "calendar configuration already exists for "+cfg.AcademicYear)
	}

	superseded, err := s.inTx(ctx, func(tx *sqlx.Tx) (int64, error) {
		n, err := s.repo.DeactivateOthers(ctx, tx, schoolID, cfg.ID)
		if err != nil {
			return 0, err
		}
		return n, s.repo.Create(ctx, tx, cfg)
	})
	if err != nil {
		return nil, s.mapWriteError(err, "failed to create calendar configuration")
	}

	s.logger.Info("calendar configuration created",
		zap.String("school_id", schoolID),
		zap.String("config_id", cfg.ID),
		zap.String("academic_year", cfg.AcademicYear),
		zap.Int64("superseded", superseded),
	)
	return cfg, nil
}

// Activate makes an existing config the school's active structure.
func (s *CalendarConfigService) Activate(ctx context.Context, schoolID, id string) (*models.CalendarConfig, error) {
	cfg, err := s.Get(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	if cfg.Status == models.StatusActive {
		return cfg, nil
	}

	_, err = s.inTx(ctx, func(tx *sqlx.Tx) (int64, error) {
		n, err := s.repo.DeactivateOthers(ctx, tx, schoolID, id)
		if err != nil {
			return 0, err
		}
		return n, s.repo.SetStatus(ctx, tx, schoolID, id, models.StatusActive)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "calendar configuration not found")
		}
		return nil, s.mapWriteError(err, "failed to activate calendar configuration")
	}

	cfg.Status = models.StatusActive
	s.logger.Info("calendar configuration activated", zap.String("school_id", schoolID), zap.String("config_id", id))
	return cfg, nil
}

// Delete soft-deletes a config. Entries placed against it are left alone.
func (s *CalendarConfigService) Delete(ctx context.Context, schoolID, id string) error {
	if err := s.repo.SoftDelete(ctx, schoolID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "calendar configuration not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete calendar configuration")
	}
	s.logger.Info("calendar configuration deleted", zap.String("school_id", schoolID), zap.String("config_id", id))
	return nil
}

// Get returns a non-deleted config.
func (s *CalendarConfigService) Get(ctx context.Context, schoolID, id string) (*models.CalendarConfig, error) {
	cfg, err := s.repo.FindByID(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "calendar configuration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load calendar configuration")
	}
	return cfg, nil
}

// GetActive returns the single active config of the school.
func (s *CalendarConfigService) GetActive(ctx context.Context, schoolID string) (*models.CalendarConfig, error) {
	cfg, err := s.repo.FindActive(ctx, schoolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoActiveCalendar
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active calendar configuration")
	}
	return cfg, nil
}

// List returns the school's non-deleted configs newest first.
func (s *CalendarConfigService) List(ctx context.Context, schoolID string) ([]models.CalendarConfig, error) {
	configs, err := s.repo.List(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list calendar configurations")
	}
	return configs, nil
}

// UpsertPeriod replaces the period with the same number or appends it, keeping
// the list sorted by period number.
func (s *CalendarConfigService) UpsertPeriod(ctx context.Context, schoolID, configID string, req dto.PeriodRequest) (*models.CalendarConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid period payload")
	}
	period, err := buildPeriod(req)
	if err != nil {
		return nil, err
	}
	cfg, err := s.Get(ctx, schoolID, configID)
	if err != nil {
		return nil, err
	}
	if period.ShiftID != nil && !cfg.HasShift(*period.ShiftID) {
		return nil, invalid("period %d references unknown shift %s", period.PeriodNumber, *period.ShiftID)
	}

	cfg.Periods = upsertPeriod(cfg.Periods, period)
	if err := s.save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RemovePeriod drops a period. Removing an unknown number is a no-op and entries
// that still point at the period are not touched.
func (s *CalendarConfigService) RemovePeriod(ctx context.Context, schoolID, configID string, periodNumber int) (*models.CalendarConfig, error) {
	cfg, err := s.Get(ctx, schoolID, configID)
	if err != nil {
		return nil, err
	}
	kept := make(models.PeriodList, 0, len(cfg.Periods))
	for _, p := range cfg.Periods {
		if p.PeriodNumber != periodNumber {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(cfg.Periods) {
		return cfg, nil
	}
	cfg.Periods = kept
	if err := s.save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpsertShift replaces the shift with the same id or appends a new one.
func (s *CalendarConfigService) UpsertShift(ctx context.Context, schoolID, configID string, req dto.ShiftRequest) (*models.CalendarConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid shift payload")
	}
	shift, err := buildShift(req)
	if err != nil {
		return nil, err
	}
	cfg, err := s.Get(ctx, schoolID, configID)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range cfg.Shifts {
		if cfg.Shifts[i].ShiftID == shift.ShiftID {
			cfg.Shifts[i] = shift
			replaced = true
			break
		}
	}
	if !replaced {
		cfg.Shifts = append(cfg.Shifts, shift)
	}
	if err := s.save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RemoveShift drops a shift by id. Periods keep their shift reference.
func (s *CalendarConfigService) RemoveShift(ctx context.Context, schoolID, configID, shiftID string) (*models.CalendarConfig, error) {
	cfg, err := s.Get(ctx, schoolID, configID)
	if err != nil {
		return nil, err
	}
	kept := make(models.ShiftList, 0, len(cfg.Shifts))
	for _, shift := range cfg.Shifts {
		if shift.ShiftID != shiftID {
			kept = append(kept, shift)
		}
	}
	if len(kept) == len(cfg.Shifts) {
		return cfg, nil
	}
	cfg.Shifts = kept
	if err := s.save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *CalendarConfigService) save(ctx context.Context, cfg *models.CalendarConfig) error {
	if err := s.repo.UpdateStructure(ctx, cfg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "calendar configuration not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update calendar configuration")
	}
	return nil
}

func (s *CalendarConfigService) inTx(ctx context.Context, fn func(tx *sqlx.Tx) (int64, error)) (n int64, err error) {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if n, err = fn(tx); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *CalendarConfigService) mapWriteError(err error, message string) error {
	if constraint, ok := repository.UniqueViolation(err); ok {
		switch constraint {
		case repository.ConstraintConfigYear:
			return appErrors.Wrap(err, appErrors.ErrDuplicateConfig.Code, appErrors.ErrDuplicateConfig.Status, appErrors.ErrDuplicateConfig.Message)
		case repository.ConstraintConfigActive:
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "another calendar configuration was activated concurrently")
		}
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// upsertPeriod replaces a period with the same number in place or appends it,
// then stable-sorts by number.
func upsertPeriod(periods models.PeriodList, period models.Period) models.PeriodList {
	out := make(models.PeriodList, 0, len(periods)+1)
	replaced := false
	for _, p := range periods {
		if p.PeriodNumber == period.PeriodNumber {
			if !replaced {
				out = append(out, period)
				replaced = true
			}
			continue
		}
		out = append(out, p)
	}
	if !replaced {
		out = append(out, period)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PeriodNumber < out[j].PeriodNumber })
	return out
}

func buildPeriod(req dto.PeriodRequest) (models.Period, error) {
	start, err := clockMinutes(req.StartTime)
	if err != nil {
		return models.Period{}, invalid("period %d has an invalid start time", req.PeriodNumber)
	}
	end, err := clockMinutes(req.EndTime)
	if err != nil {
		return models.Period{}, invalid("period %d has an invalid end time", req.PeriodNumber)
	}
	if start >= end {
		return models.Period{}, invalid("period %d must start before it ends", req.PeriodNumber)
	}
	duration := req.Duration
	if duration == 0 {
		duration = end - start
	}
	period := models.Period{
		PeriodNumber:   req.PeriodNumber,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Duration:       duration,
		Type:           models.PeriodType(req.Type),
		IsDoublePeriod: req.IsDoublePeriod,
	}
	if req.ShiftID != nil && strings.TrimSpace(*req.ShiftID) != "" {
		shiftID := strings.TrimSpace(*req.ShiftID)
		period.ShiftID = &shiftID
	}
	return period, nil
}

func buildShift(req dto.ShiftRequest) (models.Shift, error) {
	start, err := clockMinutes(req.StartTime)
	if err != nil {
		return models.Shift{}, invalid("shift %s has an invalid start time", req.Name)
	}
	end, err := clockMinutes(req.EndTime)
	if err != nil {
		return models.Shift{}, invalid("shift %s has an invalid end time", req.Name)
	}
	if start >= end {
		return models.Shift{}, invalid("shift %s must start before it ends", req.Name)
	}
	id := strings.TrimSpace(req.ShiftID)
	if id == "" {
		id = uuid.NewString()
	}
	return models.Shift{ShiftID: id, Name: req.Name, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func normalizeWorkingDays(days []string) []string {
	seen := make(map[string]struct{}, len(days))
	out := make([]string, 0, len(days))
	for _, day := range days {
		normalized, ok := models.NormalizeDay(day)
		if !ok {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	sort.Slice(out, func(i, j int) bool { return models.DayIndex(out[i]) < models.DayIndex(out[j]) })
	return out
}
