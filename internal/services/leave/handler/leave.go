package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"urlaubsplaner-system/internal/database"
	"urlaubsplaner-system/internal/planner"
	"urlaubsplaner-system/internal/services"
)

type LeaveHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	policy planner.Policy
}

func NewLeaveHandler(db *gorm.DB, redisClient *redis.Client, policy planner.Policy) *LeaveHandler {
	return &LeaveHandler{
		db:     db,
		redis:  redisClient,
		policy: policy,
	}
}

type EntryParams struct {
	EmployeeID   string
	VacationType string
	StartDate    time.Time
	EndDate      time.Time
	Notes        string
}

type ListEntriesParams struct {
	EmployeeID   string
	VacationType string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}

func (p EntryParams) validate() error {
	if p.EmployeeID == "" || p.VacationType == "" || p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: employee_id, vacation_type, start_date and end_date are required", services.ErrValidation)
	}
	if !planner.Category(p.VacationType).Valid() {
		return fmt.Errorf("%w: vacation_type must be one of VACATION, SICK, SPECIAL", services.ErrValidation)
	}
	if p.StartDate.After(p.EndDate) {
		return fmt.Errorf("%w: start date must be before or equal to end date", services.ErrValidation)
	}
	return nil
}

// --- Admission Control ---

// checkAdmission runs the concurrency check for a proposed VACATION range.
// The read is a plain snapshot, not transactionally isolated from concurrent
// writers: two simultaneous submissions can both pass and jointly exceed the
// cap. Accepted at this scale.
func (s *LeaveHandler) checkAdmission(start, end time.Time, excludeID string) error {
	var rows []database.LeaveEntry
	if err := s.db.Where("vacation_type = ?", string(planner.CategoryVacation)).Find(&rows).Error; err != nil {
		return err
	}

	var totalEmployees int64
	if err := s.db.Model(&database.Employee{}).Count(&totalEmployees).Error; err != nil {
		return err
	}

	entries := make([]planner.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, planner.Entry{
			ID:         r.ID,
			EmployeeID: r.EmployeeID,
			Category:   planner.Category(r.VacationType),
			Start:      r.StartDate,
			End:        r.EndDate,
		})
	}

	verdict := planner.CheckConcurrentLoad(
		planner.DateRange{Start: start, End: end},
		entries,
		int(totalEmployees),
		s.policy,
		excludeID,
	)

	if !verdict.IsValid {
		return &services.CapacityError{Verdict: verdict}
	}
	return nil
}

// recomputeTotals soft-fails: the entry write already committed and the
// recomputation is idempotent, so a failure here is logged for a later repair
// run instead of failing the request.
func (s *LeaveHandler) recomputeTotals(employeeIDs ...string) {
	for _, id := range employeeIDs {
		if id == "" {
			continue
		}
		if err := services.RecomputeEmployeeTotals(s.db, id); err != nil {
			logrus.WithField("employee_id", id).Errorf("Failed to recompute employee totals: %v", err)
		}
	}
}

// --- Leave Entry Management ---

func (s *LeaveHandler) CreateEntry(ctx context.Context, params EntryParams) (*database.LeaveEntry, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	var employee database.Employee
	if err := s.db.First(&employee, "id = ?", params.EmployeeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: employee", services.ErrNotFound)
		}
		return nil, err
	}

	daysCount := planner.CountBusinessDays(params.StartDate, params.EndDate)

	// Only real vacations count against the concurrency cap. SICK and
	// SPECIAL entries are admitted unconditionally.
	if planner.Category(params.VacationType) == planner.CategoryVacation {
		if err := s.checkAdmission(params.StartDate, params.EndDate, ""); err != nil {
			return nil, err
		}
	}

	entry := database.LeaveEntry{
		ID:           uuid.NewString(),
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		VacationType: params.VacationType,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		DaysCount:    decimal.NewFromInt(int64(daysCount)),
		Notes:        params.Notes,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	s.recomputeTotals(entry.EmployeeID)
	services.InvalidatePlannerCaches(ctx, s.redis, entry.EmployeeID)

	return &entry, nil
}

func (s *LeaveHandler) GetEntry(ctx context.Context, id string) (*database.LeaveEntry, error) {
	var entry database.LeaveEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: leave entry", services.ErrNotFound)
		}
		return nil, err
	}
	return &entry, nil
}

func (s *LeaveHandler) ListEntries(ctx context.Context, params ListEntriesParams) ([]database.LeaveEntry, int64, error) {
	query := s.db.Model(&database.LeaveEntry{})

	if params.EmployeeID != "" {
		query = query.Where("employee_id = ?", params.EmployeeID)
	}
	if params.VacationType != "" {
		query = query.Where("vacation_type = ?", params.VacationType)
	}
	if params.StartDate != nil {
		query = query.Where("end_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("start_date <= ?", *params.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}

	var entries []database.LeaveEntry
	offset := (page - 1) * pageSize
	if err := query.Order("start_date ASC").Offset(offset).Limit(pageSize).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (s *LeaveHandler) UpdateEntry(ctx context.Context, id string, params EntryParams) (*database.LeaveEntry, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	var entry database.LeaveEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: leave entry", services.ErrNotFound)
		}
		return nil, err
	}

	var employee database.Employee
	if err := s.db.First(&employee, "id = ?", params.EmployeeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: employee", services.ErrNotFound)
		}
		return nil, err
	}

	daysCount := planner.CountBusinessDays(params.StartDate, params.EndDate)

	// Re-validating an edit excludes the entry itself so its old dates do
	// not count against its own new dates.
	if planner.Category(params.VacationType) == planner.CategoryVacation {
		if err := s.checkAdmission(params.StartDate, params.EndDate, entry.ID); err != nil {
			return nil, err
		}
	}

	previousEmployeeID := entry.EmployeeID

	entry.EmployeeID = employee.ID
	entry.EmployeeName = employee.Name
	entry.VacationType = params.VacationType
	entry.StartDate = params.StartDate
	entry.EndDate = params.EndDate
	entry.DaysCount = decimal.NewFromInt(int64(daysCount))
	entry.Notes = params.Notes

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}

	if previousEmployeeID != entry.EmployeeID {
		s.recomputeTotals(previousEmployeeID, entry.EmployeeID)
		services.InvalidatePlannerCaches(ctx, s.redis, previousEmployeeID, entry.EmployeeID)
	} else {
		s.recomputeTotals(entry.EmployeeID)
		services.InvalidatePlannerCaches(ctx, s.redis, entry.EmployeeID)
	}

	return &entry, nil
}

func (s *LeaveHandler) DeleteEntry(ctx context.Context, id string) error {
	var entry database.LeaveEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: leave entry", services.ErrNotFound)
		}
		return err
	}

	if err := s.db.Delete(&database.LeaveEntry{}, "id = ?", id).Error; err != nil {
		return err
	}

	s.recomputeTotals(entry.EmployeeID)
	services.InvalidatePlannerCaches(ctx, s.redis, entry.EmployeeID)

	return nil
}
