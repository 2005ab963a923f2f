package handler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"urlaubsplaner-system/internal/database"
	"urlaubsplaner-system/internal/planner"
	"urlaubsplaner-system/internal/services"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEntryParamsValidate(t *testing.T) {
	valid := EntryParams{
		EmployeeID:   "e1",
		VacationType: "VACATION",
		StartDate:    day(2025, time.January, 13),
		EndDate:      day(2025, time.January, 17),
	}
	assert.NoError(t, valid.validate())

	tests := []struct {
		name   string
		mutate func(p *EntryParams)
	}{
		{"missing employee", func(p *EntryParams) { p.EmployeeID = "" }},
		{"missing type", func(p *EntryParams) { p.VacationType = "" }},
		{"missing start date", func(p *EntryParams) { p.StartDate = time.Time{} }},
		{"missing end date", func(p *EntryParams) { p.EndDate = time.Time{} }},
		{"unknown category", func(p *EntryParams) { p.VacationType = "URLAUB" }},
		{"start after end", func(p *EntryParams) {
			p.StartDate = day(2025, time.January, 17)
			p.EndDate = day(2025, time.January, 13)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.validate()
			assert.True(t, errors.Is(err, services.ErrValidation), "expected validation error, got %v", err)
		})
	}
}

func TestEntryParamsValidateSingleDay(t *testing.T) {
	p := EntryParams{
		EmployeeID:   "e1",
		VacationType: "SICK",
		StartDate:    day(2025, time.January, 13),
		EndDate:      day(2025, time.January, 13),
	}
	assert.NoError(t, p.validate())
}

func newTestLeaveHandler(t *testing.T) (*LeaveHandler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "planner.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	// No redis in tests; cache invalidation degrades to a no-op.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return NewLeaveHandler(db, rdb, planner.Policy{MaxConcurrentPercentage: 30}), db
}

func seedEmployee(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	require.NoError(t, db.Create(&database.Employee{
		ID:                id,
		Name:              name,
		Email:             id + "@example.com",
		Role:              "employee",
		VacationDaysTotal: decimal.NewFromInt(25),
	}).Error)
}

func TestCreateEntryRecomputesTotals(t *testing.T) {
	s, db := newTestLeaveHandler(t)
	ctx := context.Background()

	seedEmployee(t, db, "e1", "Anna Schmidt")

	entry, err := s.CreateEntry(ctx, EntryParams{
		EmployeeID:   "e1",
		VacationType: "VACATION",
		StartDate:    day(2025, time.January, 13),
		EndDate:      day(2025, time.January, 17),
	})
	require.NoError(t, err)
	assert.True(t, entry.DaysCount.Equal(decimal.NewFromInt(5)), entry.DaysCount.String())

	var employee database.Employee
	require.NoError(t, db.First(&employee, "id = ?", "e1").Error)
	assert.True(t, employee.VacationDaysUsed.Equal(decimal.NewFromInt(5)), employee.VacationDaysUsed.String())

	require.NoError(t, s.DeleteEntry(ctx, entry.ID))

	require.NoError(t, db.First(&employee, "id = ?", "e1").Error)
	assert.True(t, employee.VacationDaysUsed.IsZero(), employee.VacationDaysUsed.String())
}

func TestCreateEntrySickDaysTracked(t *testing.T) {
	s, db := newTestLeaveHandler(t)
	ctx := context.Background()

	seedEmployee(t, db, "e1", "Anna Schmidt")

	_, err := s.CreateEntry(ctx, EntryParams{
		EmployeeID:   "e1",
		VacationType: "SICK",
		StartDate:    day(2025, time.January, 13),
		EndDate:      day(2025, time.January, 14),
	})
	require.NoError(t, err)

	var employee database.Employee
	require.NoError(t, db.First(&employee, "id = ?", "e1").Error)
	assert.True(t, employee.SickDaysUsed.Equal(decimal.NewFromInt(2)), employee.SickDaysUsed.String())
	assert.True(t, employee.VacationDaysUsed.IsZero())
}

func TestCreateEntryUnknownEmployee(t *testing.T) {
	s, _ := newTestLeaveHandler(t)

	_, err := s.CreateEntry(context.Background(), EntryParams{
		EmployeeID:   "missing",
		VacationType: "VACATION",
		StartDate:    day(2025, time.January, 13),
		EndDate:      day(2025, time.January, 17),
	})
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestCreateEntryRejectsOverCapacity(t *testing.T) {
	s, db := newTestLeaveHandler(t)
	ctx := context.Background()

	// Ten employees at 30% allow three concurrent vacations.
	ids := []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7", "e8", "e9", "e10"}
	for _, id := range ids {
		seedEmployee(t, db, id, "Employee "+id)
	}

	for _, id := range ids[:3] {
		_, err := s.CreateEntry(ctx, EntryParams{
			EmployeeID:   id,
			VacationType: "VACATION",
			StartDate:    day(2025, time.February, 10),
			EndDate:      day(2025, time.February, 14),
		})
		require.NoError(t, err)
	}

	_, err := s.CreateEntry(ctx, EntryParams{
		EmployeeID:   "e4",
		VacationType: "VACATION",
		StartDate:    day(2025, time.February, 12),
		EndDate:      day(2025, time.February, 13),
	})
	var capacityErr *services.CapacityError
	require.True(t, errors.As(err, &capacityErr), "expected capacity error, got %v", err)
	assert.Equal(t, 4, capacityErr.Verdict.PeakCount)
	assert.Equal(t, 3, capacityErr.Verdict.MaxAllowed)

	// A sick entry on the same days is admitted unconditionally.
	_, err = s.CreateEntry(ctx, EntryParams{
		EmployeeID:   "e4",
		VacationType: "SICK",
		StartDate:    day(2025, time.February, 12),
		EndDate:      day(2025, time.February, 13),
	})
	assert.NoError(t, err)
}
