package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"urlaubsplaner-system/internal/database"
	"urlaubsplaner-system/internal/planner"
	"urlaubsplaner-system/internal/services"
)

const accrualMarkerKey = "accrual_last_month"

type EmployeeHandler struct {
	db          *gorm.DB
	redis       *redis.Client
	policy      planner.Policy
	accrualRate decimal.Decimal
}

func NewEmployeeHandler(db *gorm.DB, redisClient *redis.Client, policy planner.Policy, accrualRate decimal.Decimal) *EmployeeHandler {
	return &EmployeeHandler{
		db:          db,
		redis:       redisClient,
		policy:      policy,
		accrualRate: accrualRate,
	}
}

type CreateEmployeeParams struct {
	Name              string
	Email             string
	Role              string
	VacationDaysTotal decimal.Decimal
	Skills            database.SkillList
}

type UpdateEmployeeParams struct {
	Name              *string
	Email             *string
	Role              *string
	VacationDaysTotal *decimal.Decimal
	Skills            *database.SkillList
}

func validRole(role string) bool {
	switch role {
	case "employee", "admin", "temp":
		return true
	}
	return false
}

func validSkills(skills database.SkillList) error {
	for _, skill := range skills {
		if skill.Name == "" {
			return fmt.Errorf("%w: skill name is required", services.ErrValidation)
		}
		if skill.Rating < 1 || skill.Rating > 5 {
			return fmt.Errorf("%w: skill rating must be between 1 and 5", services.ErrValidation)
		}
	}
	return nil
}

// --- Employee Management ---

func (s *EmployeeHandler) CreateEmployee(ctx context.Context, params CreateEmployeeParams) (*database.Employee, error) {
	if params.Name == "" || params.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", services.ErrValidation)
	}
	if params.Role == "" {
		params.Role = "employee"
	}
	if !validRole(params.Role) {
		return nil, fmt.Errorf("%w: role must be one of employee, admin, temp", services.ErrValidation)
	}
	if err := validSkills(params.Skills); err != nil {
		return nil, err
	}
	if params.VacationDaysTotal.IsNegative() {
		return nil, fmt.Errorf("%w: vacation_days_total must not be negative", services.ErrValidation)
	}
	if params.VacationDaysTotal.IsZero() {
		params.VacationDaysTotal = decimal.NewFromInt(25)
	}

	employee := database.Employee{
		ID:                uuid.NewString(),
		Name:              params.Name,
		Email:             params.Email,
		Role:              params.Role,
		VacationDaysTotal: params.VacationDaysTotal,
		VacationDaysUsed:  decimal.Zero,
		SickDaysUsed:      decimal.Zero,
		SpecialDaysUsed:   decimal.Zero,
		Skills:            params.Skills,
	}

	if err := s.db.Create(&employee).Error; err != nil {
		return nil, err
	}

	services.InvalidatePlannerCaches(ctx, s.redis)

	return &employee, nil
}

func (s *EmployeeHandler) GetEmployee(ctx context.Context, id string) (*database.Employee, error) {
	cacheKey := services.EmployeeCachePrefix + id
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var employee database.Employee
		if json.Unmarshal([]byte(cached), &employee) == nil {
			return &employee, nil
		}
	}

	var employee database.Employee
	if err := s.db.First(&employee, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: employee", services.ErrNotFound)
		}
		return nil, err
	}

	if payload, err := json.Marshal(employee); err == nil {
		_ = s.redis.Set(ctx, cacheKey, payload, services.CacheTTLShort)
	}

	return &employee, nil
}

type employeePage struct {
	Employees []database.Employee `json:"employees"`
	Total     int64               `json:"total"`
}

func (s *EmployeeHandler) ListEmployees(ctx context.Context, page, pageSize int) ([]database.Employee, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	cacheKey := services.EmployeeListCacheKey(page, pageSize)
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var snapshot employeePage
		if json.Unmarshal([]byte(cached), &snapshot) == nil {
			return snapshot.Employees, snapshot.Total, nil
		}
	}

	var total int64
	if err := s.db.Model(&database.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []database.Employee
	offset := (page - 1) * pageSize
	if err := s.db.Order("name ASC").Offset(offset).Limit(pageSize).Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	if payload, err := json.Marshal(employeePage{Employees: employees, Total: total}); err == nil {
		_ = s.redis.Set(ctx, cacheKey, payload, services.CacheTTLShort)
	}

	return employees, total, nil
}

func (s *EmployeeHandler) UpdateEmployee(ctx context.Context, id string, params UpdateEmployeeParams) (*database.Employee, error) {
	var employee database.Employee
	if err := s.db.First(&employee, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: employee", services.ErrNotFound)
		}
		return nil, err
	}

	if params.Name != nil {
		employee.Name = *params.Name
	}
	if params.Email != nil {
		employee.Email = *params.Email
	}
	if params.Role != nil {
		if !validRole(*params.Role) {
			return nil, fmt.Errorf("%w: role must be one of employee, admin, temp", services.ErrValidation)
		}
		employee.Role = *params.Role
	}
	if params.VacationDaysTotal != nil {
		if params.VacationDaysTotal.IsNegative() {
			return nil, fmt.Errorf("%w: vacation_days_total must not be negative", services.ErrValidation)
		}
		employee.VacationDaysTotal = *params.VacationDaysTotal
	}
	if params.Skills != nil {
		if err := validSkills(*params.Skills); err != nil {
			return nil, err
		}
		employee.Skills = *params.Skills
	}

	if err := s.db.Save(&employee).Error; err != nil {
		return nil, err
	}

	services.InvalidatePlannerCaches(ctx, s.redis, employee.ID)

	return &employee, nil
}

// DeleteEmployee removes the employee and cascades to every leave entry that
// references them, in one transaction so no orphaned entries survive.
func (s *EmployeeHandler) DeleteEmployee(ctx context.Context, id string) error {
	var employee database.Employee
	if err := s.db.First(&employee, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: employee", services.ErrNotFound)
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&database.LeaveEntry{}, "employee_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&database.Employee{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	services.InvalidatePlannerCaches(ctx, s.redis, id)

	return nil
}

// --- Settings ---

type PolicySettings struct {
	MaxConcurrentPercentage int   `json:"max_concurrent_percentage"`
	TotalEmployees          int64 `json:"total_employees"`
	MaxConcurrentCalculated int   `json:"max_concurrent_calculated"`
}

func (s *EmployeeHandler) GetPolicySettings(ctx context.Context) (*PolicySettings, error) {
	if cached, err := s.redis.Get(ctx, services.SettingsCacheKey).Result(); err == nil {
		var settings PolicySettings
		if json.Unmarshal([]byte(cached), &settings) == nil {
			return &settings, nil
		}
	}

	var total int64
	if err := s.db.Model(&database.Employee{}).Count(&total).Error; err != nil {
		return nil, err
	}

	settings := PolicySettings{
		MaxConcurrentPercentage: s.policy.MaxConcurrentPercentage,
		TotalEmployees:          total,
		MaxConcurrentCalculated: s.policy.MaxAllowed(int(total)),
	}

	if payload, err := json.Marshal(settings); err == nil {
		_ = s.redis.Set(ctx, services.SettingsCacheKey, payload, services.CacheTTLMedium)
	}

	return &settings, nil
}

// --- Maintenance ---

// RepairAllTotals re-derives the day counters of every employee. Runs once at
// startup so records with stale or missing derived fields heal themselves.
func (s *EmployeeHandler) RepairAllTotals(ctx context.Context) error {
	var ids []string
	if err := s.db.Model(&database.Employee{}).Pluck("id", &ids).Error; err != nil {
		return err
	}

	for _, id := range ids {
		if err := services.RecomputeEmployeeTotals(s.db, id); err != nil {
			logrus.WithField("employee_id", id).Errorf("Failed to repair employee totals: %v", err)
		}
	}

	services.InvalidatePlannerCaches(ctx, s.redis, ids...)

	return nil
}

type AccrualResult struct {
	MonthsProcessed []string `json:"months_processed"`
	DaysPerMonth    string   `json:"days_per_month"`
	Employees       int64    `json:"employees"`
}

// ApplyMonthlyAccrual credits every employee's annual allowance with the
// configured monthly rate, once per elapsed calendar month. The last
// processed month is kept as a Setting row, which makes reruns no-ops.
func (s *EmployeeHandler) ApplyMonthlyAccrual(ctx context.Context, now time.Time) (*AccrualResult, error) {
	if s.accrualRate.IsZero() {
		return &AccrualResult{DaysPerMonth: "0"}, nil
	}

	var marker database.Setting
	markerValue := ""
	if err := s.db.First(&marker, "key = ?", accrualMarkerKey).Error; err == nil {
		markerValue = marker.Value
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	months := planner.MonthsSince(markerValue, now)
	if len(months) == 0 {
		return &AccrualResult{DaysPerMonth: s.accrualRate.String()}, nil
	}

	var employees int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		credit := s.accrualRate.Mul(decimal.NewFromInt(int64(len(months))))
		res := tx.Model(&database.Employee{}).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Update("vacation_days_total", gorm.Expr("vacation_days_total + ?", credit))
		if res.Error != nil {
			return res.Error
		}
		employees = res.RowsAffected

		setting := database.Setting{Key: accrualMarkerKey, Value: months[len(months)-1]}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&setting).Error
	})
	if err != nil {
		return nil, err
	}

	services.InvalidatePlannerCaches(ctx, s.redis)

	logrus.WithFields(logrus.Fields{
		"months":    months,
		"employees": employees,
	}).Info("Monthly vacation accrual applied")

	return &AccrualResult{
		MonthsProcessed: months,
		DaysPerMonth:    s.accrualRate.String(),
		Employees:       employees,
	}, nil
}
