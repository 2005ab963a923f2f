package services

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"urlaubsplaner-system/internal/database"
	"urlaubsplaner-system/internal/planner"
)

// RecomputeEmployeeTotals rebuilds the derived day counters of one employee
// from that employee's leave entries. Every create, update and delete on a
// leave entry funnels through here so the derived fields cannot drift between
// call sites. Safe to re-run at any time with the same result.
func RecomputeEmployeeTotals(db *gorm.DB, employeeID string) error {
	var employee database.Employee
	if err := db.First(&employee, "id = ?", employeeID).Error; err != nil {
		return err
	}

	var rows []database.LeaveEntry
	if err := db.Where("employee_id = ?", employeeID).Find(&rows).Error; err != nil {
		return err
	}

	entries := make([]planner.Entry, 0, len(rows))
	for _, r := range rows {
		cat := planner.Category(r.VacationType)
		if !cat.Valid() {
			logrus.WithFields(logrus.Fields{
				"entry_id":      r.ID,
				"vacation_type": r.VacationType,
			}).Warn("Skipping entry with unrecognized vacation type")
			continue
		}
		entries = append(entries, planner.Entry{
			ID:       r.ID,
			Category: cat,
			Days:     r.DaysCount,
		})
	}

	totals := planner.RecomputeTotals(entries)

	return db.Model(&database.Employee{}).Where("id = ?", employeeID).Updates(map[string]interface{}{
		"vacation_days_used": totals.VacationDaysUsed,
		"sick_days_used":     totals.SickDaysUsed,
		"special_days_used":  totals.SpecialDaysUsed,
	}).Error
}
