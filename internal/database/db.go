package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Skill struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// SkillList is stored as a JSON column; order is preserved.
type SkillList []Skill

func (s *SkillList) Scan(value interface{}) error {
	if value == nil {
		*s = SkillList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan SkillList: %v", value)
	}

	return json.Unmarshal(bytes, s)
}

func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func NewConnection(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		logrus.Fatal("DSN is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

type Employee struct {
	ID                string          `gorm:"primaryKey;type:uuid"`
	Name              string          `gorm:"not null"`
	Email             string          `gorm:"uniqueIndex;not null"`
	Role              string          `gorm:"not null;default:employee"`
	VacationDaysTotal decimal.Decimal `gorm:"type:numeric;not null"`
	VacationDaysUsed  decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	SickDaysUsed      decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	SpecialDaysUsed   decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Skills            SkillList       `gorm:"type:jsonb"`
	CreatedAt         *time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         *time.Time      `gorm:"autoUpdateTime"`
}

type LeaveEntry struct {
	ID           string          `gorm:"primaryKey;type:uuid"`
	EmployeeID   string          `gorm:"index;not null"`
	EmployeeName string          `gorm:"not null"`
	VacationType string          `gorm:"not null"`
	StartDate    time.Time       `gorm:"type:date;not null;index"`
	EndDate      time.Time       `gorm:"type:date;not null;index"`
	DaysCount    decimal.Decimal `gorm:"type:numeric;not null"`
	Notes        string          `gorm:"type:text"`
	CreatedAt    *time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    *time.Time      `gorm:"autoUpdateTime"`
}

type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"not null;default:user"`
	LastLogin *time.Time
	CreatedAt *time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime"`
}

type Setting struct {
	Key       string     `gorm:"primaryKey"`
	Value     string     `gorm:"not null"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime"`
}

func Migrate(db *gorm.DB) error {
	db.AutoMigrate(&Employee{})
	db.AutoMigrate(&LeaveEntry{})
	db.AutoMigrate(&User{})
	db.AutoMigrate(&Setting{})
	return nil
}
