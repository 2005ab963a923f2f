package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"urlaubsplaner-system/config"
	"urlaubsplaner-system/internal/database"
	"urlaubsplaner-system/internal/planner"
	authhandler "urlaubsplaner-system/internal/services/auth/handler"
	employeehandler "urlaubsplaner-system/internal/services/employee/handler"
	leavehandler "urlaubsplaner-system/internal/services/leave/handler"
)

func main() {
	cfg := config.LoadConfig()

	redisClient := config.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		logrus.Fatalf("Failed to connect to db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	policy := planner.Policy{MaxConcurrentPercentage: cfg.Policy.MaxConcurrentPercentage}

	authService := authhandler.NewAuthHandler(db, cfg.Auth)
	employeeService := employeehandler.NewEmployeeHandler(db, redisClient, policy, cfg.Accrual.DaysPerMonth)
	leaveService := leavehandler.NewLeaveHandler(db, redisClient, policy)

	ctx := context.Background()
	if err := authService.SeedDefaultAdmin(ctx, "admin123"); err != nil {
		logrus.Fatalf("Failed to seed admin account: %v", err)
	}
	// Heal derived fields left stale by a crash or manual data edits.
	if err := employeeService.RepairAllTotals(ctx); err != nil {
		logrus.Errorf("Failed to repair employee totals at startup: %v", err)
	}

	r := setupRouter(cfg, db, redisClient, authService, employeeService, leaveService)

	logrus.Infof("Starting Urlaubsplaner server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
