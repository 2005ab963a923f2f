package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"urlaubsplaner-system/config"
	"urlaubsplaner-system/internal/gateway/handlers"
	"urlaubsplaner-system/internal/gateway/middleware"
	authhandler "urlaubsplaner-system/internal/services/auth/handler"
	employeehandler "urlaubsplaner-system/internal/services/employee/handler"
	leavehandler "urlaubsplaner-system/internal/services/leave/handler"
)

func setupRouter(
	cfg config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	authService *authhandler.AuthHandler,
	employeeService *employeehandler.EmployeeHandler,
	leaveService *leavehandler.LeaveHandler,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit())

	authHandler := handlers.NewAuthHTTPHandler(authService)
	employeeHandler := handlers.NewEmployeeHTTPHandler(employeeService)
	leaveHandler := handlers.NewLeaveHTTPHandler(leaveService)

	jwtSecret := []byte(cfg.Auth.JWTSecret)

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtSecret))
	{
		employees := protected.Group("/employees")
		{
			employees.POST("", employeeHandler.CreateEmployee)
			employees.GET("", employeeHandler.ListEmployees)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		entries := protected.Group("/vacation-entries")
		{
			entries.POST("", leaveHandler.CreateEntry)
			entries.GET("", leaveHandler.ListEntries)
			entries.GET("/:id", leaveHandler.GetEntry)
			entries.PUT("/:id", leaveHandler.UpdateEntry)
			entries.DELETE("/:id", leaveHandler.DeleteEntry)
		}

		protected.GET("/settings", employeeHandler.GetSettings)

		admin := protected.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			users := admin.Group("/users")
			{
				users.POST("", authHandler.CreateUser)
				users.GET("", authHandler.ListUsers)
				users.PUT("/:username", authHandler.UpdatePassword)
				users.DELETE("/:username", authHandler.DeleteUser)
			}

			admin.POST("/accrual/run", employeeHandler.RunAccrual)
		}
	}

	r.GET("/health", healthCheckHandler())
	r.GET("/health/detailed", detailedHealthCheckHandler(db, redisClient))

	return r
}

func healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	}
}

func detailedHealthCheckHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		services := map[string]interface{}{
			"database": checkDatabaseHealth(db),
			"redis":    checkRedisHealth(ctx, redisClient),
		}

		overallStatus := "healthy"
		httpStatus := http.StatusOK
		for _, service := range services {
			if serviceMap, ok := service.(map[string]interface{}); ok {
				if serviceMap["status"] != "healthy" {
					overallStatus = "degraded"
					httpStatus = http.StatusPartialContent
				}
			}
		}

		c.JSON(httpStatus, gin.H{
			"overall_status": overallStatus,
			"services":       services,
			"timestamp":      time.Now(),
		})
	}
}

func checkDatabaseHealth(db *gorm.DB) map[string]interface{} {
	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		return map[string]interface{}{
			"status":  "unavailable",
			"message": "Database connection lost",
		}
	}
	return map[string]interface{}{
		"status":  "healthy",
		"message": "Database is responding",
	}
}

func checkRedisHealth(ctx context.Context, redisClient *redis.Client) map[string]interface{} {
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return map[string]interface{}{
			"status":  "unavailable",
			"message": "Redis connection lost",
		}
	}
	return map[string]interface{}{
		"status":  "healthy",
		"message": "Redis is responding",
	}
}
