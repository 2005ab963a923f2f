package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"urlaubsplaner-system/config"
	"urlaubsplaner-system/internal/database"
	"urlaubsplaner-system/internal/services"
	"urlaubsplaner-system/internal/utils"
)

type AuthHandler struct {
	db   *gorm.DB
	auth config.AuthConfig
}

func NewAuthHandler(db *gorm.DB, auth config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		db:   db,
		auth: auth,
	}
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
	Role      string
}

// --- Authentication ---

func (s *AuthHandler) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", services.ErrValidation)
	}

	var user database.User
	if err := s.db.First(&user, "username = ?", strings.ToLower(username)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: invalid username or password", services.ErrValidation)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", services.ErrValidation)
	}

	ttl := time.Duration(s.auth.TokenTTLHrs) * time.Hour
	token, exp, err := utils.GenerateToken([]byte(s.auth.JWTSecret), user.ID, user.Username, user.Role, ttl)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.db.Save(&user).Error; err != nil {
		logrus.WithField("username", user.Username).Warnf("Failed to record last login: %v", err)
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: exp,
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

// --- Account Management ---

func (s *AuthHandler) CreateUser(ctx context.Context, username, password, role string) (*database.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", services.ErrValidation)
	}
	if role == "" {
		role = "user"
	}
	if role != "user" && role != "admin" {
		return nil, fmt.Errorf("%w: role must be user or admin", services.ErrValidation)
	}

	usernameKey := strings.ToLower(username)

	var existing database.User
	if err := s.db.First(&existing, "username = ?", usernameKey).Error; err == nil {
		return nil, fmt.Errorf("%w: username already exists", services.ErrValidation)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := database.User{
		Username: usernameKey,
		Password: string(pwHash),
		Role:     role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *AuthHandler) ListUsers(ctx context.Context) ([]database.User, error) {
	var users []database.User
	if err := s.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *AuthHandler) UpdatePassword(ctx context.Context, username, newPassword string) error {
	if len(strings.TrimSpace(newPassword)) < 3 {
		return fmt.Errorf("%w: password must be at least 3 characters", services.ErrValidation)
	}

	var user database.User
	if err := s.db.First(&user, "username = ?", strings.ToLower(username)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: user", services.ErrNotFound)
		}
		return err
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPassword)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(pwHash)
	return s.db.Save(&user).Error
}

// DeleteUser refuses to remove the built-in admin account so the system can
// never lock everyone out.
func (s *AuthHandler) DeleteUser(ctx context.Context, username string) error {
	usernameKey := strings.ToLower(username)
	if usernameKey == "admin" {
		return fmt.Errorf("%w: the admin account cannot be deleted", services.ErrValidation)
	}

	res := s.db.Delete(&database.User{}, "username = ?", usernameKey)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user", services.ErrNotFound)
	}
	return nil
}

// SeedDefaultAdmin creates the admin account on a fresh database.
func (s *AuthHandler) SeedDefaultAdmin(ctx context.Context, password string) error {
	var existing database.User
	err := s.db.First(&existing, "username = ?", "admin").Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if _, err := s.CreateUser(ctx, "admin", password, "admin"); err != nil {
		return err
	}

	logrus.Info("Seeded default admin account")
	return nil
}
