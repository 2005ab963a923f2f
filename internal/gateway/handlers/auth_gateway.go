package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"urlaubsplaner-system/internal/database"
	authhandler "urlaubsplaner-system/internal/services/auth/handler"
)

type AuthHTTPHandler struct {
	auth *authhandler.AuthHandler
}

func NewAuthHTTPHandler(auth *authhandler.AuthHandler) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		auth: auth,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=3"`
	Role     string `json:"role"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type UserView struct {
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
}

func userView(u database.User) UserView {
	return UserView{
		Username:    u.Username,
		Role:        u.Role,
		LastLogin:   u.LastLogin,
		CreatedDate: u.CreatedAt,
	}
}

func (h *AuthHTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	result, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Login failures map to 401 regardless of the exact cause.
		c.JSON(http.StatusUnauthorized, errorResponse("invalid username or password"))
		return
	}

	c.JSON(http.StatusOK, successResponse("login successful", gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user": gin.H{
			"username": result.Username,
			"role":     result.Role,
		},
	}))
}

// --- Account Management ---

func (h *AuthHTTPHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	user, err := h.auth.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("user created successfully", userView(*user)))
}

func (h *AuthHTTPHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = userView(u)
	}

	c.JSON(http.StatusOK, successResponse("users retrieved successfully", views))
}

func (h *AuthHTTPHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	if err := h.auth.UpdatePassword(c.Request.Context(), c.Param("username"), req.Password); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("password updated successfully", nil))
}

func (h *AuthHTTPHandler) DeleteUser(c *gin.Context) {
	if err := h.auth.DeleteUser(c.Request.Context(), c.Param("username")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("user deleted successfully", nil))
}
