package handler

import (
	"errors"
	"net/http"
	"strconv"

	"listen/internal/domain"
	"listen/internal/middleware"
	"listen/internal/repository"
	"listen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UserHandler is the admin-only back-office account surface. Every mutation
// raises an admin-scoped notification and an audit row.
type UserHandler struct {
	authSvc   *service.AuthService
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditLogRepository
	notifier  *service.NotificationService
}

func NewUserHandler(authSvc *service.AuthService, userRepo *repository.UserRepository,
	auditRepo *repository.AuditLogRepository, notifier *service.NotificationService) *UserHandler {
	return &UserHandler{authSvc: authSvc, userRepo: userRepo, auditRepo: auditRepo, notifier: notifier}
}

func (h *UserHandler) List(c *gin.Context) {
	list, err := h.userRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		Name     string      `json:"name" binding:"required"`
		Email    string      `json:"email" binding:"required,email"`
		Password string      `json:"password" binding:"required,min=8"`
		Role     domain.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.authSvc.CreateUser(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actorID := middleware.GetUserID(c)
	if err := h.auditRepo.Record(actorID, "create", "user", u.ID, u.Email); err != nil {
		log.Warn().Err(err).Msg("audit record failed")
	}
	if err := h.notifier.NotifyUserCreated(u.ID, u.Email); err != nil {
		log.Warn().Err(err).Uint("user_id", u.ID).Msg("user-created notification failed")
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	u, err := h.userRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	var req struct {
		Name *string      `json:"name"`
		Role *domain.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		if *req.Role != domain.RoleAdmin && *req.Role != domain.RoleStaff {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be ADMIN or STAFF"})
			return
		}
		u.Role = *req.Role
	}
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	actorID := middleware.GetUserID(c)
	if err := h.auditRepo.Record(actorID, "update", "user", u.ID, u.Email); err != nil {
		log.Warn().Err(err).Msg("audit record failed")
	}
	if err := h.notifier.NotifyUserUpdated(u.ID, u.Email); err != nil {
		log.Warn().Err(err).Uint("user_id", u.ID).Msg("user-updated notification failed")
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	actorID := middleware.GetUserID(c)
	if uint(id) == actorID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
		return
	}
	u, err := h.userRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if err := h.userRepo.Delete(u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if err := h.auditRepo.Record(actorID, "delete", "user", u.ID, u.Email); err != nil {
		log.Warn().Err(err).Msg("audit record failed")
	}
	if err := h.notifier.NotifyUserDeleted(u.ID, u.Email); err != nil {
		log.Warn().Err(err).Uint("user_id", u.ID).Msg("user-deleted notification failed")
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
