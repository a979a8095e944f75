package handler

import (
	"errors"
	"net/http"
	"strconv"

	"listen/internal/repository"
	"listen/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SaleHandler struct {
	svc  *service.SaleService
	repo *repository.SaleRepository
}

func NewSaleHandler(svc *service.SaleService, repo *repository.SaleRepository) *SaleHandler {
	return &SaleHandler{svc: svc, repo: repo}
}

func (h *SaleHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.repo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": list})
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	sale, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req struct {
		ClientID uint                    `json:"client_id" binding:"required"`
		Items    []service.SaleItemInput `json:"items" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sale, err := h.svc.Create(req.ClientID, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmptySale):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) UpdateStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sale, err := h.svc.UpdateStatus(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) GenerateInvoice(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	inv, err := h.svc.GenerateInvoice(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		case errors.Is(err, service.ErrInvoiceExists):
			c.JSON(http.StatusConflict, gin.H{"error": "invoice already generated"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invoice failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, inv)
}
