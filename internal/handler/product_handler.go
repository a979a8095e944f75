package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"listen/internal/models"
	"listen/internal/repository"
	"listen/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	repo            *repository.ProductRepository
	cloud           cloudinary.Client
	defaultLowStock int
}

func NewProductHandler(repo *repository.ProductRepository, cloud cloudinary.Client, defaultLowStock int) *ProductHandler {
	return &ProductHandler{repo: repo, cloud: cloud, defaultLowStock: defaultLowStock}
}

// lowStockOrDefault resolves the alert threshold for a new product.
func lowStockOrDefault(requested *int, def int) int {
	if requested != nil {
		return *requested
	}
	return def
}

func (h *ProductHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.repo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": list})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req struct {
		Name              string `json:"name" binding:"required"`
		SKU               string `json:"sku" binding:"required"`
		Description       string `json:"description"`
		PriceCents        int64  `json:"price_cents" binding:"required,min=0"`
		Stock             int    `json:"stock" binding:"min=0"`
		LowStockThreshold *int   `json:"low_stock_threshold"`
		SupplierID        *uint  `json:"supplier_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if existing, _ := h.repo.GetBySKU(req.SKU); existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "sku already exists"})
		return
	}
	p := &models.Product{
		Name:              req.Name,
		SKU:               req.SKU,
		Description:       req.Description,
		PriceCents:        req.PriceCents,
		Stock:             req.Stock,
		LowStockThreshold: lowStockOrDefault(req.LowStockThreshold, h.defaultLowStock),
		SupplierID:        req.SupplierID,
	}
	if err := h.repo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	var req struct {
		Name              *string `json:"name"`
		Description       *string `json:"description"`
		PriceCents        *int64  `json:"price_cents"`
		Stock             *int    `json:"stock"`
		LowStockThreshold *int    `json:"low_stock_threshold"`
		SupplierID        *uint   `json:"supplier_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.PriceCents != nil {
		p.PriceCents = *req.PriceCents
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.LowStockThreshold != nil {
		p.LowStockThreshold = *req.LowStockThreshold
	}
	if req.SupplierID != nil {
		p.SupplierID = req.SupplierID
	}
	if err := h.repo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadImage attaches a product photo via Cloudinary.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	defer file.Close()

	publicID := fmt.Sprintf("product_%d_%d", p.ID, time.Now().Unix())
	url, thumb, err := h.cloud.UploadImage(c.Request.Context(), file, "products", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	p.ImageURL = url
	p.ThumbnailURL = thumb
	if err := h.repo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url, "thumbnail_url": thumb})
}
