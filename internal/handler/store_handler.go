package handler

import (
	"errors"
	"net/http"
	"strconv"

	"listen/internal/middleware"
	"listen/internal/repository"
	"listen/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StoreHandler is the public storefront: catalog, client accounts, orders.
// An order placed here is an ordinary sale and raises the same notifications
// the back office sees.
type StoreHandler struct {
	storeSvc    *service.StoreAuthService
	saleSvc     *service.SaleService
	productRepo *repository.ProductRepository
	saleRepo    *repository.SaleRepository
}

func NewStoreHandler(storeSvc *service.StoreAuthService, saleSvc *service.SaleService,
	productRepo *repository.ProductRepository, saleRepo *repository.SaleRepository) *StoreHandler {
	return &StoreHandler{storeSvc: storeSvc, saleSvc: saleSvc, productRepo: productRepo, saleRepo: saleRepo}
}

func (h *StoreHandler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.productRepo.ListInStock(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": list})
}

func (h *StoreHandler) GetProduct(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.productRepo.GetByID(uint(id))
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

func (h *StoreHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, access, err := h.storeSvc.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "register failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"client": client, "access_token": access})
}

func (h *StoreHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, access, err := h.storeSvc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client, "access_token": access})
}

// PlaceOrder creates a sale on the authenticated client's own account.
func (h *StoreHandler) PlaceOrder(c *gin.Context) {
	clientID := middleware.GetUserID(c)
	var req struct {
		Items []service.SaleItemInput `json:"items" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sale, err := h.saleSvc.Create(clientID, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmptySale):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// MyOrders lists the authenticated client's own sales.
func (h *StoreHandler) MyOrders(c *gin.Context) {
	clientID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.saleRepo.ListByClient(clientID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}
