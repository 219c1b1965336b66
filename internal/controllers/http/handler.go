package http

import (
	"net/http"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/middleware"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	fulfillment *services.FulfillmentService
	discounts   *services.DiscountService
	logger      *zap.Logger
}

func NewHandler(fulfillment *services.FulfillmentService, discounts *services.DiscountService, logger *zap.Logger) *Handler {
	return &Handler{fulfillment: fulfillment, discounts: discounts, logger: logger}
}

// RegisterRoutes wires the public surface (placement, preview) and the
// admin surface (everything that moves state) behind the API-key gate.
func (h *Handler) RegisterRoutes(r *gin.Engine, adminKeys []string) {
	r.POST("/orders", h.CreateOrder)
	r.POST("/discounts/preview", h.PreviewDiscount)

	admin := r.Group("/", middleware.APIKeyAuth(adminKeys))
	admin.GET("/orders", h.ListOrders)
	admin.GET("/orders/:id", h.GetOrder)
	admin.GET("/orders/number/:number", h.GetOrderByNumber)
	admin.GET("/orders/status/:status", h.ListOrdersByStatus)
	admin.PATCH("/orders/:id", h.UpdateOrder)
	admin.PATCH("/orders/:id/status", h.SetOrderStatus)
	admin.DELETE("/orders/:id", h.SoftDeleteOrder)
	admin.POST("/orders/:id/restore", h.RestoreOrder)

	admin.POST("/discounts", h.CreateDiscount)
	admin.GET("/discounts", h.ListDiscounts)
	admin.GET("/discounts/:id", h.GetDiscount)
	admin.PUT("/discounts/:id", h.UpdateDiscount)
	admin.DELETE("/discounts/:id", h.DeleteDiscount)
	admin.POST("/discounts/apply", h.ApplyDiscount)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	items := make([]services.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.OrderItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SizeName:    it.SizeName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	order, err := h.fulfillment.CreateOrder(c.Request.Context(), services.CreateOrderInput{
		FullName:     req.FullName,
		DateOfBirth:  req.DateOfBirth,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		Country:      req.Country,
		City:         req.City,
		District:     req.District,
		Ward:         req.Ward,
		Address:      req.Address,
		OrderNote:    req.OrderNote,
		Items:        items,
		TotalAmount:  req.TotalAmount,
		GrandTotal:   req.GrandTotal,
		DiscountCode: req.DiscountCode,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.fulfillment.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrderByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order number is required", "kind": "validation"})
		return
	}
	order, err := h.fulfillment.GetOrderByNumber(c.Request.Context(), number)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.fulfillment.ListOrders(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) ListOrdersByStatus(c *gin.Context) {
	status := domain.OrderStatus(c.Param("status"))
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer", "kind": "validation"})
			return
		}
		limit = n
	}
	orders, err := h.fulfillment.ListOrdersByStatus(c.Request.Context(), status, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	order, err := h.fulfillment.UpdateOrder(c.Request.Context(), &domain.Order{
		ID:          id,
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Country:     req.Country,
		City:        req.City,
		District:    req.District,
		Ward:        req.Ward,
		Address:     req.Address,
		OrderNote:   req.OrderNote,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) SetOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	order, err := h.fulfillment.SetStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *Handler) SoftDeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.fulfillment.SoftDeleteOrder(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

func (h *Handler) RestoreOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.fulfillment.RestoreOrder(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order restored"})
}

func (h *Handler) CreateDiscount(c *gin.Context) {
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	d, err := h.discounts.Create(c.Request.Context(), services.DiscountInput{
		Code:               req.Code,
		DiscountPercentage: req.DiscountPercentage,
		ExpirationDate:     req.ExpirationDate,
		UsageLimit:         req.UsageLimit,
		IsActive:           req.IsActive,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) ListDiscounts(c *gin.Context) {
	discounts, err := h.discounts.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, discounts)
}

func (h *Handler) GetDiscount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := h.discounts.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateDiscount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	d, err := h.discounts.Update(c.Request.Context(), id, services.DiscountInput{
		Code:               req.Code,
		DiscountPercentage: req.DiscountPercentage,
		ExpirationDate:     req.ExpirationDate,
		UsageLimit:         req.UsageLimit,
		IsActive:           req.IsActive,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDiscount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.discounts.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "discount deleted"})
}

func (h *Handler) PreviewDiscount(c *gin.Context) {
	var req PreviewDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	quote, err := h.discounts.Preview(c.Request.Context(), req.Code, req.TotalAmount)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *Handler) ApplyDiscount(c *gin.Context) {
	var req ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	quote, err := h.discounts.Apply(c.Request.Context(), req.Code, req.OrderID, req.TotalAmount)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer", "kind": "validation"})
		return 0, false
	}
	return id, true
}

func writeBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
}

// writeError maps the error taxonomy onto HTTP statuses: caller mistakes get
// 400, missing references 404, business-rule conflicts 409, and anything
// infrastructure-level 503 (the whole transaction is retryable).
func (h *Handler) writeError(c *gin.Context, err error) {
	kind := domain.Kind(err)
	status := http.StatusServiceUnavailable
	name := "transient"
	switch kind {
	case domain.KindValidation:
		status, name = http.StatusBadRequest, "validation"
	case domain.KindNotFound:
		status, name = http.StatusNotFound, "not_found"
	case domain.KindConflict:
		status, name = http.StatusConflict, "conflict"
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": name})
}
