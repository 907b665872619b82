package delivery

import (
	"net/http"

	"pharmacare/internal/domain"
	"pharmacare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type checkoutRequest struct {
	ShippingAddress domain.Address `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod" binding:"required"`
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type OrderHandler struct {
	useCase usecase.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc usecase.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	userOrders := router.Group("/users/:userId/orders")
	{
		userOrders.POST("", h.Checkout)
		userOrders.GET("", h.ListOrders)
	}
	orders := router.Group("/orders")
	{
		orders.GET("/:id", h.GetOrderByID)
		orders.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := pathID(c, "userId", h.log)
	if !ok {
		return
	}
	h.log.Infof("Processing checkout request for User ID: %d", userID)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for checkout (User: %d): %v", userID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.useCase.Checkout(c.Request.Context(), userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		h.log.Errorf("Failed to check out cart of user %d: %v", userID, err)
		respondError(c, err, "Failed to create order")
		return
	}

	h.log.Infof("Order %d created successfully for user %d", order.ID, order.UserID)
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := pathID(c, "userId", h.log)
	if !ok {
		return
	}

	orders, err := h.useCase.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf("Failed to list orders for user %d: %v", userID, err)
		respondError(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	order, err := h.useCase.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get order by ID %d: %v", id, err)
		respondError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for status update of order %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.useCase.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.log.Errorf("Failed to update status of order %d: %v", id, err)
		respondError(c, err, "Failed to update order")
		return
	}

	h.log.Infof("Order %d moved to %s", order.ID, order.Status)
	c.JSON(http.StatusOK, gin.H{"order": order})
}
