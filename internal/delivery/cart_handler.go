package delivery

import (
	"net/http"
	"strconv"

	"pharmacare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type addCartItemRequest struct {
	DrugID   int `json:"drugId" binding:"required,min=1"`
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type updateCartItemRequest struct {
	// Pointer so an explicit 0 (remove) is told apart from a missing field.
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

type CartHandler struct {
	useCase usecase.CartUseCase
	log     *logrus.Logger
}

func NewCartHandler(uc usecase.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/users/:userId/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.AddItem)
		cart.PUT("/:drugId", h.UpdateItem)
		cart.DELETE("", h.ClearCart)
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := pathID(c, "userId", h.log)
	if !ok {
		return
	}

	cart, err := h.useCase.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf("Failed to get cart for user %d: %v", userID, err)
		respondError(c, err, "Failed to fetch cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := pathID(c, "userId", h.log)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for add to cart (user %d): %v", userID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.AddToCart(c.Request.Context(), userID, req.DrugID, req.Quantity); err != nil {
		h.log.Errorf("Failed to add drug %d to cart of user %d: %v", req.DrugID, userID, err)
		respondError(c, err, "Failed to add item to cart")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := pathID(c, "userId", h.log)
	if !ok {
		return
	}
	drugID, ok := pathID(c, "drugId", h.log)
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for cart update (user %d, drug %d): %v", userID, drugID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.UpdateCartItem(c.Request.Context(), userID, drugID, *req.Quantity); err != nil {
		h.log.Errorf("Failed to update drug %d in cart of user %d: %v", drugID, userID, err)
		respondError(c, err, "Failed to update cart item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := pathID(c, "userId", h.log)
	if !ok {
		return
	}

	if err := h.useCase.ClearCart(c.Request.Context(), userID); err != nil {
		h.log.Errorf("Failed to clear cart of user %d: %v", userID, err)
		respondError(c, err, "Failed to clear cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// pathID parses a positive integer path parameter, answering 400 itself when
// it is not one.
func pathID(c *gin.Context, name string, log *logrus.Logger) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		log.Warnf("Invalid %s parameter: %s", name, raw)
		ErrorResponse(c, http.StatusBadRequest, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}
