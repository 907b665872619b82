package delivery

import (
	"net/http"
	"strconv"

	"pharmacare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CatalogUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CatalogUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterRoutes shares one wildcard name between the slug lookup and the
// per-category drug list, as gin requires for sibling routes.
func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:key", h.GetCategoryBySlug)
		categories.GET("/:key/drugs", h.ListCategoryDrugs)
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.GetAllCategories(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		respondError(c, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	slug := c.Param("key")
	category, err := h.useCase.GetCategoryBySlug(c.Request.Context(), slug)
	if err != nil {
		h.log.Warnf("Failed to get category %q: %v", slug, err)
		respondError(c, err, "Failed to fetch category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *CategoryHandler) ListCategoryDrugs(c *gin.Context) {
	idStr := c.Param("key")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid category ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	drugs, err := h.useCase.GetDrugsByCategory(c.Request.Context(), id)
	if err != nil {
		h.log.Errorf("Failed to list drugs for category %d: %v", id, err)
		respondError(c, err, fetchDrugsFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drugs": drugs})
}
