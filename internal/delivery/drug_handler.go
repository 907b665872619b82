package delivery

import (
	"net/http"
	"strconv"

	"pharmacare/internal/domain"
	"pharmacare/internal/filter"
	"pharmacare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const fetchDrugsFailed = "Failed to fetch drugs"

type DrugHandler struct {
	useCase usecase.CatalogUseCase
	log     *logrus.Logger
}

func NewDrugHandler(uc usecase.CatalogUseCase, logger *logrus.Logger) *DrugHandler {
	return &DrugHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *DrugHandler) RegisterRoutes(router gin.IRouter) {
	drugs := router.Group("/drugs")
	{
		drugs.GET("", h.ListDrugs)
		drugs.GET("/:id", h.GetDrugByID)
	}
	router.GET("/catalog", h.Browse)
}

// ListDrugs serves one of three reads: search wins over category, and with
// neither parameter the whole catalog is returned.
func (h *DrugHandler) ListDrugs(c *gin.Context) {
	search := c.Query("search")
	categoryStr := c.Query("category")

	var (
		drugs   []domain.Drug
		listErr error
	)
	switch {
	case search != "":
		drugs, listErr = h.useCase.SearchDrugs(c.Request.Context(), search)
	case categoryStr != "":
		categoryID, err := strconv.Atoi(categoryStr)
		if err != nil || categoryID <= 0 {
			h.log.Warnf("Invalid category filter parameter: %s", categoryStr)
			ErrorResponse(c, http.StatusBadRequest, "Invalid category format")
			return
		}
		drugs, listErr = h.useCase.GetDrugsByCategory(c.Request.Context(), categoryID)
	default:
		drugs, listErr = h.useCase.GetAllDrugs(c.Request.Context())
	}

	if listErr != nil {
		h.log.Errorf("Failed to list drugs (search=%q, category=%q): %v", search, categoryStr, listErr)
		respondError(c, listErr, fetchDrugsFailed)
		return
	}

	h.log.Infof("Retrieved %d drugs", len(drugs))
	c.JSON(http.StatusOK, gin.H{"drugs": drugs})
}

func (h *DrugHandler) GetDrugByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		h.log.Warnf("Invalid drug ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid drug ID format")
		return
	}

	drug, err := h.useCase.GetDrugByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get drug by ID %d: %v", id, err)
		respondError(c, err, "Failed to fetch drug")
		return
	}

	c.JSON(http.StatusOK, gin.H{"drug": drug})
}

func (h *DrugHandler) Browse(c *gin.Context) {
	query := c.Query("q")
	category := c.DefaultQuery("category", filter.AllCategories)

	result, err := h.useCase.Browse(c.Request.Context(), query, category)
	if err != nil {
		h.log.Errorf("Failed to browse catalog: %v", err)
		respondError(c, err, fetchDrugsFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drugs":   result.Drugs,
		"total":   result.Total,
		"matched": len(result.Drugs),
	})
}
