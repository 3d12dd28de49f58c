package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Public catalog handlers ---
//
// Reference misses deliberately come back as empty lists with 200: the
// widget renders "no results" for half-migrated admin data instead of an
// error page.
//

// GetCategories is the handler for GET /api/categories.
func (h *Handlers) GetCategories(c *gin.Context) {
	cats, err := h.Resolver.ListCategories(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// GetSeries is the handler for GET /api/series?category=idOrSlugOrName.
func (h *Handlers) GetSeries(c *gin.Context) {
	list, err := h.Resolver.ListSeries(c.Request.Context(), c.Query("category"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetModels is the handler for GET /api/models?category=&series=.
func (h *Handlers) GetModels(c *gin.Context) {
	list, err := h.Resolver.ListModels(c.Request.Context(), c.Query("category"), c.Query("series"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetModelsForSeries is the handler for GET /api/series/:seriesId/models.
func (h *Handlers) GetModelsForSeries(c *gin.Context) {
	list, err := h.Resolver.ListModelsForSeries(c.Request.Context(), c.Param("seriesId"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetRepairs is the handler for GET /api/repairs?modelId=.
// Each repair carries priceEffective: the model's override price when one
// matches, else the base price, else the CALL_FOR_PRICE sentinel.
func (h *Handlers) GetRepairs(c *gin.Context) {
	quotes, err := h.Resolver.QuotesForModel(c.Request.Context(), c.Query("modelId"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// GetRepairByKey is the handler for GET /api/repairs/:key where key is a
// repair code or a database id.
func (h *Handlers) GetRepairByKey(c *gin.Context) {
	repair, err := h.Resolver.ResolveRepairByCodeOrID(c.Request.Context(), c.Param("key"))
	if err != nil {
		notFoundOrStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, repair)
}
