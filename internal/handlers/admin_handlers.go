package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramservice/repair-quote-api/internal/auth"
	"github.com/ramservice/repair-quote-api/internal/catalog"
	"github.com/ramservice/repair-quote-api/internal/models"
)

//
// --- Admin handlers ---
//

// AdminLoginInput defines the JSON for POST /admin/login.
type AdminLoginInput struct {
	Password string `json:"password" binding:"required"`
}

// AdminLogin exchanges the admin password for a session token, so admin
// tooling doesn't have to hold the password for every request.
func (h *Handlers) AdminLogin(c *gin.Context) {
	var input AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.Config.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(input.Password), []byte(h.Config.AdminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token, err := auth.GenerateAdminToken(h.Config.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CreateCategory is the handler for POST /admin/category.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat := models.Category{
		Name:    input.Name,
		Slug:    slugOrDerive(input.Slug, input.Name),
		IconURL: input.IconURL,
		Order:   input.Order,
	}
	id, err := h.Admin.InsertCategory(c.Request.Context(), &cat)
	if err != nil {
		storeError(c, err)
		return
	}
	cat.ID = id
	c.JSON(http.StatusOK, cat)
}

// CreateSeries is the handler for POST /admin/series. The category reference
// must resolve to an existing category (strict variant): series created
// through the admin API always carry a clean id reference, even though the
// resolver still tolerates the older encodings on read.
func (h *Handlers) CreateSeries(c *gin.Context) {
	var input models.CreateSeriesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catID, ok := h.resolveCategoryID(c, input.Category)
	if !ok {
		return
	}

	ser := models.Series{
		Name:     input.Name,
		Slug:     slugOrDerive(input.Slug, input.Name),
		Category: models.CategoryRefOf(catID),
		IconURL:  input.IconURL,
		Order:    input.Order,
	}
	id, err := h.Admin.InsertSeries(c.Request.Context(), &ser)
	if err != nil {
		storeError(c, err)
		return
	}
	ser.ID = id
	c.JSON(http.StatusOK, ser)
}

// CreateModel is the handler for POST /admin/model.
func (h *Handlers) CreateModel(c *gin.Context) {
	var input models.CreateModelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := models.DeviceModel{
		Name:             input.Name,
		Brand:            input.Brand,
		Slug:             slugOrDerive(input.Slug, input.Name),
		SKU:              input.SKU,
		ImageURL:         input.ImageURL,
		PriceOverrides:   models.PriceOverrideList(input.PriceOverrides),
		SupportedRepairs: input.SupportedRepairs,
		Metafields:       input.Metafields,
		Order:            input.Order,
	}

	if input.Series != "" {
		id, ok := h.resolveSeriesID(c, input.Series)
		if !ok {
			return
		}
		m.Series = id
	}
	if input.Category != "" {
		catID, ok := h.resolveCategoryID(c, input.Category)
		if !ok {
			return
		}
		m.Category = models.CategoryRefOf(catID)
	}

	id, err := h.Admin.InsertModel(c.Request.Context(), &m)
	if err != nil {
		storeError(c, err)
		return
	}
	m.ID = id
	c.JSON(http.StatusOK, m)
}

// CreateRepair is the handler for POST /admin/repair.
func (h *Handlers) CreateRepair(c *gin.Context) {
	var input models.CreateRepairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visible := true
	if input.Visible != nil {
		visible = *input.Visible
	}
	if input.BasePrice != nil && *input.BasePrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "basePrice must not be negative"})
		return
	}

	r := models.RepairOption{
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Images:      input.Images,
		Visible:     visible,
		Order:       input.Order,
	}
	id, err := h.Admin.InsertRepair(c.Request.Context(), &r)
	if err != nil {
		storeError(c, err)
		return
	}
	r.ID = id
	c.JSON(http.StatusOK, r)
}

// UpdateModelInput defines the JSON for PUT /admin/model/:id. Nil fields are
// left untouched.
type UpdateModelInput struct {
	Name             *string                 `json:"name"`
	Brand            *string                 `json:"brand"`
	ImageURL         *string                 `json:"imageUrl"`
	PriceOverrides   *[]models.PriceOverride `json:"priceOverrides"`
	SupportedRepairs *[]string               `json:"supportedRepairs"`
	Order            *int                    `json:"order"`
}

// UpdateModel is the handler for PUT /admin/model/:id.
func (h *Handlers) UpdateModel(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var input UpdateModelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Brand != nil {
		set["brand"] = *input.Brand
	}
	if input.ImageURL != nil {
		set["imageUrl"] = *input.ImageURL
	}
	if input.PriceOverrides != nil {
		set["priceOverrides"] = *input.PriceOverrides
	}
	if input.SupportedRepairs != nil {
		set["supportedRepairs"] = *input.SupportedRepairs
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := h.Admin.UpdateModel(c.Request.Context(), id, set); err != nil {
		notFoundOrStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UpdateRepairInput defines the JSON for PUT /admin/repair/:id.
type UpdateRepairInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	BasePrice   *int64    `json:"basePrice"`
	Images      *[]string `json:"images"`
	Visible     *bool     `json:"visible"`
	Order       *int      `json:"order"`
}

// UpdateRepair is the handler for PUT /admin/repair/:id.
func (h *Handlers) UpdateRepair(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var input UpdateRepairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.BasePrice != nil && *input.BasePrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "basePrice must not be negative"})
		return
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.BasePrice != nil {
		set["basePrice"] = *input.BasePrice
	}
	if input.Images != nil {
		set["images"] = *input.Images
	}
	if input.Visible != nil {
		set["visible"] = *input.Visible
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := h.Admin.UpdateRepair(c.Request.Context(), id, set); err != nil {
		notFoundOrStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteCategory is the handler for DELETE /admin/category/:id.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	h.deleteEntity(c, h.Admin.DeleteCategory)
}

// DeleteSeries is the handler for DELETE /admin/series/:id.
func (h *Handlers) DeleteSeries(c *gin.Context) {
	h.deleteEntity(c, h.Admin.DeleteSeries)
}

// DeleteModel is the handler for DELETE /admin/model/:id.
func (h *Handlers) DeleteModel(c *gin.Context) {
	h.deleteEntity(c, h.Admin.DeleteModel)
}

// DeleteRepair is the handler for DELETE /admin/repair/:id.
func (h *Handlers) DeleteRepair(c *gin.Context) {
	h.deleteEntity(c, h.Admin.DeleteRepair)
}

func (h *Handlers) deleteEntity(c *gin.Context, del func(ctx context.Context, id primitive.ObjectID) error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		notFoundOrStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetServiceRequests is the handler for GET /admin/requests.
func (h *Handlers) GetServiceRequests(c *gin.Context) {
	reqs, err := h.Admin.ServiceRequests(c.Request.Context(), 200)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// resolveCategoryID resolves an id/slug/name reference to an existing
// category, answering the request itself on failure.
func (h *Handlers) resolveCategoryID(c *gin.Context, ref string) (primitive.ObjectID, bool) {
	cats, err := h.Resolver.ListCategories(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return primitive.NilObjectID, false
	}
	parsed := catalog.ParseReference(ref)
	for _, cat := range cats {
		if parsed.ByID() && cat.ID == parsed.ID() {
			return cat.ID, true
		}
		if !parsed.ByID() && (cat.Slug == ref || cat.Name == ref) {
			return cat.ID, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + ref})
	return primitive.NilObjectID, false
}

// resolveSeriesID resolves an id/slug reference to an existing series.
func (h *Handlers) resolveSeriesID(c *gin.Context, ref string) (primitive.ObjectID, bool) {
	list, err := h.Resolver.ListSeries(c.Request.Context(), "")
	if err != nil {
		storeError(c, err)
		return primitive.NilObjectID, false
	}
	parsed := catalog.ParseReference(ref)
	for _, ser := range list {
		if parsed.ByID() && ser.ID == parsed.ID() {
			return ser.ID, true
		}
		if !parsed.ByID() && (ser.Slug == ref || ser.Name == ref) {
			return ser.ID, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown series: " + ref})
	return primitive.NilObjectID, false
}

func slugOrDerive(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	return slug.Make(name)
}
