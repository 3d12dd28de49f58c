package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramservice/repair-quote-api/internal/catalog"
	"github.com/ramservice/repair-quote-api/internal/config"
	"github.com/ramservice/repair-quote-api/internal/intake"
	"github.com/ramservice/repair-quote-api/internal/models"
)

// AdminStore is the mutation surface the administrative handlers need.
// *store.Mongo satisfies it; tests plug in a fake.
type AdminStore interface {
	InsertCategory(ctx context.Context, cat *models.Category) (primitive.ObjectID, error)
	InsertSeries(ctx context.Context, ser *models.Series) (primitive.ObjectID, error)
	InsertModel(ctx context.Context, m *models.DeviceModel) (primitive.ObjectID, error)
	InsertRepair(ctx context.Context, r *models.RepairOption) (primitive.ObjectID, error)
	UpdateModel(ctx context.Context, id primitive.ObjectID, set bson.M) error
	UpdateRepair(ctx context.Context, id primitive.ObjectID, set bson.M) error
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
	DeleteSeries(ctx context.Context, id primitive.ObjectID) error
	DeleteModel(ctx context.Context, id primitive.ObjectID) error
	DeleteRepair(ctx context.Context, id primitive.ObjectID) error
	ServiceRequests(ctx context.Context, limit int64) ([]models.ServiceRequest, error)
}

// Handlers holds all dependencies for the HTTP layer.
type Handlers struct {
	Resolver *catalog.Resolver
	Intake   *intake.Service
	Admin    AdminStore
	Config   *config.Config
}

// storeError answers a failed read. Not-found is not an error here (list
// handlers never see it and single-entity handlers map it to 404 themselves),
// so anything arriving is a store-availability problem: fatal for this
// request, logged, generic to the client.
func storeError(c *gin.Context, err error) {
	logrus.WithError(err).Error("store unavailable")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Service temporarily unavailable"})
}

// notFoundOrStoreError distinguishes a missing entity from a store failure.
func notFoundOrStoreError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	storeError(c, err)
}
