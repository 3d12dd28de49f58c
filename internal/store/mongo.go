// Package store implements the catalog and intake persistence interfaces on
// MongoDB. It owns query construction and error mapping; no pricing or
// reference-resolution logic lives here.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ramservice/repair-quote-api/internal/catalog"
	"github.com/ramservice/repair-quote-api/internal/database"
	"github.com/ramservice/repair-quote-api/internal/models"
)

// Mongo is the document-store implementation of catalog.Store plus the
// administrative mutations and the service-request log.
type Mongo struct {
	db *mongo.Database
}

var _ catalog.Store = (*Mongo)(nil)

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (s *Mongo) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// mapErr translates driver misses into the resolver's not-found signal.
// Everything else is a store-availability problem and passes through.
func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return catalog.ErrNotFound
	}
	return err
}

// ---- catalog.Store: reads ----

func (s *Mongo) Categories(ctx context.Context) ([]models.Category, error) {
	return findAll[models.Category](ctx, s.col(database.ColCategories), bson.M{}, displayOrder)
}

func (s *Mongo) CategoryBySlugOrName(ctx context.Context, key string) (*models.Category, error) {
	var cat models.Category
	filter := bson.M{"$or": []bson.M{{"slug": key}, {"name": key}}}
	if err := s.col(database.ColCategories).FindOne(ctx, filter).Decode(&cat); err != nil {
		return nil, mapErr(err)
	}
	return &cat, nil
}

func (s *Mongo) SeriesList(ctx context.Context, f catalog.SeriesFilter) ([]models.Series, error) {
	filter := bson.M{}
	if f.CategoryID != nil {
		filter["category"] = *f.CategoryID
	} else if f.RawCategory != "" {
		filter = rawCategoryFilter(f.RawCategory)
	}
	return findAll[models.Series](ctx, s.col(database.ColSeries), filter, displayOrder)
}

func (s *Mongo) SeriesBySlugOrName(ctx context.Context, key string) (*models.Series, error) {
	var ser models.Series
	filter := bson.M{"$or": []bson.M{{"slug": key}, {"name": key}}}
	if err := s.col(database.ColSeries).FindOne(ctx, filter).Decode(&ser); err != nil {
		return nil, mapErr(err)
	}
	return &ser, nil
}

func (s *Mongo) Models(ctx context.Context, f catalog.ModelFilter) ([]models.DeviceModel, error) {
	conds := []bson.M{}
	if f.CategoryID != nil {
		conds = append(conds, bson.M{"category": *f.CategoryID})
	} else if f.RawCategory != "" {
		conds = append(conds, rawCategoryFilter(f.RawCategory))
	}
	if f.SeriesID != nil {
		conds = append(conds, bson.M{"series": *f.SeriesID})
	} else if f.RawSeries != "" {
		conds = append(conds, bson.M{"series": f.RawSeries})
	}

	filter := bson.M{}
	switch len(conds) {
	case 1:
		filter = conds[0]
	case 2:
		filter = bson.M{"$and": conds}
	}
	return findAll[models.DeviceModel](ctx, s.col(database.ColDeviceModels), filter, brandNameOrder)
}

func (s *Mongo) ModelByID(ctx context.Context, id primitive.ObjectID) (*models.DeviceModel, error) {
	var m models.DeviceModel
	if err := s.col(database.ColDeviceModels).FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}

func (s *Mongo) Repairs(ctx context.Context, visibleOnly bool) ([]models.RepairOption, error) {
	filter := bson.M{}
	if visibleOnly {
		// Old documents predate the visible flag; missing counts as visible.
		filter["visible"] = bson.M{"$ne": false}
	}
	return findAll[models.RepairOption](ctx, s.col(database.ColRepairOptions), filter, displayOrder)
}

func (s *Mongo) RepairByCode(ctx context.Context, code string) (*models.RepairOption, error) {
	var r models.RepairOption
	if err := s.col(database.ColRepairOptions).FindOne(ctx, bson.M{"code": code}).Decode(&r); err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func (s *Mongo) RepairByID(ctx context.Context, id primitive.ObjectID) (*models.RepairOption, error) {
	var r models.RepairOption
	if err := s.col(database.ColRepairOptions).FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

// rawCategoryFilter is the permissive last-rung match: documents whose stored
// category value, or its denormalized slug/name, literally equals the input.
func rawCategoryFilter(raw string) bson.M {
	return bson.M{"$or": []bson.M{
		{"category": raw},
		{"category.slug": raw},
		{"category.name": raw},
	}}
}

var (
	displayOrder   = bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}
	brandNameOrder = bson.D{{Key: "brand", Value: 1}, {Key: "name", Value: 1}}
)

func findAll[T any](ctx context.Context, col *mongo.Collection, filter bson.M, sort bson.D) ([]T, error) {
	cursor, err := col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- admin mutations ----

func (s *Mongo) InsertCategory(ctx context.Context, cat *models.Category) (primitive.ObjectID, error) {
	cat.CreatedAt = time.Now().UTC()
	cat.UpdatedAt = cat.CreatedAt
	return s.insert(ctx, database.ColCategories, cat)
}

func (s *Mongo) InsertSeries(ctx context.Context, ser *models.Series) (primitive.ObjectID, error) {
	ser.CreatedAt = time.Now().UTC()
	ser.UpdatedAt = ser.CreatedAt
	return s.insert(ctx, database.ColSeries, ser)
}

func (s *Mongo) InsertModel(ctx context.Context, m *models.DeviceModel) (primitive.ObjectID, error) {
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	return s.insert(ctx, database.ColDeviceModels, m)
}

func (s *Mongo) InsertRepair(ctx context.Context, r *models.RepairOption) (primitive.ObjectID, error) {
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	return s.insert(ctx, database.ColRepairOptions, r)
}

func (s *Mongo) insert(ctx context.Context, col string, doc interface{}) (primitive.ObjectID, error) {
	res, err := s.col(col).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// UpdateModel applies a $set patch to one device model.
func (s *Mongo) UpdateModel(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	return s.updateByID(ctx, database.ColDeviceModels, id, set)
}

// UpdateRepair applies a $set patch to one repair option.
func (s *Mongo) UpdateRepair(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	return s.updateByID(ctx, database.ColRepairOptions, id, set)
}

func (s *Mongo) updateByID(ctx context.Context, col string, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()
	res, err := s.col(col).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Mongo) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByID(ctx, database.ColCategories, id)
}

func (s *Mongo) DeleteSeries(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByID(ctx, database.ColSeries, id)
}

func (s *Mongo) DeleteModel(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByID(ctx, database.ColDeviceModels, id)
}

func (s *Mongo) DeleteRepair(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByID(ctx, database.ColRepairOptions, id)
}

func (s *Mongo) deleteByID(ctx context.Context, col string, id primitive.ObjectID) error {
	res, err := s.col(col).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// ---- service request log ----

// InsertServiceRequest appends one request snapshot. Requests are immutable;
// there is deliberately no update or delete counterpart.
func (s *Mongo) InsertServiceRequest(ctx context.Context, req *models.ServiceRequest) (primitive.ObjectID, error) {
	req.CreatedAt = time.Now().UTC()
	return s.insert(ctx, database.ColServiceRequests, req)
}

// ServiceRequests lists recent submissions, newest first, for admin review.
func (s *Mongo) ServiceRequests(ctx context.Context, limit int64) ([]models.ServiceRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.col(database.ColServiceRequests).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.ServiceRequest{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
