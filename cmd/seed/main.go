// Seeds a demo catalog: two categories, their series and models, the shared
// repair options, and the Galaxy S10 price overrides. Run once against an
// empty database:
//
//	go run ./cmd/seed
//
// CAREFUL: it wipes the existing catalog collections first (not the
// service-request log).
package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramservice/repair-quote-api/internal/config"
	"github.com/ramservice/repair-quote-api/internal/database"
	"github.com/ramservice/repair-quote-api/internal/models"
	"github.com/ramservice/repair-quote-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, col := range []string{
		database.ColCategories, database.ColSeries,
		database.ColDeviceModels, database.ColRepairOptions,
	} {
		if _, err := db.Collection(col).DeleteMany(ctx, bson.M{}); err != nil {
			logrus.Fatalf("Failed to clear %s: %v", col, err)
		}
	}

	s := store.NewMongo(db)

	repairs := []models.RepairOption{
		{Name: "Rear cover", Code: "rear_cover", BasePrice: cents(15000), Visible: true, Order: 1},
		{Name: "Display", Code: "display", BasePrice: cents(25000), Visible: true, Order: 2},
		{Name: "Battery", Code: "battery", BasePrice: cents(12000), Visible: true, Order: 3},
		{Name: "Water damage", Code: "water", Visible: true, Order: 4}, // no base price: call for price
	}
	for i := range repairs {
		if _, err := s.InsertRepair(ctx, &repairs[i]); err != nil {
			logrus.Fatalf("Failed to insert repair %s: %v", repairs[i].Code, err)
		}
	}
	logrus.Infof("Created %d repair options", len(repairs))

	phones := seedCategory(ctx, s, "Phones", "phones", 1)
	galaxyS := seedSeries(ctx, s, "Galaxy S Series", "galaxy-s", phones)
	iphone := seedSeries(ctx, s, "iPhone Series", "iphone", phones)

	seedModel(ctx, s, models.DeviceModel{
		Name: "Galaxy S10", Brand: "Samsung", Slug: "galaxy-s10",
		Series: galaxyS, Category: models.CategoryRefOf(phones),
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionCode: "display", Price: cents(22000)},
			{RepairOptionCode: "battery", Price: cents(10000)},
		},
	})
	seedModel(ctx, s, models.DeviceModel{
		Name: "Galaxy S20", Brand: "Samsung", Slug: "galaxy-s20",
		Series: galaxyS, Category: models.CategoryRefOf(phones),
	})
	seedModel(ctx, s, models.DeviceModel{
		Name: "iPhone 11", Brand: "Apple", Slug: "iphone-11",
		Series: iphone, Category: models.CategoryRefOf(phones),
	})

	tablets := seedCategory(ctx, s, "Tablet Computers", "tablet", 2)
	galaxyTab := seedSeries(ctx, s, "Galaxy Tab", "galaxy-tab", tablets)
	seedSeries(ctx, s, "iPad", "ipad", tablets)

	seedModel(ctx, s, models.DeviceModel{
		Name: "Galaxy Tab S6", Brand: "Samsung", Slug: "galaxy-tab-s6",
		Series: galaxyTab, Category: models.CategoryRefOf(tablets),
	})

	logrus.Info("Seed complete")
}

func cents(v int64) *int64 { return &v }

func seedCategory(ctx context.Context, s *store.Mongo, name, slug string, order int) primitive.ObjectID {
	id, err := s.InsertCategory(ctx, &models.Category{Name: name, Slug: slug, Order: order})
	if err != nil {
		logrus.Fatalf("Failed to insert category %s: %v", slug, err)
	}
	return id
}

func seedSeries(ctx context.Context, s *store.Mongo, name, slug string, category primitive.ObjectID) primitive.ObjectID {
	id, err := s.InsertSeries(ctx, &models.Series{
		Name: name, Slug: slug, Category: models.CategoryRefOf(category),
	})
	if err != nil {
		logrus.Fatalf("Failed to insert series %s: %v", slug, err)
	}
	return id
}

func seedModel(ctx context.Context, s *store.Mongo, m models.DeviceModel) {
	if _, err := s.InsertModel(ctx, &m); err != nil {
		logrus.Fatalf("Failed to insert model %s: %v", m.Slug, err)
	}
}
