package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Series is a named product line within a Category (e.g. "Galaxy S Series").
type Series struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Name      string                 `json:"name" bson:"name"`
	Slug      string                 `json:"slug" bson:"slug"`
	Category  CategoryRef            `json:"category" bson:"category"`
	IconURL   string                 `json:"iconUrl,omitempty" bson:"iconUrl,omitempty"`
	Order     int                    `json:"order" bson:"order"`
	Meta      map[string]interface{} `json:"meta,omitempty" bson:"meta,omitempty"`
	CreatedAt time.Time              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CreateSeriesInput defines the JSON for POST /admin/series.
// Category accepts an id, slug, or name; the handler resolves it to the
// category id before inserting (strict variant: the category must exist).
type CreateSeriesInput struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug"`
	Category string `json:"category" binding:"required"`
	IconURL  string `json:"iconUrl"`
	Order    int    `json:"order"`
}
