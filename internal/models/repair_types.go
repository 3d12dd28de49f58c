package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RepairOption is a catalog-wide repair service type. Code is the stable
// cross-reference key used by price overrides; the database id is a secondary
// key some old override records use instead.
type RepairOption struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Code        string             `json:"code" bson:"code"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	BasePrice   *int64             `json:"basePrice,omitempty" bson:"basePrice,omitempty"` // minor units, nil = call for price
	Images      []string           `json:"images,omitempty" bson:"images,omitempty"`
	Visible     bool               `json:"visible" bson:"visible"`
	Order       int                `json:"order" bson:"order"`
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CreateRepairInput defines the JSON for POST /admin/repair.
type CreateRepairInput struct {
	Name        string   `json:"name" binding:"required"`
	Code        string   `json:"code" binding:"required"`
	Description string   `json:"description"`
	BasePrice   *int64   `json:"basePrice"`
	Images      []string `json:"images"`
	Visible     *bool    `json:"visible"` // default true
	Order       int      `json:"order"`
}
