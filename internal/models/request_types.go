package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRequest is an immutable snapshot of a customer's quote request,
// including the price that was in effect at submission time. Requests are
// append-only: nothing in the system ever updates or deletes one.
type ServiceRequest struct {
	ID            primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Contact       map[string]interface{} `json:"contact" bson:"contact"`
	Category      string                 `json:"category,omitempty" bson:"category,omitempty"`
	SeriesID      string                 `json:"seriesId,omitempty" bson:"seriesId,omitempty"`
	ModelID       string                 `json:"modelId,omitempty" bson:"modelId,omitempty"`
	RepairCode    string                 `json:"repair_code" bson:"repair_code"`
	PriceAtSubmit Price                  `json:"priceAtSubmit" bson:"priceAtSubmit"`
	Metadata      map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"createdAt" bson:"createdAt"`
}
