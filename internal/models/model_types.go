package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceOverride is a per-model price exception for one repair option.
// It is embedded in a DeviceModel and has no lifecycle of its own.
// Exactly one of RepairOptionID / RepairOptionCode should be set; old data
// sometimes carries both or neither, which the resolver tolerates.
type PriceOverride struct {
	RepairOptionID   primitive.ObjectID `json:"repairOptionId,omitempty" bson:"repairOptionId,omitempty"`
	RepairOptionCode string             `json:"repairOptionCode,omitempty" bson:"repairOptionCode,omitempty"`
	Price            *int64             `json:"price,omitempty" bson:"price,omitempty"` // minor units, nil = unset
}

// PriceOverrideList is the canonical array-of-records shape. Its decoder
// absorbs the shapes that accumulated across schema revisions:
//
//   - array of {repairOptionId | repairOptionCode, price} (canonical)
//   - array entries with legacy field names (id / code / price)
//   - a document keyed by repair code: {"display": 22000, ...}
//
// Entries with no usable key or a negative price are dropped, so the
// matching algorithm only ever sees one well-formed shape.
type PriceOverrideList []PriceOverride

func (l PriceOverrideList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]PriceOverride(l))
}

func (l *PriceOverrideList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*l = nil
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeArray:
		elems, err := raw.Array().Values()
		if err != nil {
			return nil // unreadable list: treat as no overrides
		}
		for _, el := range elems {
			if el.Type != bson.TypeEmbeddedDocument {
				continue
			}
			if po, ok := decodeOverrideEntry(el.Document()); ok {
				*l = append(*l, po)
			}
		}
	case bson.TypeEmbeddedDocument:
		// Keyed-map shape: field name is the repair code.
		elems, err := raw.Document().Elements()
		if err != nil {
			return nil
		}
		for _, el := range elems {
			price, ok := numericValue(el.Value())
			if !ok || price < 0 {
				continue
			}
			p := price
			*l = append(*l, PriceOverride{RepairOptionCode: el.Key(), Price: &p})
		}
	}
	return nil
}

// decodeOverrideEntry reads one override record, accepting the legacy field
// names alongside the canonical ones.
func decodeOverrideEntry(doc bson.Raw) (PriceOverride, bool) {
	var po PriceOverride

	for _, key := range []string{"repairOptionId", "repair_option_id", "id"} {
		if v, err := doc.LookupErr(key); err == nil {
			switch v.Type {
			case bson.TypeObjectID:
				po.RepairOptionID = v.ObjectID()
			case bson.TypeString:
				if id, err := primitive.ObjectIDFromHex(v.StringValue()); err == nil {
					po.RepairOptionID = id
				}
			}
			break
		}
	}
	for _, key := range []string{"repairOptionCode", "repair_option_code", "code"} {
		if v, err := doc.LookupErr(key); err == nil && v.Type == bson.TypeString {
			po.RepairOptionCode = v.StringValue()
			break
		}
	}
	if v, err := doc.LookupErr("price"); err == nil {
		if n, ok := numericValue(v); ok && n >= 0 {
			po.Price = &n
		}
	}

	if po.RepairOptionID.IsZero() && po.RepairOptionCode == "" {
		return PriceOverride{}, false
	}
	return po, true
}

func numericValue(v bson.RawValue) (int64, bool) {
	switch v.Type {
	case bson.TypeInt32:
		return int64(v.Int32()), true
	case bson.TypeInt64:
		return v.Int64(), true
	case bson.TypeDouble:
		return int64(math.Round(v.Double())), true
	}
	return 0, false
}

// DeviceModel is a specific sellable device within a Series.
type DeviceModel struct {
	ID               primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Name             string                 `json:"name" bson:"name"`
	Brand            string                 `json:"brand,omitempty" bson:"brand,omitempty"`
	Slug             string                 `json:"slug" bson:"slug"`
	SKU              string                 `json:"sku,omitempty" bson:"sku,omitempty"`
	Series           primitive.ObjectID     `json:"series,omitempty" bson:"series,omitempty"`
	Category         CategoryRef            `json:"category,omitempty" bson:"category,omitempty"` // denormalized for faster lookup
	ImageURL         string                 `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	PriceOverrides   PriceOverrideList      `json:"priceOverrides" bson:"priceOverrides,omitempty"`
	SupportedRepairs []string               `json:"supportedRepairs,omitempty" bson:"supportedRepairs,omitempty"` // repair codes; empty = all
	Metafields       map[string]interface{} `json:"metafields,omitempty" bson:"metafields,omitempty"`
	Order            int                    `json:"order" bson:"order"`
	CreatedAt        time.Time              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt        time.Time              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CreateModelInput defines the JSON for POST /admin/model.
type CreateModelInput struct {
	Name             string                 `json:"name" binding:"required"`
	Brand            string                 `json:"brand"`
	Slug             string                 `json:"slug"`
	SKU              string                 `json:"sku"`
	Series           string                 `json:"series"` // series id (or slug)
	Category         string                 `json:"category"`
	ImageURL         string                 `json:"imageUrl"`
	PriceOverrides   []PriceOverride        `json:"priceOverrides"`
	SupportedRepairs []string               `json:"supportedRepairs"`
	Metafields       map[string]interface{} `json:"metafields"`
	Order            int                    `json:"order"`
}
