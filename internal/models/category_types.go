package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the top-level device grouping (e.g. "Phones").
type Category struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	IconURL   string             `json:"iconUrl,omitempty" bson:"iconUrl,omitempty"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Order     int                `json:"order" bson:"order"`
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CreateCategoryInput defines the JSON for POST /admin/category.
// Slug is optional; the handler derives it from the name when absent.
type CreateCategoryInput struct {
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug"`
	IconURL string `json:"iconUrl"`
	Order   int    `json:"order"`
}

// CategoryRef is a category reference as found in older series/model
// documents. Admin tooling rewrote these over the years, so the stored value
// can be an ObjectId, a bare slug/name string, or a denormalized sub-document.
// Decoding is tolerant on purpose: a malformed reference must surface as
// "no match", never as a decode error.
type CategoryRef struct {
	ID   primitive.ObjectID `json:"-" bson:"-"`
	Slug string             `json:"-" bson:"-"`
	Name string             `json:"-" bson:"-"`
	Raw  string             `json:"-" bson:"-"`
}

// CategoryRefOf builds a reference to a concrete category id (the shape all
// new documents are written with).
func CategoryRefOf(id primitive.ObjectID) CategoryRef {
	return CategoryRef{ID: id}
}

// IsZero reports whether no reference is stored at all.
func (r CategoryRef) IsZero() bool {
	return r.ID.IsZero() && r.Slug == "" && r.Name == "" && r.Raw == ""
}

// MatchesID reports whether the reference resolves to the given category id.
func (r CategoryRef) MatchesID(id primitive.ObjectID) bool {
	return !r.ID.IsZero() && r.ID == id
}

// MatchesRaw reports whether the stored value literally equals the given
// string, in any of its historical encodings.
func (r CategoryRef) MatchesRaw(s string) bool {
	if s == "" {
		return false
	}
	return r.Raw == s || r.Slug == s || r.Name == s || (!r.ID.IsZero() && r.ID.Hex() == s)
}

func (r CategoryRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !r.ID.IsZero() {
		return bson.MarshalValue(r.ID)
	}
	if r.Raw != "" {
		return bson.MarshalValue(r.Raw)
	}
	return bson.TypeNull, nil, nil
}

func (r *CategoryRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeObjectID:
		r.ID = raw.ObjectID()
	case bson.TypeString:
		s := raw.StringValue()
		r.Raw = s
		if id, err := primitive.ObjectIDFromHex(s); err == nil {
			r.ID = id
		}
	case bson.TypeEmbeddedDocument:
		var sub struct {
			ID   primitive.ObjectID `bson:"_id,omitempty"`
			Slug string             `bson:"slug,omitempty"`
			Name string             `bson:"name,omitempty"`
		}
		// A sub-document we can't decode is treated as no reference.
		if err := bson.Unmarshal(raw.Document(), &sub); err == nil {
			r.ID = sub.ID
			r.Slug = sub.Slug
			r.Name = sub.Name
		}
	}
	return nil
}

// MarshalJSON renders the reference the way the original API did: the id hex
// when known, otherwise the raw stored string.
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if !r.ID.IsZero() {
		return json.Marshal(r.ID.Hex())
	}
	if r.Raw != "" {
		return json.Marshal(r.Raw)
	}
	if r.Slug != "" {
		return json.Marshal(r.Slug)
	}
	return []byte("null"), nil
}
