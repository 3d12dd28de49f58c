package catalog

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reference is a parsed scope filter value. Clients (and old admin data)
// address a category or series by native id, by slug, or by display name;
// this union makes the resolution ladder explicit instead of sniffing
// strings at every call site.
type Reference struct {
	id   primitive.ObjectID
	raw  string
	byID bool
}

// ParseReference classifies a raw filter string. A 24-char hex string is a
// native id; anything else is a slug-or-name lookup key.
func ParseReference(s string) Reference {
	if id, err := primitive.ObjectIDFromHex(s); err == nil {
		return Reference{id: id, raw: s, byID: true}
	}
	return Reference{raw: s}
}

// IsZero reports whether no filter was supplied at all.
func (r Reference) IsZero() bool { return r.raw == "" }

// ByID reports whether the reference is a native store id.
func (r Reference) ByID() bool { return r.byID }

// ID returns the parsed id. Only meaningful when ByID().
func (r Reference) ID() primitive.ObjectID { return r.id }

// Raw returns the original filter string.
func (r Reference) Raw() string { return r.raw }
