package models

import (
	"encoding/json"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// CallForPriceSentinel is the wire value sent when no price can be quoted
// automatically. The storefront widget renders it as "call us".
const CallForPriceSentinel = "CALL_FOR_PRICE"

// Price is an integer amount in minor currency units (cents), or the
// CALL_FOR_PRICE sentinel when unset. A quoted zero is a real price
// (promotions), NOT the sentinel, so we can't just use 0 as "no price".
type Price struct {
	cents  int64
	quoted bool
}

// PriceOf returns a quoted price of the given amount in minor units.
func PriceOf(cents int64) Price {
	return Price{cents: cents, quoted: true}
}

// CallForPrice returns the "no automatic quote" sentinel price.
func CallForPrice() Price {
	return Price{}
}

// Quoted reports whether p carries a real amount (false = CALL_FOR_PRICE).
func (p Price) Quoted() bool { return p.quoted }

// Cents returns the amount in minor units. Only meaningful when Quoted().
func (p Price) Cents() int64 { return p.cents }

func (p Price) String() string {
	if !p.quoted {
		return CallForPriceSentinel
	}
	return fmt.Sprintf("%d", p.cents)
}

// MarshalJSON writes a bare number, or the sentinel string.
// This matches the shape the widget already consumes: 22000 or "CALL_FOR_PRICE".
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.quoted {
		return json.Marshal(CallForPriceSentinel)
	}
	return json.Marshal(p.cents)
}

// UnmarshalJSON accepts a number, the sentinel string, or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*p = CallForPrice()
	case string:
		// Any string means "not quoted"; we only ever write the sentinel.
		*p = CallForPrice()
	case float64:
		*p = PriceOf(int64(math.Round(val)))
	default:
		return fmt.Errorf("price: cannot unmarshal %T", v)
	}
	return nil
}

// MarshalBSONValue persists the same number-or-sentinel shape the store has
// always held, so old and new documents decode alike.
func (p Price) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !p.quoted {
		return bson.MarshalValue(CallForPriceSentinel)
	}
	return bson.MarshalValue(p.cents)
}

// UnmarshalBSONValue reads int32/int64/double as a quoted amount and anything
// else (string sentinel, null, missing) as CALL_FOR_PRICE.
func (p *Price) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeInt32:
		*p = PriceOf(int64(raw.Int32()))
	case bson.TypeInt64:
		*p = PriceOf(raw.Int64())
	case bson.TypeDouble:
		*p = PriceOf(int64(math.Round(raw.Double())))
	default:
		*p = CallForPrice()
	}
	return nil
}
