package catalog

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramservice/repair-quote-api/internal/models"
)

// OverrideKey is the identity an override record uses to name its repair
// option: either the repair's database id or its stable code. When a record
// carries both (old data), the id wins; a record with neither has no key.
type OverrideKey struct {
	repairID   primitive.ObjectID
	repairCode string
}

// KeyByRepairID builds a key matching on the repair's database id.
func KeyByRepairID(id primitive.ObjectID) OverrideKey {
	return OverrideKey{repairID: id}
}

// KeyByRepairCode builds a key matching on the repair's stable code.
func KeyByRepairCode(code string) OverrideKey {
	return OverrideKey{repairCode: code}
}

// OverrideKeyFor extracts the key of an override record. ok is false when the
// record names no repair at all (such records never match anything).
func OverrideKeyFor(po models.PriceOverride) (OverrideKey, bool) {
	if !po.RepairOptionID.IsZero() {
		return KeyByRepairID(po.RepairOptionID), true
	}
	if po.RepairOptionCode != "" {
		return KeyByRepairCode(po.RepairOptionCode), true
	}
	return OverrideKey{}, false
}

// Matches reports whether the key identifies the given repair option.
func (k OverrideKey) Matches(r models.RepairOption) bool {
	if !k.repairID.IsZero() {
		return k.repairID == r.ID
	}
	return k.repairCode != "" && k.repairCode == r.Code
}

// EffectivePrice computes the price actually quoted for a (repair, model)
// pair:
//
//  1. the first override entry in the model's list whose key matches the
//     repair, if it carries a price;
//  2. else the repair's base price;
//  3. else CALL_FOR_PRICE.
//
// The override list is scanned in stored order and only the first matching
// entry applies: when separate entries reference the same repair by id and
// by code, whichever comes first wins, even if a later entry looks more
// specific. That ordering quirk is load-bearing for existing catalog data.
//
// The function is pure: identical inputs always yield identical output.
func EffectivePrice(repair models.RepairOption, model *models.DeviceModel) models.Price {
	if model != nil {
		for _, po := range model.PriceOverrides {
			key, ok := OverrideKeyFor(po)
			if !ok || !key.Matches(repair) {
				continue
			}
			if po.Price != nil && *po.Price >= 0 {
				return models.PriceOf(*po.Price)
			}
			// Matched entry with no price: fall through to the base price.
			break
		}
	}
	if repair.BasePrice != nil && *repair.BasePrice >= 0 {
		return models.PriceOf(*repair.BasePrice)
	}
	return models.CallForPrice()
}

// RepairQuote is a repair option augmented with its effective price for a
// particular model (or the base price when no model is in scope).
type RepairQuote struct {
	models.RepairOption
	PriceEffective models.Price `json:"priceEffective"`
}

// EffectivePricesForModel applies EffectivePrice to every candidate repair,
// preserving input order. When the model enumerates its supported repairs,
// the candidate list is narrowed to that allow-list first.
func EffectivePricesForModel(repairs []models.RepairOption, model *models.DeviceModel) []RepairQuote {
	quotes := make([]RepairQuote, 0, len(repairs))
	for _, r := range repairs {
		if model != nil && len(model.SupportedRepairs) > 0 && !containsCode(model.SupportedRepairs, r.Code) {
			continue
		}
		quotes = append(quotes, RepairQuote{
			RepairOption:   r,
			PriceEffective: EffectivePrice(r, model),
		})
	}
	return quotes
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
