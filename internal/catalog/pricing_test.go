package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramservice/repair-quote-api/internal/models"
)

func cents(v int64) *int64 { return &v }

func TestEffectivePrice_NoModelUsesBasePrice(t *testing.T) {
	display := models.RepairOption{Code: "display", BasePrice: cents(25000)}

	price := EffectivePrice(display, nil)
	require.True(t, price.Quoted())
	assert.Equal(t, int64(25000), price.Cents())
}

func TestEffectivePrice_NoBasePriceIsCallForPrice(t *testing.T) {
	water := models.RepairOption{Code: "water"} // basePrice null

	assert.False(t, EffectivePrice(water, nil).Quoted())
	assert.False(t, EffectivePrice(water, &models.DeviceModel{Name: "any"}).Quoted())
}

func TestEffectivePrice_CodeOverrideBeatsBasePrice(t *testing.T) {
	// Scenario: galaxy-s10 has a display override at 22000 below the 25000 base.
	display := models.RepairOption{Code: "display", BasePrice: cents(25000)}
	galaxyS10 := &models.DeviceModel{
		Slug: "galaxy-s10",
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionCode: "display", Price: cents(22000)},
		},
	}

	price := EffectivePrice(display, galaxyS10)
	require.True(t, price.Quoted())
	assert.Equal(t, int64(22000), price.Cents())
}

func TestEffectivePrice_NoMatchingOverrideFallsBack(t *testing.T) {
	battery := models.RepairOption{Code: "battery", BasePrice: cents(12000)}
	galaxyS10 := &models.DeviceModel{
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionCode: "display", Price: cents(22000)},
		},
	}

	price := EffectivePrice(battery, galaxyS10)
	require.True(t, price.Quoted())
	assert.Equal(t, int64(12000), price.Cents())
}

func TestEffectivePrice_IDOverrideMatches(t *testing.T) {
	id := primitive.NewObjectID()
	repair := models.RepairOption{ID: id, Code: "display", BasePrice: cents(25000)}
	model := &models.DeviceModel{
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionID: id, Price: cents(19000)},
		},
	}

	price := EffectivePrice(repair, model)
	require.True(t, price.Quoted())
	assert.Equal(t, int64(19000), price.Cents())
}

func TestEffectivePrice_ZeroIsARealPrice(t *testing.T) {
	repair := models.RepairOption{Code: "diagnosis", BasePrice: cents(0)}

	price := EffectivePrice(repair, nil)
	require.True(t, price.Quoted(), "a zero price is a promotion, not CALL_FOR_PRICE")
	assert.Equal(t, int64(0), price.Cents())
}

func TestEffectivePrice_MatchedEntryWithoutPriceFallsBack(t *testing.T) {
	repair := models.RepairOption{Code: "display", BasePrice: cents(25000)}
	model := &models.DeviceModel{
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionCode: "display"}, // entry exists but carries no price
			{RepairOptionCode: "display", Price: cents(1000)},
		},
	}

	// First match wins even when priceless; the 1000 entry is never reached.
	price := EffectivePrice(repair, model)
	require.True(t, price.Quoted())
	assert.Equal(t, int64(25000), price.Cents())
}

func TestEffectivePrice_FirstMatchWinsAcrossKeyKinds(t *testing.T) {
	// Inherited ambiguity: one entry names the repair by code, a later one by
	// id. Stored order decides; the id entry is not "more specific".
	id := primitive.NewObjectID()
	repair := models.RepairOption{ID: id, Code: "display", BasePrice: cents(25000)}
	model := &models.DeviceModel{
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionCode: "display", Price: cents(20000)},
			{RepairOptionID: id, Price: cents(18000)},
		},
	}

	price := EffectivePrice(repair, model)
	require.True(t, price.Quoted())
	assert.Equal(t, int64(20000), price.Cents())
}

func TestEffectivePrice_EntryWithBothKeysUsesID(t *testing.T) {
	// A record carrying both keys matches on the id; the stale code is ignored.
	otherID := primitive.NewObjectID()
	repair := models.RepairOption{ID: primitive.NewObjectID(), Code: "display", BasePrice: cents(25000)}
	model := &models.DeviceModel{
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionID: otherID, RepairOptionCode: "display", Price: cents(11111)},
		},
	}

	price := EffectivePrice(repair, model)
	require.True(t, price.Quoted())
	assert.Equal(t, int64(25000), price.Cents(), "id mismatch must not fall back to the code")
}

func TestEffectivePrice_Idempotent(t *testing.T) {
	repair := models.RepairOption{Code: "display", BasePrice: cents(25000)}
	model := &models.DeviceModel{
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionCode: "display", Price: cents(22000)},
		},
	}

	first := EffectivePrice(repair, model)
	second := EffectivePrice(repair, model)
	assert.Equal(t, first, second)
}

func TestOverrideKeyFor_NoKey(t *testing.T) {
	_, ok := OverrideKeyFor(models.PriceOverride{Price: cents(5000)})
	assert.False(t, ok, "an override naming no repair never matches")
}

func TestEffectivePricesForModel_PreservesOrder(t *testing.T) {
	repairs := []models.RepairOption{
		{Code: "rear_cover", BasePrice: cents(15000)},
		{Code: "display", BasePrice: cents(25000)},
		{Code: "battery", BasePrice: cents(12000)},
		{Code: "water"},
	}
	model := &models.DeviceModel{
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionCode: "display", Price: cents(22000)},
		},
	}

	quotes := EffectivePricesForModel(repairs, model)
	require.Len(t, quotes, 4)
	assert.Equal(t, "rear_cover", quotes[0].Code)
	assert.Equal(t, int64(22000), quotes[1].PriceEffective.Cents())
	assert.Equal(t, int64(12000), quotes[2].PriceEffective.Cents())
	assert.False(t, quotes[3].PriceEffective.Quoted())
}

func TestEffectivePricesForModel_SupportedRepairsNarrows(t *testing.T) {
	repairs := []models.RepairOption{
		{Code: "display", BasePrice: cents(25000)},
		{Code: "battery", BasePrice: cents(12000)},
		{Code: "water"},
	}
	model := &models.DeviceModel{SupportedRepairs: []string{"battery", "water"}}

	quotes := EffectivePricesForModel(repairs, model)
	require.Len(t, quotes, 2)
	assert.Equal(t, "battery", quotes[0].Code)
	assert.Equal(t, "water", quotes[1].Code)
}
