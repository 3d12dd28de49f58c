package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramservice/repair-quote-api/internal/models"
)

// fakeStore is an in-memory Store for resolver tests. Filtering mirrors the
// documented collection semantics; fixtures are kept pre-sorted so list order
// is simply input order.
type fakeStore struct {
	categories []models.Category
	series     []models.Series
	devices    []models.DeviceModel
	repairs    []models.RepairOption
	err        error // when set, every call fails
}

func (f *fakeStore) Categories(ctx context.Context) ([]models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeStore) CategoryBySlugOrName(ctx context.Context, key string) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.categories {
		if f.categories[i].Slug == key || f.categories[i].Name == key {
			return &f.categories[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) SeriesList(ctx context.Context, filter SeriesFilter) ([]models.Series, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Series{}
	for _, s := range f.series {
		switch {
		case filter.CategoryID != nil:
			if s.Category.MatchesID(*filter.CategoryID) || s.Category.MatchesRaw(filter.CategoryID.Hex()) {
				out = append(out, s)
			}
		case filter.RawCategory != "":
			if s.Category.MatchesRaw(filter.RawCategory) {
				out = append(out, s)
			}
		default:
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) SeriesBySlugOrName(ctx context.Context, key string) (*models.Series, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.series {
		if f.series[i].Slug == key || f.series[i].Name == key {
			return &f.series[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Models(ctx context.Context, filter ModelFilter) ([]models.DeviceModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.DeviceModel{}
	for _, m := range f.devices {
		if filter.CategoryID != nil && !m.Category.MatchesID(*filter.CategoryID) {
			continue
		}
		if filter.RawCategory != "" && !m.Category.MatchesRaw(filter.RawCategory) {
			continue
		}
		if filter.SeriesID != nil && m.Series != *filter.SeriesID {
			continue
		}
		if filter.RawSeries != "" {
			continue // stored series refs are always native ids
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeStore) ModelByID(ctx context.Context, id primitive.ObjectID) (*models.DeviceModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.devices {
		if f.devices[i].ID == id {
			return &f.devices[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Repairs(ctx context.Context, visibleOnly bool) ([]models.RepairOption, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.RepairOption{}
	for _, r := range f.repairs {
		if visibleOnly && !r.Visible {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) RepairByCode(ctx context.Context, code string) (*models.RepairOption, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.repairs {
		if f.repairs[i].Code == code {
			return &f.repairs[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) RepairByID(ctx context.Context, id primitive.ObjectID) (*models.RepairOption, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.repairs {
		if f.repairs[i].ID == id {
			return &f.repairs[i], nil
		}
	}
	return nil, ErrNotFound
}

var _ Store = (*fakeStore)(nil)

type fixture struct {
	store *fakeStore

	phones, tablets   models.Category
	galaxyS, iphone   models.Series
	legacySeries      models.Series
	galaxyS10, iPhone models.DeviceModel
}

// newFixture builds the demo catalog: phones (Galaxy S / iPhone series, one
// model each plus a legacy series with a string category ref) and an empty
// tablets category. The display repair is overridden to 22000 on the S10.
func newFixture() *fixture {
	fx := &fixture{}

	fx.phones = models.Category{ID: primitive.NewObjectID(), Name: "Phones", Slug: "phones", Order: 1}
	fx.tablets = models.Category{ID: primitive.NewObjectID(), Name: "Tablet Computers", Slug: "tablet", Order: 2}

	fx.galaxyS = models.Series{
		ID: primitive.NewObjectID(), Name: "Galaxy S Series", Slug: "galaxy-s",
		Category: models.CategoryRefOf(fx.phones.ID),
	}
	fx.iphone = models.Series{
		ID: primitive.NewObjectID(), Name: "iPhone Series", Slug: "iphone",
		Category: models.CategoryRefOf(fx.phones.ID),
	}
	fx.legacySeries = models.Series{
		ID: primitive.NewObjectID(), Name: "Feature Phones", Slug: "feature-phones",
		Category: models.CategoryRef{Raw: "old-phones"},
	}

	fx.galaxyS10 = models.DeviceModel{
		ID: primitive.NewObjectID(), Name: "Galaxy S10", Brand: "Samsung", Slug: "galaxy-s10",
		Series: fx.galaxyS.ID, Category: models.CategoryRefOf(fx.phones.ID),
		PriceOverrides: models.PriceOverrideList{
			{RepairOptionCode: "display", Price: cents(22000)},
		},
	}
	fx.iPhone = models.DeviceModel{
		ID: primitive.NewObjectID(), Name: "iPhone 11", Brand: "Apple", Slug: "iphone-11",
		Series: fx.iphone.ID, Category: models.CategoryRefOf(fx.phones.ID),
	}

	fx.store = &fakeStore{
		categories: []models.Category{fx.phones, fx.tablets},
		series:     []models.Series{fx.galaxyS, fx.iphone, fx.legacySeries},
		devices:    []models.DeviceModel{fx.iPhone, fx.galaxyS10}, // brand order: Apple first
		repairs: []models.RepairOption{
			{ID: primitive.NewObjectID(), Name: "Display", Code: "display", BasePrice: cents(25000), Visible: true},
			{ID: primitive.NewObjectID(), Name: "Battery", Code: "battery", BasePrice: cents(12000), Visible: true},
			{ID: primitive.NewObjectID(), Name: "Water damage", Code: "water", Visible: true},
			{ID: primitive.NewObjectID(), Name: "Retired", Code: "retired", BasePrice: cents(100), Visible: false},
		},
	}
	return fx
}

func TestListCategories(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	cats, err := r.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "phones", cats[0].Slug)
}

func TestListSeries_NoFilterReturnsAll(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	series, err := r.ListSeries(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, series, 3)
}

func TestListSeries_ByCategoryID(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	series, err := r.ListSeries(context.Background(), fx.phones.ID.Hex())
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "galaxy-s", series[0].Slug)
}

func TestListSeries_ByCategorySlugAndName(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	bySlug, err := r.ListSeries(context.Background(), "phones")
	require.NoError(t, err)
	assert.Len(t, bySlug, 2)

	byName, err := r.ListSeries(context.Background(), "Phones")
	require.NoError(t, err)
	assert.Len(t, byName, 2)
}

func TestListSeries_RawLiteralFallback(t *testing.T) {
	// "old-phones" is no category's slug or name, but one legacy series stores
	// it literally as its category value. The ladder's last rung finds it.
	fx := newFixture()
	r := NewResolver(fx.store)

	series, err := r.ListSeries(context.Background(), "old-phones")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "feature-phones", series[0].Slug)
}

func TestListSeries_UnknownReferenceIsEmptyNotError(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	series, err := r.ListSeries(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, series)

	series, err = r.ListSeries(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestListSeries_StoreErrorPropagates(t *testing.T) {
	down := errors.New("connection reset")
	r := NewResolver(&fakeStore{err: down})

	_, err := r.ListSeries(context.Background(), "phones")
	assert.ErrorIs(t, err, down)
}

func TestListModels_ByCategoryAndSeries(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	all, err := r.ListModels(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCategory, err := r.ListModels(context.Background(), "phones", "")
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	bySeriesSlug, err := r.ListModels(context.Background(), "", "galaxy-s")
	require.NoError(t, err)
	require.Len(t, bySeriesSlug, 1)
	assert.Equal(t, "galaxy-s10", bySeriesSlug[0].Slug)

	both, err := r.ListModels(context.Background(), fx.phones.ID.Hex(), fx.iphone.ID.Hex())
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "iphone-11", both[0].Slug)
}

func TestListModelsForSeries(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	got, err := r.ListModelsForSeries(context.Background(), fx.galaxyS.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "galaxy-s10", got[0].Slug)

	// Malformed id: empty result, no error, the widget shows "no models".
	got, err = r.ListModelsForSeries(context.Background(), "not-an-id")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetModel(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	m, err := r.GetModel(context.Background(), fx.galaxyS10.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "galaxy-s10", m.Slug)

	_, err = r.GetModel(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.GetModel(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveRepairByCodeOrID(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	byCode, err := r.ResolveRepairByCodeOrID(context.Background(), "battery")
	require.NoError(t, err)
	assert.Equal(t, "battery", byCode.Code)

	byID, err := r.ResolveRepairByCodeOrID(context.Background(), fx.store.repairs[0].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "display", byID.Code)

	_, err = r.ResolveRepairByCodeOrID(context.Background(), "no-such-repair")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuotesForModel_AppliesOverrides(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	quotes, err := r.QuotesForModel(context.Background(), fx.galaxyS10.ID.Hex())
	require.NoError(t, err)
	require.Len(t, quotes, 3, "the invisible repair is excluded")

	assert.Equal(t, int64(22000), quotes[0].PriceEffective.Cents())
	assert.Equal(t, int64(12000), quotes[1].PriceEffective.Cents())
	assert.False(t, quotes[2].PriceEffective.Quoted())
}

func TestQuotesForModel_UnknownModelDegradesToBasePrices(t *testing.T) {
	fx := newFixture()
	r := NewResolver(fx.store)

	for _, modelID := range []string{"", "not-a-real-id", primitive.NewObjectID().Hex()} {
		quotes, err := r.QuotesForModel(context.Background(), modelID)
		require.NoError(t, err)
		require.Len(t, quotes, 3)
		assert.Equal(t, int64(25000), quotes[0].PriceEffective.Cents())
	}
}

func TestParseReference(t *testing.T) {
	id := primitive.NewObjectID()

	ref := ParseReference(id.Hex())
	assert.True(t, ref.ByID())
	assert.Equal(t, id, ref.ID())

	ref = ParseReference("galaxy-s")
	assert.False(t, ref.ByID())
	assert.Equal(t, "galaxy-s", ref.Raw())

	assert.True(t, ParseReference("").IsZero())
	assert.False(t, ParseReference("x").IsZero())
}
