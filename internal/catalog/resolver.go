package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramservice/repair-quote-api/internal/models"
)

// ErrNotFound signals a missing entity. It is never fatal: list operations
// absorb it into empty results and the intake layer substitutes the
// CALL_FOR_PRICE sentinel. Any other store error means the store itself is
// unreachable and propagates untouched.
var ErrNotFound = errors.New("catalog: not found")

// SeriesFilter narrows a series scan. At most one of the fields is set.
type SeriesFilter struct {
	CategoryID *primitive.ObjectID
	// RawCategory requests the permissive fallback: series whose stored
	// category value (or its denormalized slug/name) literally equals the
	// string. Used for data written before references were normalized.
	RawCategory string
}

// ModelFilter narrows a model scan; category and series axes are independent
// and intersect when both are set.
type ModelFilter struct {
	CategoryID  *primitive.ObjectID
	RawCategory string
	SeriesID    *primitive.ObjectID
	RawSeries   string
}

// Store is the document-read surface the resolver needs. List methods return
// entities in their collection's documented order ("order" ascending with
// insertion-order ties for categories/series, brand then name for models,
// "order" ascending for repairs). Single lookups return ErrNotFound on a
// miss.
type Store interface {
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryBySlugOrName(ctx context.Context, key string) (*models.Category, error)
	SeriesList(ctx context.Context, f SeriesFilter) ([]models.Series, error)
	SeriesBySlugOrName(ctx context.Context, key string) (*models.Series, error)
	Models(ctx context.Context, f ModelFilter) ([]models.DeviceModel, error)
	ModelByID(ctx context.Context, id primitive.ObjectID) (*models.DeviceModel, error)
	Repairs(ctx context.Context, visibleOnly bool) ([]models.RepairOption, error)
	RepairByCode(ctx context.Context, code string) (*models.RepairOption, error)
	RepairByID(ctx context.Context, id primitive.ObjectID) (*models.RepairOption, error)
}

// Resolver answers catalog lookups and price questions on top of a Store.
// It is stateless; every method is a function of current store contents and
// its parameters.
type Resolver struct {
	store Store
}

func NewResolver(s Store) *Resolver {
	return &Resolver{store: s}
}

// ListCategories returns all categories in display order.
func (r *Resolver) ListCategories(ctx context.Context) ([]models.Category, error) {
	return r.store.Categories(ctx)
}

// ListSeries returns the series in scope of categoryRef (empty ref = all).
// The reference is resolved in three steps: native id, then category
// slug-or-name lookup, then a permissive literal match against the series'
// own stored category value. A reference matching nothing yields an empty
// list, never an error: admin data migrates slowly and the widget must
// render "no results" rather than break.
func (r *Resolver) ListSeries(ctx context.Context, categoryRef string) ([]models.Series, error) {
	ref := ParseReference(categoryRef)
	if ref.IsZero() {
		return r.store.SeriesList(ctx, SeriesFilter{})
	}

	filter, err := r.categoryScope(ctx, ref)
	if err != nil {
		return nil, err
	}
	return r.store.SeriesList(ctx, filter)
}

// categoryScope runs the (a)-(b)-(c) resolution ladder for a category
// reference and returns the series filter it lands on.
func (r *Resolver) categoryScope(ctx context.Context, ref Reference) (SeriesFilter, error) {
	if ref.ByID() {
		id := ref.ID()
		return SeriesFilter{CategoryID: &id}, nil
	}
	cat, err := r.store.CategoryBySlugOrName(ctx, ref.Raw())
	switch {
	case err == nil:
		return SeriesFilter{CategoryID: &cat.ID}, nil
	case errors.Is(err, ErrNotFound):
		return SeriesFilter{RawCategory: ref.Raw()}, nil
	default:
		return SeriesFilter{}, err
	}
}

// ListModels returns models filtered by category and/or series reference,
// each resolved with the same ladder as ListSeries.
func (r *Resolver) ListModels(ctx context.Context, categoryRef, seriesRef string) ([]models.DeviceModel, error) {
	var filter ModelFilter

	if cref := ParseReference(categoryRef); !cref.IsZero() {
		scope, err := r.categoryScope(ctx, cref)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = scope.CategoryID
		filter.RawCategory = scope.RawCategory
	}

	if sref := ParseReference(seriesRef); !sref.IsZero() {
		if sref.ByID() {
			id := sref.ID()
			filter.SeriesID = &id
		} else {
			ser, err := r.store.SeriesBySlugOrName(ctx, sref.Raw())
			switch {
			case err == nil:
				filter.SeriesID = &ser.ID
			case errors.Is(err, ErrNotFound):
				filter.RawSeries = sref.Raw()
			default:
				return nil, err
			}
		}
	}

	return r.store.Models(ctx, filter)
}

// ListModelsForSeries returns the models of one series, ordered by brand then
// name. A malformed series id yields an empty list.
func (r *Resolver) ListModelsForSeries(ctx context.Context, seriesID string) ([]models.DeviceModel, error) {
	id, err := primitive.ObjectIDFromHex(seriesID)
	if err != nil {
		return []models.DeviceModel{}, nil
	}
	return r.store.Models(ctx, ModelFilter{SeriesID: &id})
}

// GetModel returns one model by id. Malformed ids report ErrNotFound instead
// of an error class of their own.
func (r *Resolver) GetModel(ctx context.Context, modelID string) (*models.DeviceModel, error) {
	id, err := primitive.ObjectIDFromHex(modelID)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.store.ModelByID(ctx, id)
}

// ResolveRepairByCodeOrID finds a repair option by its stable code or its
// database id. Hex-shaped keys are tried as an id first, then as a code (a
// code could in principle look like hex).
func (r *Resolver) ResolveRepairByCodeOrID(ctx context.Context, key string) (*models.RepairOption, error) {
	if id, err := primitive.ObjectIDFromHex(key); err == nil {
		rep, err := r.store.RepairByID(ctx, id)
		if err == nil || !errors.Is(err, ErrNotFound) {
			return rep, err
		}
	}
	return r.store.RepairByCode(ctx, key)
}

// QuotesForModel returns the visible repair options with their effective
// price for the given model. An empty or unresolvable model id degrades to
// base prices: the widget asks for quotes before a model is picked, and a
// stale model id must not take the price list down with it.
func (r *Resolver) QuotesForModel(ctx context.Context, modelID string) ([]RepairQuote, error) {
	repairs, err := r.store.Repairs(ctx, true)
	if err != nil {
		return nil, err
	}

	var model *models.DeviceModel
	if modelID != "" {
		model, err = r.GetModel(ctx, modelID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			model = nil
		}
	}

	return EffectivePricesForModel(repairs, model), nil
}
