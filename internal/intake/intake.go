// Package intake accepts quote submissions: it validates the contact, prices
// the request at submission time, and appends an immutable ServiceRequest
// snapshot.
package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramservice/repair-quote-api/internal/catalog"
	"github.com/ramservice/repair-quote-api/internal/models"
)

// ErrValidation marks a rejected submission: a client-input problem, never
// retried, nothing persisted.
var ErrValidation = errors.New("intake: validation failed")

// RequestStore is the append-only persistence surface for submissions.
type RequestStore interface {
	InsertServiceRequest(ctx context.Context, req *models.ServiceRequest) (primitive.ObjectID, error)
}

// Submission is the payload of POST /api/submit. Contact is free-form except
// for the email, which is required. Field names follow the original wire
// shape (repair_code, modelId).
type Submission struct {
	Contact    map[string]interface{} `json:"contact" binding:"required"`
	Category   string                 `json:"category"`
	SeriesID   string                 `json:"seriesId"`
	ModelID    string                 `json:"modelId"`
	RepairCode string                 `json:"repair_code" binding:"required"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// Receipt is what the submitter gets back.
type Receipt struct {
	ID    primitive.ObjectID `json:"id"`
	Price models.Price       `json:"price"`
}

// Service wires the resolver to the request log.
type Service struct {
	resolver *catalog.Resolver
	store    RequestStore
	validate *validator.Validate
}

func NewService(resolver *catalog.Resolver, store RequestStore) *Service {
	return &Service{
		resolver: resolver,
		store:    store,
		validate: validator.New(),
	}
}

// Submit prices and records one quote request.
//
// An unknown repair code or model id does not reject the submission: the shop
// still wants the lead, so the price degrades to CALL_FOR_PRICE / base price
// and the snapshot is stored as sent. Only a missing or malformed contact
// email rejects, and only store failures propagate.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	email, _ := sub.Contact["email"].(string)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: contact.email is missing or invalid", ErrValidation)
	}
	if sub.RepairCode == "" {
		return nil, fmt.Errorf("%w: repair_code is required", ErrValidation)
	}

	price := models.CallForPrice()
	repair, err := s.resolver.ResolveRepairByCodeOrID(ctx, sub.RepairCode)
	switch {
	case err == nil:
		var model *models.DeviceModel
		if sub.ModelID != "" {
			model, err = s.resolver.GetModel(ctx, sub.ModelID)
			if err != nil && !errors.Is(err, catalog.ErrNotFound) {
				return nil, err
			}
		}
		price = catalog.EffectivePrice(*repair, model)
	case errors.Is(err, catalog.ErrNotFound):
		// Unknown repair: quote manually.
	default:
		return nil, err
	}

	req := &models.ServiceRequest{
		Contact:       sub.Contact,
		Category:      sub.Category,
		SeriesID:      sub.SeriesID,
		ModelID:       sub.ModelID,
		RepairCode:    sub.RepairCode,
		PriceAtSubmit: price,
		Metadata:      sub.Metadata,
	}
	id, err := s.store.InsertServiceRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Receipt{ID: id, Price: price}, nil
}
