package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
	"github.com/Real-Lux/Farm-App-sub001/internal/engine"
	"github.com/Real-Lux/Farm-App-sub001/internal/repository/mongodb"
	"github.com/Real-Lux/Farm-App-sub001/internal/repository/sheets"
	"github.com/Real-Lux/Farm-App-sub001/pkg/clients/notify"
)

// ErrInvalidQuantity indicates a non-positive requested quantity.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// ErrDuplicateSelection indicates a (race, sex) pair already present in the
// order being built.
var ErrDuplicateSelection = errors.New("race and sex combination already selected")

// ErrUnknownLot indicates an explicitly chosen lot that does not exist in the
// current snapshot.
var ErrUnknownLot = errors.New("unknown lot")

// ErrEmptyOrder indicates an order with no selection or product lines.
var ErrEmptyOrder = errors.New("order must contain at least one line")

// Service builds, prices and persists orders. The ledger and notifier are
// optional side channels: a nil value disables them and persistence never
// depends on their success.
type Service struct {
	repo     mongodb.Repository
	ledger   sheets.Ledger
	notifier notify.Client
	logger   *zap.Logger
	now      func() time.Time
}

// NewService constructs an order service.
func NewService(repository mongodb.Repository, ledger sheets.Ledger, notifier notify.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repository,
		ledger:   ledger,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// SelectionInput is one requested race/sex line as received from the API.
// LotID pins a specific lot; when empty the ranker auto-selects the closest
// one, and when nothing offers the race the line stays unbound and is
// reported in UnmatchedRaces.
type SelectionInput struct {
	SpeciesKey string         `json:"species_key" binding:"required"`
	Race       string         `json:"race" binding:"required"`
	Sex        string         `json:"sex"`
	Quantity   int            `json:"quantity"`
	DesiredAge models.AgeSpec `json:"desired_age"`
	LotID      string         `json:"lot_id"`
}

// ProductInput is one flat-rate catalog line as received from the API.
type ProductInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// QuoteRequest carries everything needed to price an order.
type QuoteRequest struct {
	Client       string           `json:"client"`
	DeliveryDate *time.Time       `json:"delivery_date"`
	Selections   []SelectionInput `json:"selections"`
	Products     []ProductInput   `json:"products"`
}

// assembled is the validated, lot-bound form of a request, ready for the
// engine.
type assembled struct {
	selections     []models.SelectionLine
	products       []models.ProductLine
	breakdown      models.OrderPriceBreakdown
	collectionDate *time.Time
	unmatchedRaces []string
}

// Quote prices a request without persisting anything.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (QuoteResponse, error) {
	result, err := s.assemble(ctx, req)
	if err != nil {
		return QuoteResponse{}, err
	}
	return quoteResponse(result), nil
}

// PlaceOrder prices the request, persists the resulting order record, and
// best-effort exports and notifies. Ledger or webhook failures are logged
// and never fail an already persisted order.
func (s *Service) PlaceOrder(ctx context.Context, req QuoteRequest) (OrderResponse, error) {
	result, err := s.assemble(ctx, req)
	if err != nil {
		return OrderResponse{}, err
	}

	record := models.OrderRecord{
		ID:                      uuid.NewString(),
		Client:                  req.Client,
		Selections:              result.selections,
		Products:                result.products,
		Breakdown:               result.breakdown,
		DeliveryDate:            req.DeliveryDate,
		SuggestedCollectionDate: result.collectionDate,
		CreatedAt:               s.now().UTC(),
	}

	if err := s.repo.SaveOrder(ctx, record); err != nil {
		return OrderResponse{}, fmt.Errorf("save order: %w", err)
	}

	s.logger.Info("order placed",
		zap.String("order_id", record.ID),
		zap.String("client", record.Client),
		zap.String("grand_total", record.Breakdown.GrandTotal.String()),
		zap.Int("lines", len(record.Breakdown.Lines)),
		zap.Strings("missing_pricing", record.Breakdown.MissingPricingSpecies))

	s.export(ctx, record)
	s.confirm(ctx, record)

	return orderResponse(record, result), nil
}

// assemble validates the request, binds lots, and runs the pricing engine.
func (s *Service) assemble(ctx context.Context, req QuoteRequest) (assembled, error) {
	if len(req.Selections) == 0 && len(req.Products) == 0 {
		return assembled{}, ErrEmptyOrder
	}

	lots, err := s.repo.ListLots(ctx, "")
	if err != nil {
		return assembled{}, fmt.Errorf("load lots: %w", err)
	}
	tables, err := s.repo.ListPricingTables(ctx)
	if err != nil {
		return assembled{}, fmt.Errorf("load pricing tables: %w", err)
	}

	index := engine.NewAvailabilityIndex(lots)
	ranker := engine.NewRanker(index, tables)
	now := s.now().UTC()

	var result assembled
	seen := make(map[string]struct{}, len(req.Selections))

	for _, input := range req.Selections {
		if input.Quantity <= 0 {
			return assembled{}, fmt.Errorf("race %s: %w", input.Race, ErrInvalidQuantity)
		}
		sex, err := models.ParseSex(input.Sex)
		if err != nil {
			return assembled{}, err
		}

		key := input.Race + "|" + string(sex)
		if _, dup := seen[key]; dup {
			return assembled{}, fmt.Errorf("race %s sex %s: %w", input.Race, sex, ErrDuplicateSelection)
		}
		seen[key] = struct{}{}

		line := models.SelectionLine{
			SpeciesKey:    input.SpeciesKey,
			Race:          input.Race,
			SexPreference: sex,
			Quantity:      input.Quantity,
			DesiredAge:    input.DesiredAge,
		}

		if input.LotID != "" {
			lot, ok := index.Lot(input.LotID)
			if !ok {
				return assembled{}, fmt.Errorf("lot %s: %w", input.LotID, ErrUnknownLot)
			}
			line.BoundLot = &lot
		} else {
			suggestion, ok := ranker.AutoSelect(engine.SuggestionRequest{
				Race:          input.Race,
				DesiredAge:    input.DesiredAge,
				Quantity:      input.Quantity,
				DeliveryDate:  req.DeliveryDate,
				SexPreference: sex,
			}, now)
			if ok {
				lot := suggestion.Lot
				line.BoundLot = &lot
			} else {
				// No active lot offers this race; keep the line unbound and
				// surface it so the caller can react.
				result.unmatchedRaces = append(result.unmatchedRaces, input.Race)
			}
		}

		result.selections = append(result.selections, line)
	}

	for _, input := range req.Products {
		if input.Quantity <= 0 {
			return assembled{}, fmt.Errorf("product %s: %w", input.ProductID, ErrInvalidQuantity)
		}
		product, err := s.repo.GetProduct(ctx, input.ProductID)
		if err != nil {
			return assembled{}, err
		}
		result.products = append(result.products, models.ProductLine{
			Product:  product,
			Quantity: input.Quantity,
		})
	}

	aggregator := engine.NewAggregator(tables)
	result.breakdown = aggregator.Price(engine.QuoteInput{
		Selections:   result.selections,
		Products:     result.products,
		DeliveryDate: req.DeliveryDate,
	})

	if suggested, ok := engine.SuggestCollectionDate(result.selections); ok {
		result.collectionDate = &suggested
	}

	return result, nil
}

// export appends the order to the spreadsheet ledger when one is configured.
func (s *Service) export(ctx context.Context, record models.OrderRecord) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.AppendOrder(ctx, record); err != nil {
		s.logger.Warn("order ledger export failed", zap.String("order_id", record.ID), zap.Error(err))
	}
}

// confirm posts the confirmation webhook when a notifier is configured.
func (s *Service) confirm(ctx context.Context, record models.OrderRecord) {
	if s.notifier == nil {
		return
	}

	event := notify.OrderConfirmation{
		OrderID:               record.ID,
		Client:                record.Client,
		GrandTotal:            record.Breakdown.GrandTotal.String(),
		MissingPricingSpecies: record.Breakdown.MissingPricingSpecies,
	}
	if record.SuggestedCollectionDate != nil {
		event.CollectionDate = record.SuggestedCollectionDate.Format("2006-01-02")
	}

	if err := s.notifier.SendOrderConfirmation(ctx, event); err != nil {
		s.logger.Warn("order confirmation failed", zap.String("order_id", record.ID), zap.Error(err))
	}
}
