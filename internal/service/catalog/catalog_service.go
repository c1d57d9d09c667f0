package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
	"github.com/Real-Lux/Farm-App-sub001/internal/engine"
	"github.com/Real-Lux/Farm-App-sub001/internal/repository/mongodb"
)

// Service answers availability queries: which lots offer a race, and which
// lots best fit a race/age/quantity/delivery request. It loads fresh
// snapshots from the store on every query; the engine itself holds no state.
type Service struct {
	repo   mongodb.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new catalog service instance.
func NewService(repository mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger, now: time.Now}
}

// SuggestionQuery is the inbound shape of a lot suggestion request.
type SuggestionQuery struct {
	Race         string         `json:"race" binding:"required"`
	SpeciesKey   string         `json:"species_key"`
	DesiredAge   models.AgeSpec `json:"desired_age"`
	Quantity     int            `json:"quantity" binding:"required,gt=0"`
	DeliveryDate *time.Time     `json:"delivery_date"`
	Sex          string         `json:"sex"`
}

// SuggestLots ranks the lots offering the requested race by closeness to the
// desired age at the delivery date. An empty slice is a normal "nothing
// matches" answer.
func (s *Service) SuggestLots(ctx context.Context, query SuggestionQuery) ([]engine.Suggestion, error) {
	sex, err := models.ParseSex(query.Sex)
	if err != nil {
		return nil, err
	}

	ranker, err := s.loadRanker(ctx, query.SpeciesKey)
	if err != nil {
		return nil, err
	}

	suggestions := ranker.Suggest(engine.SuggestionRequest{
		Race:          query.Race,
		DesiredAge:    query.DesiredAge,
		Quantity:      query.Quantity,
		DeliveryDate:  query.DeliveryDate,
		SexPreference: sex,
	}, s.now().UTC())

	s.logger.Debug("ranked lot suggestions",
		zap.String("race", query.Race),
		zap.Int("candidates", len(suggestions)))
	return suggestions, nil
}

// ListAvailableLots returns active lots, optionally narrowed to a species
// and/or a race with remaining stock.
func (s *Service) ListAvailableLots(ctx context.Context, speciesKey, race string) ([]models.Lot, error) {
	lots, err := s.repo.ListLots(ctx, speciesKey)
	if err != nil {
		return nil, fmt.Errorf("load lots: %w", err)
	}

	index := engine.NewAvailabilityIndex(lots)
	if race != "" {
		return index.LotsOffering(race), nil
	}

	active := make([]models.Lot, 0, len(lots))
	for _, lot := range lots {
		if lot.Active {
			active = append(active, lot)
		}
	}
	return active, nil
}

// loadRanker assembles a ranker over the current lot and pricing snapshots.
func (s *Service) loadRanker(ctx context.Context, speciesKey string) (*engine.Ranker, error) {
	lots, err := s.repo.ListLots(ctx, speciesKey)
	if err != nil {
		return nil, fmt.Errorf("load lots: %w", err)
	}
	tables, err := s.repo.ListPricingTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing tables: %w", err)
	}

	return engine.NewRanker(engine.NewAvailabilityIndex(lots), tables), nil
}
