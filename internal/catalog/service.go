package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/models"
	"tailoringStorefront/repository"
)

// Service reads designs and prices customized garments.
type Service struct {
	designs repository.DesignRepositoryI
	log     *zap.Logger
}

func NewService(designs repository.DesignRepositoryI, log *zap.Logger) *Service {
	return &Service{designs: designs, log: log}
}

func (s *Service) Designs(ctx context.Context) ([]models.Design, error) {
	ds, err := s.designs.List(ctx)
	if err != nil {
		s.log.Error("list designs", zap.Error(err))
		return nil, apperr.Remote("list designs", err)
	}
	return ds, nil
}

func (s *Service) Design(ctx context.Context, id string) (*models.Design, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.Validation("design id is required")
	}
	d, err := s.designs.GetByID(ctx, id)
	if err != nil {
		s.log.Error("get design", zap.String("design_id", id), zap.Error(err))
		return nil, apperr.Remote("get design", err)
	}
	if d == nil {
		return nil, apperr.NotFound("design not found")
	}
	return d, nil
}

// PriceDesign resolves a design and prices it with the given customization selections.
// The returned base includes the surcharges.
func (s *Service) PriceDesign(ctx context.Context, id string, selections map[string]string) (*models.Design, decimal.Decimal, error) {
	d, err := s.Design(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if len(selections) == 0 {
		return d, d.BasePrice, nil
	}
	extra, err := Quote(d.Category, selections)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return d, d.BasePrice.Add(extra), nil
}
