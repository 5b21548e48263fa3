//go:generate mockgen -source=service.go -destination=../mocks/exchange_mock/service.go -package=exchange_mock

package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"go-currency-converter/domain"
	"go-currency-converter/rates"
)

var (
	ErrInvalidRequest  = errors.New("invalid conversion request")
	ErrUnknownCurrency = errors.New("unknown currency")
)

// Service interface for converting from one currency to another
type Service interface {
	Convert(ctx context.Context, req domain.Request) (domain.Exchanged, error)
}

// service converts with a static rate table
type service struct {
	// table rates to convert with. Shared read-only.
	table *rates.Table

	validate *validator.Validate
}

// NewService constructs a valid Service
func NewService(table *rates.Table) Service {
	return &service{
		table:    table,
		validate: validator.New(),
	}
}

// Convert computes a conversion from one currency to another with the table's rates.
func (s *service) Convert(ctx context.Context, req domain.Request) (domain.Exchanged, error) {
	if err := ctx.Err(); err != nil {
		return domain.Exchanged{}, err
	}

	if err := s.validate.Struct(req); err != nil {
		return domain.Exchanged{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !s.table.Contains(req.From) {
		return domain.Exchanged{}, fmt.Errorf("'from' currency %v: %w", req.From, ErrUnknownCurrency)
	}
	if !s.table.Contains(req.To) {
		return domain.Exchanged{}, fmt.Errorf("'to' currency %v: %w", req.To, ErrUnknownCurrency)
	}

	result := domain.Exchanged{
		Rate:   rates.CrossRate(s.table, req.From, req.To),
		Amount: rates.Convert(s.table, req.Amount, req.From, req.To),
	}

	return result, nil
}
