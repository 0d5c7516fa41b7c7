package shop

import (
	"context"
	"errors"

	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/progress"
)

var (
	ErrCosmeticNotFound = errors.New("cosmetic not found")
	ErrAlreadyOwned     = progress.ErrAlreadyOwned
	ErrAlreadyPremium   = progress.ErrAlreadyPremium
)

// Ledger is the slice of the progress service the shop needs.
type Ledger interface {
	PurchaseCosmetic(ctx context.Context, id, price int) error
	ActivatePremium(ctx context.Context, cosmeticIDs []int) error
	Snapshot() progress.Progress
}

type Service interface {
	Catalog(ctx context.Context) []Cosmetic
	Purchase(ctx context.Context, cosmeticID int) error
	ActivatePremium(ctx context.Context) error
}

type service struct {
	ledger Ledger
}

func NewService(ledger Ledger) Service {
	return &service{ledger: ledger}
}

func (s *service) Catalog(ctx context.Context) []Cosmetic {
	return Catalog()
}

// Purchase debits the cosmetic price and records ownership. Premium users
// and free-tier freebies are already owned.
func (s *service) Purchase(ctx context.Context, cosmeticID int) error {
	item := findCosmetic(cosmeticID)
	if item == nil {
		return ErrCosmeticNotFound
	}

	if s.ledger.Snapshot().IsPremium || isFreeCosmetic(cosmeticID) {
		return ErrAlreadyOwned
	}

	if err := s.ledger.PurchaseCosmetic(ctx, item.ID, item.Price); err != nil {
		return err
	}

	config.WithContext(ctx).WithField("cosmetic", item.Name).Info("Cosmetic purchased")
	return nil
}

func (s *service) ActivatePremium(ctx context.Context) error {
	return s.ledger.ActivatePremium(ctx, AllCosmeticIDs())
}
