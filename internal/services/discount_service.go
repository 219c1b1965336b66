package services

import (
	"context"
	"math"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
)

// DiscountService owns discount code administration and redemption. Preview
// is a pure read; Apply re-runs every check inside a transaction and makes
// the usage increment, the redemption record and the order update indivisible.
type DiscountService struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewDiscountService(store repository.Store, logger *zap.Logger) *DiscountService {
	return &DiscountService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

type DiscountQuote struct {
	Code               string  `json:"code"`
	DiscountPercentage float64 `json:"discountPercentage"`
	TotalAmount        float64 `json:"totalAmount"`
	GrandTotal         float64 `json:"grandTotal"`
}

type DiscountInput struct {
	Code               string
	DiscountPercentage float64
	ExpirationDate     time.Time
	UsageLimit         int
	IsActive           *bool
}

func (in *DiscountInput) validate() error {
	if in.Code == "" {
		return domain.Validationf("code is required")
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		return domain.Validationf("discountPercentage must be between 0 and 100")
	}
	if in.ExpirationDate.IsZero() {
		return domain.Validationf("expirationDate is required")
	}
	if in.UsageLimit < 1 {
		return domain.Validationf("usageLimit must be at least 1")
	}
	return nil
}

// Preview validates a code against current state and quotes the discounted
// total without consuming a use. State may change before a later Apply, which
// re-validates everything.
func (s *DiscountService) Preview(ctx context.Context, code string, totalAmount float64) (*DiscountQuote, error) {
	if code == "" {
		return nil, domain.Validationf("code is required")
	}
	if totalAmount < 0 {
		return nil, domain.Validationf("totalAmount must be non-negative")
	}

	d, err := s.store.Discounts().FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := d.Usable(s.now()); err != nil {
		return nil, err
	}
	return &DiscountQuote{
		Code:               d.Code,
		DiscountPercentage: d.DiscountPercentage,
		TotalAmount:        totalAmount,
		GrandTotal:         d.GrandTotal(totalAmount),
	}, nil
}

// Apply redeems a code for an existing order. The discount row is locked for
// the duration of the transaction, the recomputed grand total must agree with
// the one stored on the order within tolerance, and the usage increment,
// redemption record and order update commit or abort as one unit.
func (s *DiscountService) Apply(ctx context.Context, code string, orderID uint64, totalAmount float64) (*DiscountQuote, error) {
	if code == "" {
		return nil, domain.Validationf("code is required")
	}
	if totalAmount < 0 {
		return nil, domain.Validationf("totalAmount must be non-negative")
	}

	var quote *DiscountQuote
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		d, err := tx.Discounts().FindByCodeForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if err := d.Usable(s.now()); err != nil {
			return err
		}

		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		expected := d.GrandTotal(totalAmount)
		if math.Abs(o.GrandTotal-expected) > domain.GrandTotalTolerance {
			return domain.ErrDiscountMismatch
		}

		if err := tx.Discounts().Redeem(ctx, d.ID, o.ID); err != nil {
			return err
		}
		if err := tx.Orders().ApplyDiscountCode(ctx, o.ID, d.Code, expected); err != nil {
			return err
		}

		quote = &DiscountQuote{
			Code:               d.Code,
			DiscountPercentage: d.DiscountPercentage,
			TotalAmount:        totalAmount,
			GrandTotal:         expected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("discount applied",
		zap.String("code", code), zap.Uint64("orderId", orderID))
	return quote, nil
}

func (s *DiscountService) Create(ctx context.Context, in DiscountInput) (*domain.Discount, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	d := &domain.Discount{
		Code:               in.Code,
		DiscountPercentage: in.DiscountPercentage,
		IsActive:           true,
		ExpirationDate:     in.ExpirationDate,
		UsageLimit:         in.UsageLimit,
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if err := s.store.Discounts().Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Update edits the code's definition; the usage counter and redemption set
// are only ever touched by redemption.
func (s *DiscountService) Update(ctx context.Context, id uint64, in DiscountInput) (*domain.Discount, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var updated *domain.Discount
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		d, err := tx.Discounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		d.Code = in.Code
		d.DiscountPercentage = in.DiscountPercentage
		d.ExpirationDate = in.ExpirationDate
		d.UsageLimit = in.UsageLimit
		if in.IsActive != nil {
			d.IsActive = *in.IsActive
		}
		if err := tx.Discounts().Update(ctx, d); err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DiscountService) Delete(ctx context.Context, id uint64) error {
	return s.store.Discounts().Delete(ctx, id)
}

func (s *DiscountService) Get(ctx context.Context, id uint64) (*domain.Discount, error) {
	return s.store.Discounts().FindByID(ctx, id)
}

func (s *DiscountService) List(ctx context.Context) ([]domain.Discount, error) {
	return s.store.Discounts().List(ctx)
}
