package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const statusCacheTTL = 10 * time.Second

// FulfillmentService orchestrates order placement and status transitions. All
// order, stock, and discount writes for one operation happen in a single
// store transaction; the state either moves completely or not at all.
type FulfillmentService struct {
	store       repository.Store
	publisher   rabbit.PublisherInterface
	logger      *zap.Logger
	redisClient *redis.Client
	now         func() time.Time
}

func NewFulfillmentService(store repository.Store, pub rabbit.PublisherInterface, logger *zap.Logger) *FulfillmentService {
	return &FulfillmentService{
		store:     store,
		publisher: pub,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *FulfillmentService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

type OrderItemInput struct {
	ProductID   uint64
	ProductName string
	SizeName    string
	Quantity    int
	Price       float64
}

type CreateOrderInput struct {
	FullName     string
	DateOfBirth  *time.Time
	PhoneNumber  string
	Email        string
	Country      string
	City         string
	District     string
	Ward         string
	Address      string
	OrderNote    string
	Items        []OrderItemInput
	TotalAmount  float64
	GrandTotal   float64
	DiscountCode string
}

func (in *CreateOrderInput) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"fullName", in.FullName},
		{"phoneNumber", in.PhoneNumber},
		{"email", in.Email},
		{"country", in.Country},
		{"city", in.City},
		{"district", in.District},
		{"ward", in.Ward},
		{"address", in.Address},
	}
	for _, f := range required {
		if f.value == "" {
			return domain.Validationf(f.field + " is required")
		}
	}
	if len(in.Items) == 0 {
		return domain.Validationf("order must contain at least one item")
	}
	if in.TotalAmount < 0 || in.GrandTotal < 0 {
		return domain.Validationf("totalAmount and grandTotal must be non-negative")
	}
	for _, it := range in.Items {
		if it.ProductID == 0 || it.ProductName == "" || it.SizeName == "" {
			return domain.Validationf("every item needs productId, productName and sizeName")
		}
		if it.Quantity <= 0 {
			return domain.Validationf("item quantity must be positive")
		}
		if it.Price < 0 {
			return domain.Validationf("item price must be non-negative")
		}
	}
	return nil
}

// CreateOrder places an order in the pending state. Every line item is
// availability-checked against live stock and an optional discount code is
// redeemed, all inside one transaction: if any item or the discount fails,
// nothing is persisted. Placement does not decrement stock; reservation
// happens when the order is dispatched (see SetStatus), so unconfirmed orders
// never hold inventory hostage.
func (s *FulfillmentService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SizeName:    it.SizeName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	order := &domain.Order{
		Number:      uuid.New().String(),
		FullName:    in.FullName,
		DateOfBirth: in.DateOfBirth,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Country:     in.Country,
		City:        in.City,
		District:    in.District,
		Ward:        in.Ward,
		Address:     in.Address,
		OrderNote:   in.OrderNote,
		Items:       items,
		TotalAmount: in.TotalAmount,
		GrandTotal:  in.GrandTotal,
		Status:      domain.StatusPending,
	}

	err := s.store.Transact(ctx, func(tx repository.Store) error {
		for _, it := range in.Items {
			stock, err := tx.Inventory().VariantStock(ctx, it.ProductID, it.SizeName)
			if err != nil {
				return err
			}
			if stock < it.Quantity {
				return fmt.Errorf("%w: %q of product %d", domain.ErrInsufficientStock, it.SizeName, it.ProductID)
			}
		}

		var applied *domain.Discount
		if in.DiscountCode != "" {
			d, err := tx.Discounts().FindByCodeForUpdate(ctx, in.DiscountCode)
			if err != nil {
				return err
			}
			if err := d.Usable(s.now()); err != nil {
				return err
			}
			expected := d.GrandTotal(in.TotalAmount)
			if math.Abs(expected-in.GrandTotal) > domain.GrandTotalTolerance {
				return domain.ErrDiscountMismatch
			}
			order.GrandTotal = expected
			order.DiscountCode = d.Code
			applied = d
		}

		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		if applied != nil {
			return tx.Discounts().Redeem(ctx, applied.ID, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.publishOrderCreated(context.Background(), order)
	s.invalidateStatusCache(ctx, domain.StatusPending)

	return order, nil
}

// SetStatus moves an order to a new fulfillment state and applies the stock
// adjustment the (current, new) pair calls for to every line item, atomically
// with the status write. One short item aborts the whole transition: the
// status and all counters stay at their pre-transition values.
func (s *FulfillmentService) SetStatus(ctx context.Context, orderID uint64, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	var updated *domain.Order
	var previous domain.OrderStatus
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		// The row lock serializes concurrent transitions on the same order;
		// without it two of them would compute their stock delta from the same
		// stale status and both apply it.
		o, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		previous = o.Status

		switch domain.StockEffect(o.Status, status) {
		case domain.StockDecrement:
			for _, it := range o.Items {
				if err := tx.Inventory().Decrement(ctx, it.ProductID, it.SizeName, it.Quantity); err != nil {
					return err
				}
			}
		case domain.StockIncrement:
			for _, it := range o.Items {
				if err := tx.Inventory().Increment(ctx, it.ProductID, it.SizeName, it.Quantity); err != nil {
					return err
				}
			}
		}

		if err := tx.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}
		o.Status = status
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.publishStatusChanged(context.Background(), updated, previous)
	s.invalidateStatusCache(ctx, previous, status)

	return updated, nil
}

func (s *FulfillmentService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	return s.store.Orders().FindByID(ctx, id)
}

func (s *FulfillmentService) GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	return s.store.Orders().FindByNumber(ctx, number)
}

func (s *FulfillmentService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.store.Orders().List(ctx)
}

// ListOrdersByStatus serves listings from redis when possible; the cache is
// short-lived and dropped on every mutation touching the status.
func (s *FulfillmentService) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	cacheKey := statusCacheKey(status, limit)
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var orders []domain.Order
			if err := json.Unmarshal([]byte(cached), &orders); err == nil {
				return orders, nil
			}
		}
	}

	orders, err := s.store.Orders().ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(orders); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, statusCacheTTL)
		}
	}
	return orders, nil
}

// UpdateOrder applies an administrative edit to contact fields. Items, totals
// and status are out of reach here; those only move through placement and
// status transitions.
func (s *FulfillmentService) UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var updated *domain.Order
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		if err := tx.Orders().Update(ctx, order); err != nil {
			return err
		}
		o, err := tx.Orders().FindByID(ctx, order.ID)
		if err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *FulfillmentService) SoftDeleteOrder(ctx context.Context, id uint64) error {
	if err := s.store.Orders().SetDeleted(ctx, id, true); err != nil {
		return err
	}
	s.invalidateAllStatusCaches(ctx)
	return nil
}

func (s *FulfillmentService) RestoreOrder(ctx context.Context, id uint64) error {
	if err := s.store.Orders().SetDeleted(ctx, id, false); err != nil {
		return err
	}
	s.invalidateAllStatusCaches(ctx)
	return nil
}

// WarmupStatusCache primes the listing cache for the given statuses
// concurrently; used at startup so the first admin dashboard load is warm.
func (s *FulfillmentService) WarmupStatusCache(ctx context.Context, statuses []domain.OrderStatus) error {
	if s.redisClient == nil {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, st := range statuses {
		st := st
		g.Go(func() error {
			_, err := s.ListOrdersByStatus(ctx, st, 0)
			return err
		})
	}
	return g.Wait()
}

func (s *FulfillmentService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderCreatedEvent{
		OrderID:      order.ID,
		Number:       order.Number,
		TotalAmount:  order.TotalAmount,
		GrandTotal:   order.GrandTotal,
		DiscountCode: order.DiscountCode,
		CreatedAt:    order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		s.logger.Warn("publish order.created failed",
			zap.Uint64("orderId", order.ID), zap.Error(err))
	}
}

func (s *FulfillmentService) publishStatusChanged(ctx context.Context, order *domain.Order, from domain.OrderStatus) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderStatusChangedEvent{
		OrderID:   order.ID,
		Number:    order.Number,
		From:      from,
		To:        order.Status,
		ChangedAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, "order.status_changed", evt); err != nil {
		s.logger.Warn("publish order.status_changed failed",
			zap.Uint64("orderId", order.ID), zap.Error(err))
	}
}

func statusCacheKey(status domain.OrderStatus, limit int) string {
	return fmt.Sprintf("orders:status:%s:%d", status, limit)
}

func (s *FulfillmentService) invalidateStatusCache(ctx context.Context, statuses ...domain.OrderStatus) {
	if s.redisClient == nil {
		return
	}
	for _, st := range statuses {
		iter := s.redisClient.Scan(ctx, 0, fmt.Sprintf("orders:status:%s:*", st), 0).Iterator()
		for iter.Next(ctx) {
			s.redisClient.Del(ctx, iter.Val())
		}
	}
}

func (s *FulfillmentService) invalidateAllStatusCaches(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	iter := s.redisClient.Scan(ctx, 0, "orders:status:*", 0).Iterator()
	for iter.Next(ctx) {
		s.redisClient.Del(ctx, iter.Val())
	}
}
