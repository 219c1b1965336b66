package services

import (
	"context"
	"fmt"
	"sync"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
)

// memStore is a serializable in-memory repository.Store used by the scenario
// tests. Transact holds one mutex for the whole unit of work and restores a
// snapshot on error, which gives the same observable guarantees the MySQL
// store provides: committed-state isolation between units of work and
// all-or-nothing rollback.
type memStore struct {
	mu   *sync.Mutex
	st   *memState
	inTx bool
}

type memState struct {
	products    map[uint64]bool
	variants    map[string]int
	orders      map[uint64]*domain.Order
	discounts   map[uint64]*domain.Discount
	redemptions map[string]bool
	nextOrderID uint64
	nextDiscID  uint64
}

func variantKey(productID uint64, sizeName string) string {
	return fmt.Sprintf("%d|%s", productID, sizeName)
}

func redemptionKey(discountID, orderID uint64) string {
	return fmt.Sprintf("%d|%d", discountID, orderID)
}

func newMemStore() *memStore {
	return &memStore{
		mu: &sync.Mutex{},
		st: &memState{
			products:    make(map[uint64]bool),
			variants:    make(map[string]int),
			orders:      make(map[uint64]*domain.Order),
			discounts:   make(map[uint64]*domain.Discount),
			redemptions: make(map[string]bool),
		},
	}
}

func (s *memStore) addVariant(productID uint64, sizeName string, stock int) {
	s.st.products[productID] = true
	s.st.variants[variantKey(productID, sizeName)] = stock
}

func (s *memStore) addDiscount(d domain.Discount) *domain.Discount {
	s.st.nextDiscID++
	d.ID = s.st.nextDiscID
	s.st.discounts[d.ID] = &d
	return &d
}

func (s *memStore) stockOf(productID uint64, sizeName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.variants[variantKey(productID, sizeName)]
}

func (s *memStore) discountByCode(code string) *domain.Discount {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.st.discounts {
		if d.Code == code {
			cp := *d
			return &cp
		}
	}
	return nil
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.orders)
}

func (st *memState) clone() *memState {
	cp := &memState{
		products:    make(map[uint64]bool, len(st.products)),
		variants:    make(map[string]int, len(st.variants)),
		orders:      make(map[uint64]*domain.Order, len(st.orders)),
		discounts:   make(map[uint64]*domain.Discount, len(st.discounts)),
		redemptions: make(map[string]bool, len(st.redemptions)),
		nextOrderID: st.nextOrderID,
		nextDiscID:  st.nextDiscID,
	}
	for k, v := range st.products {
		cp.products[k] = v
	}
	for k, v := range st.variants {
		cp.variants[k] = v
	}
	for k, v := range st.orders {
		cp.orders[k] = copyOrder(v)
	}
	for k, v := range st.discounts {
		d := *v
		cp.discounts[k] = &d
	}
	for k, v := range st.redemptions {
		cp.redemptions[k] = v
	}
	return cp
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp
}

func (s *memStore) Orders() repository.OrderRepository        { return &memOrderRepo{s} }
func (s *memStore) Inventory() repository.InventoryRepository { return &memInventoryRepo{s} }
func (s *memStore) Discounts() repository.DiscountRepository  { return &memDiscountRepo{s} }

func (s *memStore) Transact(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.st.clone()
	tx := &memStore{mu: s.mu, st: s.st, inTx: true}
	if err := fn(tx); err != nil {
		*s.st = *snap
		return err
	}
	return nil
}

// lock is a no-op inside a transaction, where Transact already holds the
// mutex.
func (s *memStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	defer r.s.lock()()
	r.s.st.nextOrderID++
	order.ID = r.s.st.nextOrderID
	r.s.st.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *memOrderRepo) find(id uint64) (*domain.Order, error) {
	o, ok := r.s.st.orders[id]
	if !ok || o.IsDeleted {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (r *memOrderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	defer r.s.lock()()
	o, err := r.find(id)
	if err != nil {
		return nil, err
	}
	return copyOrder(o), nil
}

// Transact already serializes whole units of work, so the locking read needs
// no extra machinery here.
func (r *memOrderRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *memOrderRepo) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	defer r.s.lock()()
	for _, o := range r.s.st.orders {
		if o.Number == number && !o.IsDeleted {
			return copyOrder(o), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *memOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	defer r.s.lock()()
	var out []domain.Order
	for _, o := range r.s.st.orders {
		if !o.IsDeleted {
			out = append(out, *copyOrder(o))
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	defer r.s.lock()()
	var out []domain.Order
	for _, o := range r.s.st.orders {
		if !o.IsDeleted && o.Status == status {
			out = append(out, *copyOrder(o))
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	defer r.s.lock()()
	o, err := r.find(id)
	if err != nil {
		return err
	}
	o.Status = status
	return nil
}

func (r *memOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	defer r.s.lock()()
	o, err := r.find(order.ID)
	if err != nil {
		return err
	}
	o.FullName = order.FullName
	o.PhoneNumber = order.PhoneNumber
	o.Email = order.Email
	o.Country = order.Country
	o.City = order.City
	o.District = order.District
	o.Ward = order.Ward
	o.Address = order.Address
	o.OrderNote = order.OrderNote
	o.DateOfBirth = order.DateOfBirth
	return nil
}

func (r *memOrderRepo) ApplyDiscountCode(ctx context.Context, id uint64, code string, grandTotal float64) error {
	defer r.s.lock()()
	o, err := r.find(id)
	if err != nil {
		return err
	}
	o.DiscountCode = code
	o.GrandTotal = grandTotal
	return nil
}

func (r *memOrderRepo) SetDeleted(ctx context.Context, id uint64, deleted bool) error {
	defer r.s.lock()()
	o, ok := r.s.st.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.IsDeleted = deleted
	return nil
}

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) VariantStock(ctx context.Context, productID uint64, sizeName string) (int, error) {
	defer r.s.lock()()
	if !r.s.st.products[productID] {
		return 0, domain.ErrProductNotFound
	}
	stock, ok := r.s.st.variants[variantKey(productID, sizeName)]
	if !ok {
		return 0, domain.ErrVariantNotFound
	}
	return stock, nil
}

func (r *memInventoryRepo) Decrement(ctx context.Context, productID uint64, sizeName string, quantity int) error {
	defer r.s.lock()()
	key := variantKey(productID, sizeName)
	stock, ok := r.s.st.variants[key]
	if !ok {
		if !r.s.st.products[productID] {
			return domain.ErrProductNotFound
		}
		return domain.ErrVariantNotFound
	}
	if stock < quantity {
		return domain.ErrInsufficientStock
	}
	r.s.st.variants[key] = stock - quantity
	return nil
}

func (r *memInventoryRepo) Increment(ctx context.Context, productID uint64, sizeName string, quantity int) error {
	defer r.s.lock()()
	key := variantKey(productID, sizeName)
	if _, ok := r.s.st.variants[key]; !ok {
		if !r.s.st.products[productID] {
			return domain.ErrProductNotFound
		}
		return domain.ErrVariantNotFound
	}
	r.s.st.variants[key] += quantity
	return nil
}

type memDiscountRepo struct{ s *memStore }

func (r *memDiscountRepo) Create(ctx context.Context, d *domain.Discount) error {
	defer r.s.lock()()
	r.s.st.nextDiscID++
	d.ID = r.s.st.nextDiscID
	cp := *d
	r.s.st.discounts[d.ID] = &cp
	return nil
}

func (r *memDiscountRepo) Update(ctx context.Context, d *domain.Discount) error {
	defer r.s.lock()()
	if _, ok := r.s.st.discounts[d.ID]; !ok {
		return domain.ErrDiscountNotFound
	}
	cp := *d
	r.s.st.discounts[d.ID] = &cp
	return nil
}

func (r *memDiscountRepo) Delete(ctx context.Context, id uint64) error {
	defer r.s.lock()()
	if _, ok := r.s.st.discounts[id]; !ok {
		return domain.ErrDiscountNotFound
	}
	delete(r.s.st.discounts, id)
	return nil
}

func (r *memDiscountRepo) FindByID(ctx context.Context, id uint64) (*domain.Discount, error) {
	defer r.s.lock()()
	d, ok := r.s.st.discounts[id]
	if !ok {
		return nil, domain.ErrDiscountNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDiscountRepo) FindByCode(ctx context.Context, code string) (*domain.Discount, error) {
	defer r.s.lock()()
	for _, d := range r.s.st.discounts {
		if d.Code == code {
			cp := *d
			return &cp, nil
		}
	}
	return nil, domain.ErrDiscountNotFound
}

func (r *memDiscountRepo) FindByCodeForUpdate(ctx context.Context, code string) (*domain.Discount, error) {
	return r.FindByCode(ctx, code)
}

func (r *memDiscountRepo) List(ctx context.Context) ([]domain.Discount, error) {
	defer r.s.lock()()
	var out []domain.Discount
	for _, d := range r.s.st.discounts {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memDiscountRepo) Redeem(ctx context.Context, discountID, orderID uint64) error {
	defer r.s.lock()()
	d, ok := r.s.st.discounts[discountID]
	if !ok {
		return domain.ErrDiscountNotFound
	}
	if d.UsedCount >= d.UsageLimit {
		return domain.ErrDiscountExhausted
	}
	key := redemptionKey(discountID, orderID)
	if r.s.st.redemptions[key] {
		return domain.ErrDiscountAlreadyApplied
	}
	d.UsedCount++
	r.s.st.redemptions[key] = true
	return nil
}
