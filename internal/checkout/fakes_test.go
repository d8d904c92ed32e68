package checkout_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

// memState is the whole in-memory database. WithinTx works on a clone and
// keeps it only when fn succeeds.
type memState struct {
	carts  map[uuid.UUID]domain.CartSnapshot
	stock  map[uuid.UUID]int32
	orders map[uuid.UUID]domain.Order
	outbox []domain.OutboxEvent
}

func newMemState() memState {
	return memState{
		carts:  map[uuid.UUID]domain.CartSnapshot{},
		stock:  map[uuid.UUID]int32{},
		orders: map[uuid.UUID]domain.Order{},
	}
}

func (s memState) clone() memState {
	c := memState{
		carts:  make(map[uuid.UUID]domain.CartSnapshot, len(s.carts)),
		stock:  maps.Clone(s.stock),
		orders: make(map[uuid.UUID]domain.Order, len(s.orders)),
		outbox: slices.Clone(s.outbox),
	}
	for k, v := range s.carts {
		v.Lines = slices.Clone(v.Lines)
		c.carts[k] = v
	}
	for k, v := range s.orders {
		v.Lines = slices.Clone(v.Lines)
		c.orders[k] = v
	}
	return c
}

type memStore struct {
	mu    sync.Mutex
	state memState

	// failures injected into the next transactions
	outboxErr error
	cartGone  bool
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx port.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	if err := fn(ctx, &memTx{store: m, state: &work}); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memStore) addProduct(qty int32) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.state.stock[id] = qty
	return id
}

func (m *memStore) putCart(ownerID uuid.UUID, lines ...domain.CartLine) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.carts[ownerID] = domain.CartSnapshot{
		CartID:  uuid.New(),
		OwnerID: ownerID,
		Lines:   lines,
	}
}

func (m *memStore) snapshot() memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

type memTx struct {
	store *memStore
	state *memState
}

func (t *memTx) Carts() port.CartRepository    { return memCarts{t} }
func (t *memTx) Stock() port.StockLedger       { return memStock{t} }
func (t *memTx) Orders() port.OrderRepository  { return memOrders{t} }
func (t *memTx) Outbox() port.OutboxRepository { return memOutbox{t} }

type memCarts struct{ tx *memTx }

func (c memCarts) Snapshot(_ context.Context, ownerID uuid.UUID) (domain.CartSnapshot, error) {
	snap, ok := c.tx.state.carts[ownerID]
	if !ok || len(snap.Lines) == 0 {
		return domain.CartSnapshot{}, domain.ErrCartNotFound
	}
	return snap, nil
}

func (c memCarts) AddItem(_ context.Context, ownerID uuid.UUID, item domain.CartItem) error {
	snap := c.tx.state.carts[ownerID]
	snap.OwnerID = ownerID
	snap.Lines = append(snap.Lines, domain.CartLine{
		ProductID: item.ProductID,
		SpellID:   item.SpellID,
		Quantity:  item.Quantity,
	})
	c.tx.state.carts[ownerID] = snap
	return nil
}

func (c memCarts) DeleteCart(_ context.Context, ownerID uuid.UUID) (bool, error) {
	if c.tx.store.cartGone {
		return false, nil
	}
	_, ok := c.tx.state.carts[ownerID]
	delete(c.tx.state.carts, ownerID)
	return ok, nil
}

type memStock struct{ tx *memTx }

func (s memStock) TryReserve(_ context.Context, productID uuid.UUID, quantity int32) (int32, error) {
	if quantity <= 0 {
		return 0, errors.New("quantity must be positive")
	}
	available, ok := s.tx.state.stock[productID]
	if !ok || available < quantity {
		return 0, &domain.InsufficientStockError{ProductID: productID}
	}
	s.tx.state.stock[productID] = available - quantity
	return available - quantity, nil
}

type memOrders struct{ tx *memTx }

func (o memOrders) CreatePending(_ context.Context, userID uuid.UUID) (domain.Order, error) {
	order := domain.Order{
		ID:            uuid.New(),
		UserID:        userID,
		PaymentStatus: domain.PaymentStatusPending,
	}
	o.tx.state.orders[order.ID] = order
	return order, nil
}

func (o memOrders) AddLine(_ context.Context, orderID uuid.UUID, line domain.OrderLine) error {
	order, ok := o.tx.state.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Lines = append(order.Lines, line)
	o.tx.state.orders[orderID] = order
	return nil
}

func (o memOrders) SetPaymentSession(_ context.Context, orderID uuid.UUID, sessionID string) error {
	order, ok := o.tx.state.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.StripePaymentID = sessionID
	o.tx.state.orders[orderID] = order
	return nil
}

func (o memOrders) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, ok := o.tx.state.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (o memOrders) ApplyPayment(context.Context, uuid.UUID, domain.PaymentSessionDetails) error {
	return errors.New("not used by checkout")
}

func (o memOrders) ListByStatus(context.Context, uuid.UUID, domain.PaymentStatus, int, int) ([]domain.Order, int64, error) {
	return nil, 0, errors.New("not used by checkout")
}

type memOutbox struct{ tx *memTx }

func (o memOutbox) Insert(_ context.Context, event domain.OutboxEvent) error {
	if o.tx.store.outboxErr != nil {
		return o.tx.store.outboxErr
	}
	o.tx.state.outbox = append(o.tx.state.outbox, event)
	return nil
}

func (o memOutbox) FetchPending(context.Context, int) ([]domain.OutboxEvent, error) {
	return slices.Clone(o.tx.state.outbox), nil
}

func (o memOutbox) MarkSent(context.Context, int64) error {
	return nil
}

type fakeGateway struct {
	mu    sync.Mutex
	err   error
	calls [][]domain.PaymentLineItem
}

func (g *fakeGateway) CreateSession(_ context.Context, orderID uuid.UUID, items []domain.PaymentLineItem) (domain.PaymentSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, items)
	if g.err != nil {
		return domain.PaymentSession{}, g.err
	}
	return domain.PaymentSession{
		ID:  "cs_test_" + orderID.String(),
		URL: "https://pay.example.com/" + orderID.String(),
	}, nil
}

func (g *fakeGateway) RetrieveSession(context.Context, string) (domain.PaymentSessionDetails, error) {
	return domain.PaymentSessionDetails{}, errors.New("not used by checkout")
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *fakeRecorder) ObserveCheckout(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}
