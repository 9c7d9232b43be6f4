package service

import (
	"context"
	"fmt"
	"sync"

	"creatorkart/internal/domain"
	"creatorkart/internal/models"
)

// fakeStore is an in-memory Store. Atomic serializes callbacks behind a
// mutex and rolls every map back on error, which is enough to exercise the
// check-then-act sequences the real store serializes with row locks.
type fakeStore struct {
	mu   *sync.Mutex
	inTx bool
	data *fakeData
}

type fakeData struct {
	seq      uint
	users    map[uint]*models.User
	profiles map[uint]*models.CreatorProfile // keyed by user ID
	products map[uint]*models.Product
	orders   map[uint]*models.Order
	items    map[uint][]models.OrderItem // keyed by order ID
	wallets  map[uint]*models.Wallet
	txs      []models.WalletTransaction
	payouts  map[uint]*models.PayoutRequest

	failCreateTransaction bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		mu: &sync.Mutex{},
		data: &fakeData{
			users:    map[uint]*models.User{},
			profiles: map[uint]*models.CreatorProfile{},
			products: map[uint]*models.Product{},
			orders:   map[uint]*models.Order{},
			items:    map[uint][]models.OrderItem{},
			wallets:  map[uint]*models.Wallet{},
			payouts:  map[uint]*models.PayoutRequest{},
		},
	}
}

func (d *fakeData) clone() *fakeData {
	c := &fakeData{
		seq:                   d.seq,
		users:                 map[uint]*models.User{},
		profiles:              map[uint]*models.CreatorProfile{},
		products:              map[uint]*models.Product{},
		orders:                map[uint]*models.Order{},
		items:                 map[uint][]models.OrderItem{},
		wallets:               map[uint]*models.Wallet{},
		payouts:               map[uint]*models.PayoutRequest{},
		failCreateTransaction: d.failCreateTransaction,
	}
	for k, v := range d.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range d.profiles {
		cp := *v
		c.profiles[k] = &cp
	}
	for k, v := range d.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range d.orders {
		cp := *v
		c.orders[k] = &cp
	}
	for k, v := range d.items {
		c.items[k] = append([]models.OrderItem(nil), v...)
	}
	for k, v := range d.wallets {
		cp := *v
		c.wallets[k] = &cp
	}
	c.txs = append([]models.WalletTransaction(nil), d.txs...)
	for k, v := range d.payouts {
		cp := *v
		c.payouts[k] = &cp
	}
	return c
}

func (f *fakeStore) lock() func() {
	if f.inTx {
		return func() {}
	}
	f.mu.Lock()
	return f.mu.Unlock
}

func (f *fakeStore) Atomic(_ context.Context, fn func(tx Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := f.data.clone()
	if err := fn(&fakeStore{mu: f.mu, inTx: true, data: f.data}); err != nil {
		*f.data = *snapshot
		return err
	}
	return nil
}

func (f *fakeStore) nextID() uint {
	f.data.seq++
	return f.data.seq
}

func (f *fakeStore) UserByID(_ context.Context, id uint) (*models.User, error) {
	defer f.lock()()
	u, ok := f.data.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) CreatorProfileByUserID(_ context.Context, userID uint) (*models.CreatorProfile, error) {
	defer f.lock()()
	p, ok := f.data.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ProductByID(_ context.Context, id uint) (*models.Product, error) {
	defer f.lock()()
	p, ok := f.data.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) IncrementSupplySold(_ context.Context, productID uint, qty int) error {
	defer f.lock()()
	p, ok := f.data.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.SupplySold += qty
	return nil
}

func (f *fakeStore) CreateOrder(_ context.Context, o *models.Order) error {
	defer f.lock()()
	o.ID = f.nextID()
	for i := range o.Items {
		o.Items[i].ID = f.nextID()
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	cp.Items = nil
	f.data.orders[o.ID] = &cp
	f.data.items[o.ID] = append([]models.OrderItem(nil), o.Items...)
	return nil
}

func (f *fakeStore) OrderByID(_ context.Context, id uint) (*models.Order, error) {
	defer f.lock()()
	o, ok := f.data.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) OrderForFulfillment(_ context.Context, id uint) (*models.Order, error) {
	defer f.lock()()
	o, ok := f.data.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	for _, it := range f.data.items[id] {
		if p, ok := f.data.products[it.ProductID]; ok {
			it.Product = *p
		}
		cp.Items = append(cp.Items, it)
	}
	if creator, ok := f.data.users[o.CreatorID]; ok {
		cp.Creator = *creator
		if profile, ok := f.data.profiles[o.CreatorID]; ok {
			pcp := *profile
			cp.Creator.CreatorProfile = &pcp
		}
	}
	return &cp, nil
}

func (f *fakeStore) UpdateOrder(_ context.Context, o *models.Order) error {
	defer f.lock()()
	if _, ok := f.data.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	cp.Items = nil
	f.data.orders[o.ID] = &cp
	return nil
}

func (f *fakeStore) ItemsForOrder(_ context.Context, orderID uint) ([]models.OrderItem, error) {
	defer f.lock()()
	return append([]models.OrderItem(nil), f.data.items[orderID]...), nil
}

func (f *fakeStore) WalletByID(_ context.Context, id uint) (*models.Wallet, error) {
	defer f.lock()()
	w, ok := f.data.wallets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeStore) WalletForCreator(_ context.Context, creatorID uint) (*models.Wallet, error) {
	defer f.lock()()
	for _, w := range f.data.wallets {
		if w.CreatorID == creatorID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) EnsureWallet(_ context.Context, creatorID uint, currency string) (*models.Wallet, error) {
	defer f.lock()()
	for _, w := range f.data.wallets {
		if w.CreatorID == creatorID {
			cp := *w
			return &cp, nil
		}
	}
	w := models.Wallet{ID: f.nextID(), CreatorID: creatorID, Currency: currency}
	f.data.wallets[w.ID] = &w
	cp := w
	return &cp, nil
}

func (f *fakeStore) UpdateWalletBalances(_ context.Context, w *models.Wallet) error {
	defer f.lock()()
	stored, ok := f.data.wallets[w.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.AvailableBalanceCents = w.AvailableBalanceCents
	stored.PendingBalanceCents = w.PendingBalanceCents
	stored.TotalPaidOutCents = w.TotalPaidOutCents
	return nil
}

func (f *fakeStore) HasCreditForOrder(_ context.Context, walletID, orderID uint) (bool, error) {
	defer f.lock()()
	for _, t := range f.data.txs {
		if t.WalletID == walletID && t.Kind == domain.TxKindCreditSale && t.OrderID != nil && *t.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateTransaction(_ context.Context, t *models.WalletTransaction) error {
	defer f.lock()()
	if f.data.failCreateTransaction {
		return fmt.Errorf("storage unavailable")
	}
	t.ID = f.nextID()
	f.data.txs = append(f.data.txs, *t)
	return nil
}

func (f *fakeStore) TransactionsForWallet(_ context.Context, walletID uint) ([]models.WalletTransaction, error) {
	defer f.lock()()
	var out []models.WalletTransaction
	for _, t := range f.data.txs {
		if t.WalletID == walletID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) TransactionForPayout(_ context.Context, payoutID uint) (*models.WalletTransaction, error) {
	defer f.lock()()
	for _, t := range f.data.txs {
		if t.PayoutRequestID != nil && *t.PayoutRequestID == payoutID {
			cp := t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) UpdateTransaction(_ context.Context, t *models.WalletTransaction) error {
	defer f.lock()()
	for i := range f.data.txs {
		if f.data.txs[i].ID == t.ID {
			f.data.txs[i] = *t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeStore) CreatePayout(_ context.Context, p *models.PayoutRequest) error {
	defer f.lock()()
	p.ID = f.nextID()
	cp := *p
	f.data.payouts[p.ID] = &cp
	return nil
}

func (f *fakeStore) PayoutByID(_ context.Context, id uint) (*models.PayoutRequest, error) {
	defer f.lock()()
	p, ok := f.data.payouts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) UpdatePayout(_ context.Context, p *models.PayoutRequest) error {
	defer f.lock()()
	if _, ok := f.data.payouts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.data.payouts[p.ID] = &cp
	return nil
}

func (f *fakeStore) PayoutsForCreator(_ context.Context, creatorID uint) ([]models.PayoutRequest, error) {
	defer f.lock()()
	var out []models.PayoutRequest
	for _, p := range f.data.payouts {
		if p.CreatorID == creatorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) PayoutsByStatus(_ context.Context, status string) ([]models.PayoutRequest, error) {
	defer f.lock()()
	var out []models.PayoutRequest
	for _, p := range f.data.payouts {
		if status == "" || p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ Store = (*fakeStore)(nil)

// Seeding helpers.

func (f *fakeStore) seedUser(u models.User) *models.User {
	defer f.lock()()
	u.ID = f.nextID()
	f.data.users[u.ID] = &u
	return &u
}

func (f *fakeStore) seedProfile(p models.CreatorProfile) *models.CreatorProfile {
	defer f.lock()()
	p.ID = f.nextID()
	f.data.profiles[p.UserID] = &p
	return &p
}

func (f *fakeStore) seedProduct(p models.Product) *models.Product {
	defer f.lock()()
	p.ID = f.nextID()
	f.data.products[p.ID] = &p
	return &p
}

func (f *fakeStore) seedWallet(w models.Wallet) *models.Wallet {
	defer f.lock()()
	w.ID = f.nextID()
	f.data.wallets[w.ID] = &w
	return &w
}

func (f *fakeStore) seedOrder(o models.Order, items ...models.OrderItem) *models.Order {
	defer f.lock()()
	o.ID = f.nextID()
	for i := range items {
		items[i].ID = f.nextID()
		items[i].OrderID = o.ID
	}
	f.data.orders[o.ID] = &o
	f.data.items[o.ID] = items
	return &o
}

func (f *fakeStore) transactionCount(walletID uint, kind string) int {
	defer f.lock()()
	n := 0
	for _, t := range f.data.txs {
		if t.WalletID == walletID && t.Kind == kind {
			n++
		}
	}
	return n
}

func (f *fakeStore) walletForCreator(creatorID uint) *models.Wallet {
	w, err := f.WalletForCreator(context.Background(), creatorID)
	if err != nil {
		return nil
	}
	return w
}

// recordingMailer captures sent mail for assertions.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp down")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// countingFulfiller records how many times fulfillment was dispatched.
type countingFulfiller struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingFulfiller) Fulfill(context.Context, uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

func (c *countingFulfiller) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
