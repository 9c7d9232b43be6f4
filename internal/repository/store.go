package repository

import (
	"context"
	"errors"

	"creatorkart/internal/domain"
	"creatorkart/internal/models"
	"creatorkart/internal/service"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm implementation of service.Store. Inside Atomic, order
// and wallet lookups run with SELECT ... FOR UPDATE so concurrent settlement
// and ledger operations on the same row serialize at the database.
type Store struct {
	db     *gorm.DB
	locked bool
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ service.Store = (*Store)(nil)

func (s *Store) Atomic(ctx context.Context, fn func(tx service.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, locked: true})
	})
}

// read applies the row lock when inside a transaction.
func (s *Store) read(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	if s.locked {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) CreatorProfileByUserID(ctx context.Context, userID uint) (*models.CreatorProfile, error) {
	var p models.CreatorProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) IncrementSupplySold(ctx context.Context, productID uint, qty int) error {
	return s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("supply_sold", gorm.Expr("supply_sold + ?", qty)).Error
}

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *Store) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.read(ctx).First(&o, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (s *Store) OrderForFulfillment(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Creator.CreatorProfile").
		First(&o, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (s *Store) UpdateOrder(ctx context.Context, o *models.Order) error {
	return s.db.WithContext(ctx).Save(o).Error
}

func (s *Store) ItemsForOrder(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) WalletByID(ctx context.Context, id uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := s.read(ctx).First(&w, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

func (s *Store) WalletForCreator(ctx context.Context, creatorID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := s.read(ctx).Where("creator_id = ?", creatorID).First(&w).Error; err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

func (s *Store) EnsureWallet(ctx context.Context, creatorID uint, currency string) (*models.Wallet, error) {
	w := models.Wallet{CreatorID: creatorID, Currency: currency}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "creator_id"}}, DoNothing: true}).
		Create(&w).Error
	if err != nil {
		return nil, err
	}
	// Re-read so a lost insert race still yields the winning row, locked
	// when inside a transaction.
	return s.WalletForCreator(ctx, creatorID)
}

func (s *Store) UpdateWalletBalances(ctx context.Context, w *models.Wallet) error {
	return s.db.WithContext(ctx).Model(w).Updates(map[string]interface{}{
		"available_balance_cents": w.AvailableBalanceCents,
		"pending_balance_cents":   w.PendingBalanceCents,
		"total_paid_out_cents":    w.TotalPaidOutCents,
	}).Error
}

func (s *Store) HasCreditForOrder(ctx context.Context, walletID, orderID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.WalletTransaction{}).
		Where("wallet_id = ? AND order_id = ? AND kind = ?", walletID, orderID, domain.TxKindCreditSale).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateTransaction(ctx context.Context, t *models.WalletTransaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *Store) TransactionsForWallet(ctx context.Context, walletID uint) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	err := s.db.WithContext(ctx).Where("wallet_id = ?", walletID).
		Order("created_at DESC, id DESC").Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *Store) TransactionForPayout(ctx context.Context, payoutID uint) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	err := s.db.WithContext(ctx).
		Where("payout_request_id = ? AND kind = ?", payoutID, domain.TxKindDebitPayout).
		First(&t).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, t *models.WalletTransaction) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *Store) CreatePayout(ctx context.Context, p *models.PayoutRequest) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) PayoutByID(ctx context.Context, id uint) (*models.PayoutRequest, error) {
	var p models.PayoutRequest
	if err := s.read(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) UpdatePayout(ctx context.Context, p *models.PayoutRequest) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *Store) PayoutsForCreator(ctx context.Context, creatorID uint) ([]models.PayoutRequest, error) {
	var payouts []models.PayoutRequest
	err := s.db.WithContext(ctx).Where("creator_id = ?", creatorID).
		Order("created_at DESC").Find(&payouts).Error
	if err != nil {
		return nil, err
	}
	return payouts, nil
}

func (s *Store) PayoutsByStatus(ctx context.Context, status string) ([]models.PayoutRequest, error) {
	var payouts []models.PayoutRequest
	q := s.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Find(&payouts).Error; err != nil {
		return nil, err
	}
	return payouts, nil
}
