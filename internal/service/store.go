package service

import (
	"context"

	"creatorkart/internal/models"
)

// Store is the persistence boundary for the ledger and settlement services.
// The gorm implementation lives in internal/repository; tests substitute an
// in-memory fake. Methods that look up an order or wallet take a row lock
// when called on the Store passed into an Atomic callback, so the
// check-then-act sequences below are serialized per wallet/order.
type Store interface {
	// Atomic runs fn inside a single database transaction. The Store passed
	// to fn reads with FOR UPDATE semantics; any error rolls the whole
	// transaction back.
	Atomic(ctx context.Context, fn func(tx Store) error) error

	UserByID(ctx context.Context, id uint) (*models.User, error)
	CreatorProfileByUserID(ctx context.Context, userID uint) (*models.CreatorProfile, error)

	ProductByID(ctx context.Context, id uint) (*models.Product, error)
	IncrementSupplySold(ctx context.Context, productID uint, qty int) error

	CreateOrder(ctx context.Context, o *models.Order) error
	OrderByID(ctx context.Context, id uint) (*models.Order, error)
	// OrderForFulfillment loads an order with items, products, and the
	// creator's profile preloaded.
	OrderForFulfillment(ctx context.Context, id uint) (*models.Order, error)
	UpdateOrder(ctx context.Context, o *models.Order) error
	ItemsForOrder(ctx context.Context, orderID uint) ([]models.OrderItem, error)

	WalletByID(ctx context.Context, id uint) (*models.Wallet, error)
	WalletForCreator(ctx context.Context, creatorID uint) (*models.Wallet, error)
	// EnsureWallet returns the creator's wallet, creating it seeded at zero
	// if absent. Safe under concurrent first credits: the insert defers to
	// an existing row instead of erroring on the unique creator index.
	EnsureWallet(ctx context.Context, creatorID uint, currency string) (*models.Wallet, error)
	UpdateWalletBalances(ctx context.Context, w *models.Wallet) error

	HasCreditForOrder(ctx context.Context, walletID, orderID uint) (bool, error)
	CreateTransaction(ctx context.Context, t *models.WalletTransaction) error
	TransactionsForWallet(ctx context.Context, walletID uint) ([]models.WalletTransaction, error)
	TransactionForPayout(ctx context.Context, payoutID uint) (*models.WalletTransaction, error)
	UpdateTransaction(ctx context.Context, t *models.WalletTransaction) error

	CreatePayout(ctx context.Context, p *models.PayoutRequest) error
	PayoutByID(ctx context.Context, id uint) (*models.PayoutRequest, error)
	UpdatePayout(ctx context.Context, p *models.PayoutRequest) error
	PayoutsForCreator(ctx context.Context, creatorID uint) ([]models.PayoutRequest, error)
	PayoutsByStatus(ctx context.Context, status string) ([]models.PayoutRequest, error)
}
