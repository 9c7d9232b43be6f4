package service

import (
	"context"
	"errors"
	"time"

	"creatorkart/internal/domain"
	"creatorkart/internal/models"

	"github.com/google/uuid"
)

// Ledger owns wallet balances and the transaction log. Every mutating
// operation runs as one atomic unit against the wallet row, so duplicate
// triggers (webhook redelivery, double-submitted payout forms) cannot
// produce two credits or an over-debit.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// CreditResult reports the outcome of CreditForPaidOrder. AlreadyCredited
// distinguishes a no-op replay from a fresh credit; neither is an error.
type CreditResult struct {
	Wallet          *models.Wallet
	AlreadyCredited bool
}

// CreditForPaidOrder credits the creator's wallet with the order's net
// amount. The wallet is created lazily on first credit. Calling this any
// number of times for the same paid order results in exactly one credit:
// the duplicate check runs inside the same transaction as the insert.
func (l *Ledger) CreditForPaidOrder(ctx context.Context, orderID uint) (*CreditResult, error) {
	var res CreditResult
	err := l.store.Atomic(ctx, func(tx Store) error {
		order, err := tx.OrderByID(ctx, orderID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != domain.OrderStatusPaid {
			return domain.ErrOrderNotPaid
		}

		wallet, err := tx.EnsureWallet(ctx, order.CreatorID, order.Currency)
		if err != nil {
			return err
		}

		credited, err := tx.HasCreditForOrder(ctx, wallet.ID, order.ID)
		if err != nil {
			return err
		}
		if credited {
			res = CreditResult{Wallet: wallet, AlreadyCredited: true}
			return nil
		}

		oid := order.ID
		if err := tx.CreateTransaction(ctx, &models.WalletTransaction{
			WalletID:    wallet.ID,
			OrderID:     &oid,
			Kind:        domain.TxKindCreditSale,
			Status:      domain.TxStatusAvailable,
			AmountCents: order.CreatorNetCents,
			Description: "Sale credited",
		}); err != nil {
			return err
		}
		wallet.AvailableBalanceCents += order.CreatorNetCents
		if err := tx.UpdateWalletBalances(ctx, wallet); err != nil {
			return err
		}
		res = CreditResult{Wallet: wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// RequestPayout earmarks amountCents for withdrawal: it atomically creates a
// PayoutRequest, appends the paired DEBIT_PAYOUT transaction, and removes the
// amount from the available balance. The balance check is re-evaluated under
// the wallet row lock, so racing requests can never drive the balance
// negative.
func (l *Ledger) RequestPayout(ctx context.Context, creatorID uint, amountCents int64) (*models.PayoutRequest, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidPayoutAmount
	}

	profile, err := l.store.CreatorProfileByUserID(ctx, creatorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrMissingPayoutDestination
	}
	if err != nil {
		return nil, err
	}
	if !profile.HasPayoutDestination() {
		return nil, domain.ErrMissingPayoutDestination
	}

	var payout *models.PayoutRequest
	err = l.store.Atomic(ctx, func(tx Store) error {
		wallet, err := tx.WalletForCreator(ctx, creatorID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInsufficientBalance
		}
		if err != nil {
			return err
		}
		if wallet.AvailableBalanceCents < amountCents {
			return domain.ErrInsufficientBalance
		}

		payout = &models.PayoutRequest{
			Reference:   "po-" + uuid.New().String(),
			CreatorID:   creatorID,
			WalletID:    wallet.ID,
			AmountCents: amountCents,
			Currency:    wallet.Currency,
			Status:      domain.PayoutStatusRequested,
		}
		if err := tx.CreatePayout(ctx, payout); err != nil {
			return err
		}
		pid := payout.ID
		if err := tx.CreateTransaction(ctx, &models.WalletTransaction{
			WalletID:        wallet.ID,
			PayoutRequestID: &pid,
			Kind:            domain.TxKindDebitPayout,
			Status:          domain.TxStatusPending,
			AmountCents:     -amountCents,
			Description:     "Payout requested",
		}); err != nil {
			return err
		}
		wallet.AvailableBalanceCents -= amountCents
		return tx.UpdateWalletBalances(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

// MarkPayoutSettled records the operator's settlement outcome. COMPLETED
// moves the amount into the wallet's lifetime paid-out total; FAILED or
// REJECTED restores the available balance so funds are not lost. Repeated
// calls after the first settlement are no-ops.
func (l *Ledger) MarkPayoutSettled(ctx context.Context, payoutID uint, outcome string) error {
	if outcome != domain.PayoutStatusCompleted && outcome != domain.PayoutStatusFailed && outcome != domain.PayoutStatusRejected {
		return domain.ErrInvalidPayoutOutcome
	}
	return l.store.Atomic(ctx, func(tx Store) error {
		payout, err := tx.PayoutByID(ctx, payoutID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if payout.Settled() {
			return nil
		}

		wallet, err := tx.WalletByID(ctx, payout.WalletID)
		if err != nil {
			return err
		}
		debit, err := tx.TransactionForPayout(ctx, payout.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		payout.Status = outcome
		payout.SettledAt = &now
		if outcome == domain.PayoutStatusCompleted {
			wallet.TotalPaidOutCents += payout.AmountCents
			debit.Status = domain.TxStatusCompleted
		} else {
			wallet.AvailableBalanceCents += payout.AmountCents
			debit.Status = domain.TxStatusFailed
		}

		if err := tx.UpdatePayout(ctx, payout); err != nil {
			return err
		}
		if err := tx.UpdateTransaction(ctx, debit); err != nil {
			return err
		}
		return tx.UpdateWalletBalances(ctx, wallet)
	})
}

// Adjust appends a manual ADJUSTMENT transaction and moves the available
// balance by the signed amount. Admin surface for operator corrections.
func (l *Ledger) Adjust(ctx context.Context, walletID uint, amountCents int64, description string) error {
	if amountCents == 0 {
		return domain.ErrInvalidPayoutAmount
	}
	return l.store.Atomic(ctx, func(tx Store) error {
		wallet, err := tx.WalletByID(ctx, walletID)
		if err != nil {
			return err
		}
		if wallet.AvailableBalanceCents+amountCents < 0 {
			return domain.ErrInsufficientBalance
		}
		if err := tx.CreateTransaction(ctx, &models.WalletTransaction{
			WalletID:    wallet.ID,
			Kind:        domain.TxKindAdjustment,
			Status:      domain.TxStatusAvailable,
			AmountCents: amountCents,
			Description: description,
		}); err != nil {
			return err
		}
		wallet.AvailableBalanceCents += amountCents
		return tx.UpdateWalletBalances(ctx, wallet)
	})
}

// Reconciliation is the result of replaying a wallet's transaction log
// against its stored balances.
type Reconciliation struct {
	WalletID               uint  `json:"wallet_id"`
	ComputedAvailableCents int64 `json:"computed_available_cents"`
	StoredAvailableCents   int64 `json:"stored_available_cents"`
	ComputedPaidOutCents   int64 `json:"computed_paid_out_cents"`
	StoredPaidOutCents     int64 `json:"stored_paid_out_cents"`
	Balanced               bool  `json:"balanced"`
}

// Reconcile recomputes the available balance and lifetime paid-out total
// from the transaction log. Credits and adjustments count while AVAILABLE;
// payout debits count unless the payout failed (a failed debit was
// restored). The ledger is balanced iff the replay matches the stored
// wallet fields.
func (l *Ledger) Reconcile(ctx context.Context, walletID uint) (*Reconciliation, error) {
	wallet, err := l.store.WalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	txs, err := l.store.TransactionsForWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}

	var available, paidOut int64
	for _, t := range txs {
		switch t.Kind {
		case domain.TxKindCreditSale, domain.TxKindAdjustment, domain.TxKindReversal:
			if t.Status == domain.TxStatusAvailable {
				available += t.AmountCents
			}
		case domain.TxKindDebitPayout:
			if t.Status != domain.TxStatusFailed {
				available += t.AmountCents
			}
			if t.Status == domain.TxStatusCompleted {
				paidOut += -t.AmountCents
			}
		}
	}

	return &Reconciliation{
		WalletID:               wallet.ID,
		ComputedAvailableCents: available,
		StoredAvailableCents:   wallet.AvailableBalanceCents,
		ComputedPaidOutCents:   paidOut,
		StoredPaidOutCents:     wallet.TotalPaidOutCents,
		Balanced:               available == wallet.AvailableBalanceCents && paidOut == wallet.TotalPaidOutCents,
	}, nil
}
