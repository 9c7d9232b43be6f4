package service

import (
	"context"
	"errors"
	"log"
	"time"

	"creatorkart/internal/domain"
	"creatorkart/internal/models"
	"creatorkart/internal/money"

	"github.com/google/uuid"
)

// Fulfiller delivers a paid order to the buyer. Called only after a PAID
// transition has durably committed; must tolerate repeated calls.
type Fulfiller interface {
	Fulfill(ctx context.Context, orderID uint) error
}

// Settlement owns the order lifecycle: PENDING -> PAID (terminal), or
// PENDING -> FAILED/CANCELLED. The PAID transition triggers the ledger
// credit and fulfillment exactly once per order, after commit.
type Settlement struct {
	store     Store
	ledger    *Ledger
	fulfiller Fulfiller
	rate      float64
}

func NewSettlement(store Store, ledger *Ledger, fulfiller Fulfiller, commissionRate float64) *Settlement {
	return &Settlement{store: store, ledger: ledger, fulfiller: fulfiller, rate: money.ClampRate(commissionRate)}
}

// CreateOrder opens a PENDING order for qty units of a product, snapshotting
// the product name/price and the buyer's contact details. The fee split is
// computed now, with the current commission rate, and stored on the order so
// later rate changes never alter a past order's split.
func (s *Settlement) CreateOrder(ctx context.Context, buyerID, productID uint, qty int) (*models.Order, error) {
	if qty <= 0 {
		qty = 1
	}
	buyer, err := s.store.UserByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if !buyer.ProfileComplete() {
		return nil, domain.ErrProfileIncomplete
	}
	product, err := s.store.ProductByID(ctx, productID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrProductNotAvailable
	}
	if err != nil {
		return nil, err
	}
	if product.Status != domain.ProductStatusActive || product.SoldOut(qty) {
		return nil, domain.ErrProductNotAvailable
	}

	gross := product.PriceCents * int64(qty)
	fee, net, err := money.ComputeFee(gross, s.rate)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Reference:           "ord-" + uuid.New().String(),
		BuyerID:             buyer.ID,
		CreatorID:           product.CreatorID,
		Status:              domain.OrderStatusPending,
		BuyerName:           buyer.Name,
		BuyerEmail:          buyer.Email,
		BuyerPhone:          buyer.Phone,
		Currency:            product.Currency,
		AmountSubtotalCents: gross,
		AmountTotalCents:    gross,
		PlatformFeeCents:    fee,
		CreatorNetCents:     net,
		CommissionRate:      s.rate,
		Items: []models.OrderItem{{
			ProductID:           product.ID,
			Quantity:            qty,
			UnitPriceCents:      product.PriceCents,
			TotalCents:          gross,
			ProductNameSnapshot: product.Name,
		}},
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkPaid transitions an order to PAID and bumps each line item's supply
// counter in the same transaction. Idempotent: an already-PAID order is
// returned unchanged, which makes the webhook handler safe under at-least-
// once delivery. After the transition commits, the ledger credit runs (its
// failure is returned so the caller retries), then fulfillment is dispatched
// best-effort.
func (s *Settlement) MarkPaid(ctx context.Context, orderID uint, gatewayRef string) (*models.Order, error) {
	var order *models.Order
	err := s.store.Atomic(ctx, func(tx Store) error {
		o, err := tx.OrderByID(ctx, orderID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if o.Status == domain.OrderStatusPaid {
			order = o
			return nil
		}
		if o.Status != domain.OrderStatusPending {
			return domain.ErrOrderNotPending
		}

		now := time.Now()
		o.Status = domain.OrderStatusPaid
		o.PaidAt = &now
		if gatewayRef != "" {
			o.GatewayPaymentRef = &gatewayRef
		}
		if err := tx.UpdateOrder(ctx, o); err != nil {
			return err
		}

		items, err := tx.ItemsForOrder(ctx, o.ID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := tx.IncrementSupplySold(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Side effects run only after the PAID transition is durable. The credit
	// is idempotent, so a retried webhook repairs a failure here.
	res, err := s.ledger.CreditForPaidOrder(ctx, order.ID)
	if err != nil {
		log.Printf("[Settlement] credit failed for order %d: %v", order.ID, err)
		return order, err
	}
	// Fulfillment is dispatched by exactly the caller whose credit landed.
	// The credit's idempotency guard serializes racing deliveries, so one of
	// them sees AlreadyCredited=false and notifies the buyer; replays and
	// the loser of the race stay silent.
	if s.fulfiller != nil && !res.AlreadyCredited {
		if err := s.fulfiller.Fulfill(ctx, order.ID); err != nil {
			log.Printf("[Settlement] fulfillment failed for order %d: %v", order.ID, err)
		}
	}
	return order, nil
}

// MarkFailed moves a PENDING order to FAILED. No-op if already FAILED.
func (s *Settlement) MarkFailed(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.terminate(ctx, orderID, domain.OrderStatusFailed)
}

// MarkCancelled moves a PENDING order to CANCELLED. No-op if already CANCELLED.
func (s *Settlement) MarkCancelled(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.terminate(ctx, orderID, domain.OrderStatusCancelled)
}

func (s *Settlement) terminate(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	var order *models.Order
	err := s.store.Atomic(ctx, func(tx Store) error {
		o, err := tx.OrderByID(ctx, orderID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if o.Status == status {
			order = o
			return nil
		}
		if o.Status != domain.OrderStatusPending {
			return domain.ErrOrderNotPending
		}
		o.Status = status
		if err := tx.UpdateOrder(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AttachGatewayOrder records the gateway's session/order reference on a
// pending order after session creation.
func (s *Settlement) AttachGatewayOrder(ctx context.Context, orderID uint, gatewayOrderID string) error {
	return s.store.Atomic(ctx, func(tx Store) error {
		o, err := tx.OrderByID(ctx, orderID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		o.GatewayOrderID = &gatewayOrderID
		return tx.UpdateOrder(ctx, o)
	})
}
