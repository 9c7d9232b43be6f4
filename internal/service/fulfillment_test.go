package service

import (
	"context"
	"testing"

	"creatorkart/internal/domain"
	"creatorkart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFulfillmentOrder(f *fakeStore, product models.Product) (*models.User, *models.Order) {
	creator := seedCreatorWithBank(f)
	product.CreatorID = creator.ID
	p := f.seedProduct(product)
	order := f.seedOrder(models.Order{
		Reference:        "ord-ff",
		BuyerID:          999,
		CreatorID:        creator.ID,
		Status:           domain.OrderStatusPaid,
		BuyerName:        "Ravi",
		BuyerEmail:       "ravi@example.com",
		BuyerPhone:       "+919876543210",
		Currency:         "INR",
		AmountTotalCents: 19900,
		CreatorNetCents:  16318,
	}, models.OrderItem{
		ProductID:           p.ID,
		Quantity:            1,
		UnitPriceCents:      19900,
		TotalCents:          19900,
		ProductNameSnapshot: p.Name,
	})
	return creator, order
}

func TestFulfill_DigitalProduct(t *testing.T) {
	f := newFakeStore()
	mail := &recordingMailer{}
	fulfillment := NewFulfillment(f, mail, "https://creatorkart.example.com")
	creator, order := seedFulfillmentOrder(f, models.Product{
		Type:             domain.ProductTypeDigital,
		Name:             "Editing Masterclass",
		Slug:             "editing-masterclass",
		PriceCents:       19900,
		Currency:         "INR",
		Status:           domain.ProductStatusActive,
		DeliveryMethod:   domain.DeliveryMethodLink,
		DeliveryAssetURL: "https://files.example.com/masterclass.zip",
	})

	require.NoError(t, fulfillment.Fulfill(context.Background(), order.ID))
	require.Equal(t, 2, mail.count())

	buyerMail := mail.sent[0]
	assert.Equal(t, "ravi@example.com", buyerMail.To)
	assert.Contains(t, buyerMail.Subject, "Editing Masterclass")
	assert.Contains(t, buyerMail.Body, order.Reference)
	assert.Contains(t, buyerMail.Body, "Digital product")
	assert.Contains(t, buyerMail.Body, "https://files.example.com/masterclass.zip")
	assert.Contains(t, buyerMail.Body, "₹199.00")

	creatorMail := mail.sent[1]
	assert.Equal(t, creator.Email, creatorMail.To)
	assert.Contains(t, creatorMail.Subject, "New sale")
	assert.Contains(t, creatorMail.Body, "₹163.18", "creator sees the net, not the gross alone")
	assert.Contains(t, creatorMail.Body, "https://creatorkart.example.com/asha")
}

func TestFulfill_DigitalWithoutAsset(t *testing.T) {
	f := newFakeStore()
	mail := &recordingMailer{}
	fulfillment := NewFulfillment(f, mail, "")
	_, order := seedFulfillmentOrder(f, models.Product{
		Type:           domain.ProductTypeDigital,
		Name:           "Preset Pack",
		Slug:           "preset-pack",
		PriceCents:     19900,
		Currency:       "INR",
		Status:         domain.ProductStatusActive,
		DeliveryMethod: domain.DeliveryMethodManual,
	})

	require.NoError(t, fulfillment.Fulfill(context.Background(), order.ID))
	require.GreaterOrEqual(t, mail.count(), 1)
	assert.Contains(t, mail.sent[0].Body, "creator will share the asset")
}

func TestFulfill_Session(t *testing.T) {
	f := newFakeStore()
	mail := &recordingMailer{}
	fulfillment := NewFulfillment(f, mail, "")
	_, order := seedFulfillmentOrder(f, models.Product{
		Type:       domain.ProductTypeSession,
		Name:       "Portfolio Review",
		Slug:       "portfolio-review",
		PriceCents: 19900,
		Currency:   "INR",
		Status:     domain.ProductStatusActive,
	})

	require.NoError(t, fulfillment.Fulfill(context.Background(), order.ID))
	require.GreaterOrEqual(t, mail.count(), 1)
	assert.Contains(t, mail.sent[0].Body, "1:1 session")
	assert.Contains(t, mail.sent[0].Body, "Creator will contact you")
}

func TestFulfill_TelegramWithInvite(t *testing.T) {
	f := newFakeStore()
	mail := &recordingMailer{}
	fulfillment := NewFulfillment(f, mail, "")
	_, order := seedFulfillmentOrder(f, models.Product{
		Type:             domain.ProductTypeTelegram,
		Name:             "Traders Lounge",
		Slug:             "traders-lounge",
		PriceCents:       19900,
		Currency:         "INR",
		Status:           domain.ProductStatusActive,
		DeliveryAssetURL: "https://t.me/+abcdef",
	})

	require.NoError(t, fulfillment.Fulfill(context.Background(), order.ID))
	require.GreaterOrEqual(t, mail.count(), 1)
	assert.Contains(t, mail.sent[0].Body, "Telegram entitlement")
	assert.Contains(t, mail.sent[0].Body, "https://t.me/+abcdef")
}

func TestFulfill_SkipsUnpaidOrder(t *testing.T) {
	f := newFakeStore()
	mail := &recordingMailer{}
	fulfillment := NewFulfillment(f, mail, "")
	creator := seedCreatorWithBank(f)
	order := f.seedOrder(models.Order{
		Reference:  "ord-pending",
		CreatorID:  creator.ID,
		Status:     domain.OrderStatusPending,
		BuyerEmail: "ravi@example.com",
		Currency:   "INR",
	})

	require.NoError(t, fulfillment.Fulfill(context.Background(), order.ID))
	assert.Equal(t, 0, mail.count(), "unpaid orders must not trigger delivery")
}

func TestFulfill_OrderNotFound(t *testing.T) {
	f := newFakeStore()
	fulfillment := NewFulfillment(f, &recordingMailer{}, "")
	err := fulfillment.Fulfill(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestFulfill_BuyerEmailFailureSurfaces(t *testing.T) {
	f := newFakeStore()
	mail := &recordingMailer{fail: true}
	fulfillment := NewFulfillment(f, mail, "")
	_, order := seedFulfillmentOrder(f, models.Product{
		Type:       domain.ProductTypeDigital,
		Name:       "Pack",
		Slug:       "pack",
		PriceCents: 100,
		Currency:   "INR",
		Status:     domain.ProductStatusActive,
	})

	assert.Error(t, fulfillment.Fulfill(context.Background(), order.ID))
}
