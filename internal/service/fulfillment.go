package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"creatorkart/internal/domain"
	"creatorkart/internal/models"
	"creatorkart/internal/money"
)

// EmailSender delivers fulfillment notifications. pkg/email provides the
// SMTP implementation; tests use a recording fake.
type EmailSender interface {
	Send(to, subject, body string) error
}

// Fulfillment resolves each line item's delivery instructions and notifies
// buyer and creator. Best-effort and retryable: it only acts on PAID orders
// and a resend sends the same content again.
type Fulfillment struct {
	store  Store
	mail   EmailSender
	appURL string
}

func NewFulfillment(store Store, mail EmailSender, appURL string) *Fulfillment {
	return &Fulfillment{store: store, mail: mail, appURL: appURL}
}

// Fulfill emails the buyer their delivery instructions and the creator a
// sale breakdown. Orders that are not PAID are skipped without error, so
// calling this before settlement (or twice after) is harmless.
func (f *Fulfillment) Fulfill(ctx context.Context, orderID uint) error {
	order, err := f.store.OrderForFulfillment(ctx, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusPaid {
		return nil
	}

	subject := "Your purchase"
	if len(order.Items) > 0 {
		subject = "Your purchase: " + order.Items[0].ProductNameSnapshot
	}
	if err := f.mail.Send(order.BuyerEmail, subject, f.buyerBody(order)); err != nil {
		log.Printf("[Fulfillment] buyer email failed for order %d: %v", order.ID, err)
		return err
	}

	if order.Creator.Email != "" {
		saleSubject := "New sale"
		if len(order.Items) > 0 {
			saleSubject = "New sale: " + order.Items[0].ProductNameSnapshot
		}
		if err := f.mail.Send(order.Creator.Email, saleSubject, f.creatorBody(order)); err != nil {
			log.Printf("[Fulfillment] creator email failed for order %d: %v", order.ID, err)
		}
	}
	return nil
}

func (f *Fulfillment) buyerBody(order *models.Order) string {
	var b strings.Builder
	b.WriteString("Thanks for your purchase!\n\n")
	fmt.Fprintf(&b, "Order: %s\n", order.Reference)
	fmt.Fprintf(&b, "Total: %s\n\n", money.Format(order.AmountTotalCents, order.Currency))

	for _, item := range order.Items {
		fmt.Fprintf(&b, "Product: %s\n", item.ProductNameSnapshot)
		for _, line := range deliveryLines(&item.Product) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("If you have any issues, reply to this email and the creator will help.\n")
	return b.String()
}

// deliveryLines resolves the human-readable delivery instruction for one
// product by type.
func deliveryLines(p *models.Product) []string {
	switch p.Type {
	case domain.ProductTypeDigital:
		lines := []string{"Type: Digital product"}
		if (p.DeliveryMethod == domain.DeliveryMethodLink || p.DeliveryMethod == domain.DeliveryMethodFile) && p.DeliveryAssetURL != "" {
			lines = append(lines, "Delivery: "+p.DeliveryAssetURL)
		} else {
			lines = append(lines, "Delivery: (creator will share the asset)")
		}
		return lines
	case domain.ProductTypeSession:
		return []string{
			"Type: Paid 1:1 session",
			"Scheduling: Creator will contact you after purchase.",
		}
	case domain.ProductTypeTelegram:
		lines := []string{
			"Type: Telegram entitlement",
			"Access: Creator will send an invite link after purchase.",
		}
		if p.DeliveryAssetURL != "" {
			lines = append(lines, "Invite link: "+p.DeliveryAssetURL)
		}
		return lines
	}
	return nil
}

func (f *Fulfillment) creatorBody(order *models.Order) string {
	var b strings.Builder
	b.WriteString("You made a sale!\n\n")
	fmt.Fprintf(&b, "Order: %s\n", order.Reference)
	fmt.Fprintf(&b, "Buyer: %s (%s, %s)\n", order.BuyerName, order.BuyerEmail, order.BuyerPhone)
	fmt.Fprintf(&b, "Gross: %s\n", money.Format(order.AmountTotalCents, order.Currency))
	fmt.Fprintf(&b, "Net credited: %s\n", money.Format(order.CreatorNetCents, order.Currency))
	if f.appURL != "" && order.Creator.CreatorProfile != nil {
		fmt.Fprintf(&b, "\nOpen storefront: %s/%s\n", f.appURL, order.Creator.CreatorProfile.Slug)
	}
	return b.String()
}
