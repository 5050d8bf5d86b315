package services

import (
	"cafe_pos/internal/models"
	"context"
	"errors"
)

// MessageSender delivers a text message to a phone number.
type MessageSender interface {
	SendTextMessage(ctx context.Context, phone, message string) error
}

// WhatsAppService sends sale and report messages to the shop owner.
type WhatsAppService interface {
	SaleNotifier
	SendMessage(ctx context.Context, phone, message string) error
	SendDailyReport(ctx context.Context, report models.DailyReport) error
	OwnerPhone() string
}

type whatsappService struct {
	client         MessageSender
	ownerPhone     string
	currency       string
	notifyEachSale bool
}

func NewWhatsAppService(client MessageSender, ownerPhone, currency string, notifyEachSale bool) WhatsAppService {
	return &whatsappService{
		client:         client,
		ownerPhone:     ownerPhone,
		currency:       currency,
		notifyEachSale: notifyEachSale,
	}
}

func (s *whatsappService) SendMessage(ctx context.Context, phone, message string) error {
	return s.client.SendTextMessage(ctx, phone, message)
}

// SaleCompleted forwards the sale to the owner when per-sale notifications are on.
func (s *whatsappService) SaleCompleted(ctx context.Context, sale models.Sale) error {
	if !s.notifyEachSale || s.ownerPhone == "" {
		return nil
	}
	return s.client.SendTextMessage(ctx, s.ownerPhone, FormatSaleMessage(sale, s.currency))
}

func (s *whatsappService) SendDailyReport(ctx context.Context, report models.DailyReport) error {
	if s.ownerPhone == "" {
		return errors.New("owner WhatsApp number is not configured")
	}
	return s.client.SendTextMessage(ctx, s.ownerPhone, FormatDailyReport(report, s.currency))
}

func (s *whatsappService) OwnerPhone() string {
	return s.ownerPhone
}
