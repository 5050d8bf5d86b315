package services

import (
	"cafe_pos/internal/models"
	"context"
	"errors"
)

// SaleNotifier is told about every sale after it has been stored.
type SaleNotifier interface {
	SaleCompleted(ctx context.Context, sale models.Sale) error
}

// Notifiers fans a sale out to every notifier and joins their errors.
type Notifiers []SaleNotifier

func (n Notifiers) SaleCompleted(ctx context.Context, sale models.Sale) error {
	var errs []error
	for _, notifier := range n {
		if err := notifier.SaleCompleted(ctx, sale); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
