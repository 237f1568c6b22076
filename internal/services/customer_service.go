package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
	"laptop-storefront/internal/warranty"
)

// CustomerService maneja compras, garantías y seguimiento
type CustomerService struct {
	store    CustomerStore
	settings *SettingsService
	logger   *logrus.Entry
	now      func() time.Time
}

func NewCustomerService(store CustomerStore, settings *SettingsService, log logrus.FieldLogger) *CustomerService {
	return &CustomerService{
		store:    store,
		settings: settings,
		logger:   logger.Component(log, "services.customers"),
		now:      time.Now,
	}
}

func (s *CustomerService) List(ctx context.Context, q repository.CustomerQuery) ([]models.Customer, error) {
	return s.store.List(ctx, q)
}

func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	return s.store.Get(ctx, id)
}

func (s *CustomerService) Stats(ctx context.Context) (models.CustomerStats, error) {
	return s.store.Stats(ctx)
}

// Create registra una compra. La garantía viene del input, si no de la configuración.
func (s *CustomerService) Create(ctx context.Context, in *models.CustomerInput) (*models.Customer, error) {
	customer := &models.Customer{Status: models.CustomerActive}
	if err := s.apply(ctx, customer, in); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, customer); err != nil {
		return nil, err
	}
	warranty.Apply(customer, s.now())

	s.logger.WithFields(logrus.Fields{
		"customer_id":  customer.ID,
		"warranty_end": customer.WarrantyEndDate.Format(time.RFC3339),
	}).Info("customer created")
	return customer, nil
}

// Update reemplaza los campos editables
func (s *CustomerService) Update(ctx context.Context, id string, in *models.CustomerInput) (*models.Customer, error) {
	customer, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, customer, in); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, customer); err != nil {
		return nil, err
	}
	warranty.Apply(customer, s.now())
	return customer, nil
}

// SetStatus cambia el estado de seguimiento. Cualquier transición entre estados válidos está permitida.
func (s *CustomerService) SetStatus(ctx context.Context, id string, status models.CustomerStatus) error {
	if !status.Valid() {
		return models.NewValidationError("status", "unknown customer status %q", status)
	}
	return s.store.SetStatus(ctx, id, status)
}

// SendReminder solo registra la fecha; el envío real queda fuera del sistema
func (s *CustomerService) SendReminder(ctx context.Context, id string) (time.Time, error) {
	at := s.now().UTC()
	if err := s.store.MarkReminderSent(ctx, id, at); err != nil {
		return time.Time{}, err
	}
	s.logger.WithField("customer_id", id).Info("warranty reminder recorded")
	return at, nil
}

// RequestReview registra la fecha y pasa el cliente a Review Requested
func (s *CustomerService) RequestReview(ctx context.Context, id string) (time.Time, error) {
	at := s.now().UTC()
	if err := s.store.MarkReviewRequested(ctx, id, at); err != nil {
		return time.Time{}, err
	}
	s.logger.WithField("customer_id", id).Info("review request recorded")
	return at, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *CustomerService) BulkDelete(ctx context.Context, ids []string) models.BulkResult {
	var result models.BulkResult
	for _, id := range ids {
		result.Record(id, s.store.Delete(ctx, id))
	}
	s.logger.WithFields(logrus.Fields{
		"requested": result.Requested,
		"failed":    result.Failed,
	}).Info("bulk customer delete finished")
	return result
}

// apply valida el input y lo copia al cliente, calculando la fecha de fin de garantía
func (s *CustomerService) apply(ctx context.Context, c *models.Customer, in *models.CustomerInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return models.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(in.ProductName) == "" {
		return models.NewValidationError("productName", "productName is required")
	}
	if in.PurchaseDate.IsZero() {
		return models.NewValidationError("purchaseDate", "purchaseDate is required")
	}
	if in.WarrantyPeriodDays < 0 {
		return models.NewValidationError("warrantyPeriodDays", "warrantyPeriodDays cannot be negative")
	}
	if in.Status != "" && !in.Status.Valid() {
		return models.NewValidationError("status", "unknown customer status %q", in.Status)
	}

	days := in.WarrantyPeriodDays
	if days == 0 {
		days = models.DefaultWarrantyDays
		if s.settings != nil {
			days = s.settings.WarrantyDays(ctx)
		}
	}

	purchase := in.PurchaseDate.UTC()
	end := warranty.EndDate(purchase, days)
	if in.WarrantyEndDate != nil && !in.WarrantyEndDate.IsZero() {
		end = in.WarrantyEndDate.UTC()
		if end.Before(purchase) {
			return models.NewValidationError("warrantyEndDate", "warrantyEndDate cannot be before purchaseDate")
		}
	}

	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = in.Phone
	c.Address = in.Address
	c.ProductID = in.ProductID
	c.ProductName = in.ProductName
	c.PurchaseDate = purchase
	c.WarrantyPeriodDays = days
	c.WarrantyEndDate = end
	c.Notes = in.Notes
	if in.Status != "" {
		c.Status = in.Status
	}
	return nil
}
