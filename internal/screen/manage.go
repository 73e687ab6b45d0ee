package screen

import (
	"context"
	"fmt"
	"sync"

	"techmarket/internal/domain"
	"techmarket/internal/service"

	"go.uber.org/zap"
)

// Field names one input of the management form
type Field string

const (
	FieldID          Field = "id"
	FieldTitle       Field = "title"
	FieldPrice       Field = "price"
	FieldDescription Field = "description"
	FieldImage       Field = "image"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldID, FieldTitle, FieldPrice, FieldDescription, FieldImage}

// ManageScreen is the admin CRUD form. One loading flag guards all actions.
type ManageScreen struct {
	products service.ProductService
	nav      *Navigator
	logger   *zap.Logger

	mu      sync.Mutex
	form    domain.ProductForm
	loading bool
}

// NewManageScreen creates a new instance of ManageScreen
func NewManageScreen(products service.ProductService, nav *Navigator, logger *zap.Logger) *ManageScreen {
	return &ManageScreen{products: products, nav: nav, logger: logger}
}

// Set stores a typed value. Fields are not editable while loading.
func (s *ManageScreen) Set(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return fmt.Errorf("set %s: %s", field, service.MsgOperationInProgress)
	}

	switch field {
	case FieldID:
		s.form.ID = value
	case FieldTitle:
		s.form.Title = value
	case FieldPrice:
		s.form.Price = value
	case FieldDescription:
		s.form.Description = value
	case FieldImage:
		s.form.Image = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Form returns a copy of the current field values
func (s *ManageScreen) Form() domain.ProductForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Loading reports whether an operation is pending
func (s *ManageScreen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Clear empties all five fields.
func (s *ManageScreen) Clear() Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return busy()
	}
	s.form = domain.ProductForm{}
	return Alert{}
}

// Back returns to the access screen, abandoning any pending operation.
func (s *ManageScreen) Back() {
	s.nav.Navigate(domain.RouteAccess)
}

// Add creates a product from the form
func (s *ManageScreen) Add() Alert {
	return s.run("add", service.MsgProductCreated, func(ctx context.Context, form domain.ProductForm) error {
		_, err := s.products.Create(ctx, form)
		return err
	})
}

// Update patches the product with the form id using the filled fields
func (s *ManageScreen) Update() Alert {
	return s.run("update", service.MsgProductUpdated, func(ctx context.Context, form domain.ProductForm) error {
		_, err := s.products.Update(ctx, form)
		return err
	})
}

// Delete removes the product with the form id
func (s *ManageScreen) Delete() Alert {
	return s.run("delete", service.MsgProductDeleted, func(ctx context.Context, form domain.ProductForm) error {
		_, err := s.products.Delete(ctx, form)
		return err
	})
}

// run takes the loading flag, performs op against a snapshot of the form and
// clears the form on success.
func (s *ManageScreen) run(action, done string, op func(context.Context, domain.ProductForm) error) Alert {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return busy()
	}
	s.loading = true
	form := s.form
	s.mu.Unlock()

	visit := s.nav.Visit()
	err := op(visit.Context(), form)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if !s.nav.IsCurrent(visit) {
		s.logger.Debug("Discarding result for a screen no longer shown",
			zap.String("action", action),
			zap.Error(err),
		)
		return Alert{}
	}

	if err != nil {
		s.logger.Debug("Product action failed", zap.String("action", action), zap.Error(err))
		return alertFor(err, "Warning")
	}

	s.form = domain.ProductForm{}
	return success(done)
}
