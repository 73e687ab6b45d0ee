package screen

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"techmarket/internal/domain"
	"techmarket/internal/repository"
	"techmarket/internal/service"

	"go.uber.org/zap"
)

// gatedProductRepository is an in-memory store whose calls can be held open
// until the test releases them or the caller's context ends.
type gatedProductRepository struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
	err      error
	inserted []*domain.Product

	gate    chan struct{}
	started chan struct{}
	ctxErr  error
}

func newGatedProductRepository() *gatedProductRepository {
	return &gatedProductRepository{products: make(map[int64]*domain.Product), nextID: 1}
}

// hold makes the next calls block until release is called.
func (r *gatedProductRepository) hold() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gate = make(chan struct{})
	r.started = make(chan struct{}, 1)
}

func (r *gatedProductRepository) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	close(r.gate)
	r.gate = nil
}

func (r *gatedProductRepository) waitStarted(t *testing.T) {
	t.Helper()
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("store call never started")
	}
}

func (r *gatedProductRepository) enter(ctx context.Context) error {
	r.mu.Lock()
	gate, started, err := r.gate, r.started, r.err
	r.mu.Unlock()

	if gate == nil {
		return err
	}
	started <- struct{}{}
	select {
	case <-gate:
		return err
	case <-ctx.Done():
		r.mu.Lock()
		r.ctxErr = ctx.Err()
		r.mu.Unlock()
		return ctx.Err()
	}
}

func (r *gatedProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	if err := r.enter(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = r.nextID
	r.nextID++
	stored := *product
	r.products[product.ID] = &stored
	r.inserted = append(r.inserted, &stored)
	return nil
}

func (r *gatedProductRepository) ListOrdered(ctx context.Context) ([]*domain.Product, error) {
	if err := r.enter(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *gatedProductRepository) UpdateByID(ctx context.Context, id int64, patch domain.ProductPatch) ([]*domain.Product, error) {
	if err := r.enter(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	cp := *p
	return []*domain.Product{&cp}, nil
}

func (r *gatedProductRepository) DeleteByID(ctx context.Context, id int64) ([]*domain.Product, error) {
	if err := r.enter(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	delete(r.products, id)
	return []*domain.Product{p}, nil
}

type fakeAdminRepository struct {
	admins map[string]string
	err    error
}

func (f *fakeAdminRepository) FindByCredentials(ctx context.Context, name, senha string) (*domain.AdminCredential, error) {
	if f.err != nil {
		return nil, f.err
	}
	if stored, ok := f.admins[name]; ok && stored == senha {
		return &domain.AdminCredential{Name: name}, nil
	}
	return nil, repository.ErrAdminNotFound
}

func (f *fakeAdminRepository) FindByName(ctx context.Context, name string) (*domain.AdminCredential, error) {
	return nil, errors.New("not used")
}

type fixture struct {
	nav    *Navigator
	repo   *gatedProductRepository
	admins *fakeAdminRepository
	access *AccessScreen
	list   *ListScreen
	manage *ManageScreen
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithLogger(t, zap.NewNop())
}

func newFixtureWithLogger(t *testing.T, logger *zap.Logger) *fixture {
	t.Helper()

	nav := NewNavigator(context.Background(), logger)
	t.Cleanup(nav.Close)

	repo := newGatedProductRepository()
	admins := &fakeAdminRepository{admins: map[string]string{"root": "toor"}}

	accessService := service.NewAccessService(admins, service.AccessConfig{
		JWTSecret:          "test-secret",
		TokenTTL:           time.Minute,
		PlaintextPasswords: true,
	}, logger)
	productService := service.NewProductService(repo, "app-add", logger)

	return &fixture{
		nav:    nav,
		repo:   repo,
		admins: admins,
		access: NewAccessScreen(accessService, nav, logger),
		list:   NewListScreen(productService, nav, 40, logger),
		manage: NewManageScreen(productService, nav, logger),
	}
}
