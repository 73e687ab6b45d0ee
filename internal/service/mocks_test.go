package service

import (
	"context"
	"sort"
	"sync"

	"techmarket/internal/domain"
	"techmarket/internal/repository"
)

// Mock repositories for testing
type mockProductRepository struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
	err      error

	inserted []*domain.Product
	patches  []domain.ProductPatch
	calls    int
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int64]*domain.Product),
		nextID:   1,
	}
}

func (m *mockProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	product.ID = m.nextID
	m.nextID++
	stored := *product
	m.products[product.ID] = &stored
	m.inserted = append(m.inserted, &stored)
	return nil
}

func (m *mockProductRepository) ListOrdered(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	products := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		cp := *p
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *mockProductRepository) UpdateByID(ctx context.Context, id int64, patch domain.ProductPatch) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.patches = append(m.patches, patch)
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return []*domain.Product{}, nil
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

func (m *mockProductRepository) DeleteByID(ctx context.Context, id int64) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return []*domain.Product{}, nil
	}
	delete(m.products, id)
	return []*domain.Product{p}, nil
}

type mockAdminRepository struct {
	admins map[string]string
	err    error
	calls  int
}

func newMockAdminRepository(admins map[string]string) *mockAdminRepository {
	return &mockAdminRepository{admins: admins}
}

func (m *mockAdminRepository) FindByCredentials(ctx context.Context, name, senha string) (*domain.AdminCredential, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if stored, ok := m.admins[name]; ok && stored == senha {
		return &domain.AdminCredential{Name: name}, nil
	}
	return nil, repository.ErrAdminNotFound
}

func (m *mockAdminRepository) FindByName(ctx context.Context, name string) (*domain.AdminCredential, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if stored, ok := m.admins[name]; ok {
		return &domain.AdminCredential{Name: name, Senha: stored}, nil
	}
	return nil, repository.ErrAdminNotFound
}
