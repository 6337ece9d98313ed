package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopline/catalog-service/internal/domain"
)

// MemoryStore is an in-memory implementation of both repositories. It is safe
// for concurrent use and is intended for tests and local development.
type MemoryStore struct {
	mu           sync.RWMutex
	products     map[string]domain.Product
	productOrder []string
	users        map[string]domain.User
	userOrder    []string
	emails       map[string]string // email -> user id
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]domain.Product),
		users:    make(map[string]domain.User),
		emails:   make(map[string]string),
	}
}

// Products returns the product repository view of the store.
func (s *MemoryStore) Products() ProductRepository {
	return memoryProducts{s}
}

// Users returns the user repository view of the store.
func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := strings.Clone(*v)
	return &c
}

type memoryProducts struct{ s *MemoryStore }

func (m memoryProducts) Find(_ context.Context, titleFilter string) ([]domain.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	needle := strings.ToLower(titleFilter)
	products := make([]domain.Product, 0, len(m.s.productOrder))
	for _, id := range m.s.productOrder {
		p := m.s.products[id]
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (m memoryProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	p, ok := m.s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m memoryProducts) Create(_ context.Context, product *domain.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, exists := m.s.products[product.ID]; exists {
		return fmt.Errorf("products.create: %w", ErrDuplicateKey)
	}
	p := domain.Product{
		ID:    strings.Clone(product.ID),
		Title: strings.Clone(product.Title),
		Price: product.Price,
	}
	m.s.products[p.ID] = p
	m.s.productOrder = append(m.s.productOrder, p.ID)
	return nil
}

func (m memoryProducts) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	p, ok := m.s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	domain.ProductPatch{Title: cloneString(patch.Title), Price: patch.Price}.Apply(&p)
	m.s.products[p.ID] = p
	return &p, nil
}

func (m memoryProducts) Delete(_ context.Context, id string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.products[id]; !ok {
		return false, nil
	}
	delete(m.s.products, id)
	m.s.productOrder = removeID(m.s.productOrder, id)
	return true, nil
}

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) Find(_ context.Context) ([]domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	users := make([]domain.User, 0, len(m.s.userOrder))
	for _, id := range m.s.userOrder {
		users = append(users, m.s.users[id])
	}
	return users, nil
}

func (m memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	u, ok := m.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, exists := m.s.users[user.ID]; exists {
		return fmt.Errorf("users.create: %w", ErrDuplicateKey)
	}
	if _, taken := m.s.emails[user.Email]; taken {
		return fmt.Errorf("users.create: %w", ErrDuplicateKey)
	}
	u := *user
	u.ID = strings.Clone(user.ID)
	u.Email = strings.Clone(user.Email)
	u.FirstName = cloneString(user.FirstName)
	u.LastName = cloneString(user.LastName)
	m.s.users[u.ID] = u
	m.s.emails[u.Email] = u.ID
	m.s.userOrder = append(m.s.userOrder, u.ID)
	return nil
}

func (m memoryUsers) Update(_ context.Context, id string, changes domain.UserChanges) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	u, ok := m.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if changes.Email != nil {
		if owner, taken := m.s.emails[*changes.Email]; taken && owner != id {
			return nil, fmt.Errorf("users.update: %w", ErrDuplicateKey)
		}
	}

	oldEmail := u.Email
	changes.Email = cloneString(changes.Email)
	changes.FirstName = cloneString(changes.FirstName)
	changes.LastName = cloneString(changes.LastName)
	changes.Apply(&u)

	delete(m.s.emails, oldEmail)
	m.s.emails[u.Email] = u.ID
	m.s.users[u.ID] = u
	return &u, nil
}

func (m memoryUsers) Delete(_ context.Context, id string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	u, ok := m.s.users[id]
	if !ok {
		return false, nil
	}
	delete(m.s.users, id)
	delete(m.s.emails, u.Email)
	m.s.userOrder = removeID(m.s.userOrder, id)
	return true, nil
}
