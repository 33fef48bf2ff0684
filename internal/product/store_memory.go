package product

import (
	"context"

	"ShopAPI/internal/collection"
)

type MemStore struct {
	list *collection.List[Product]
}

// NewMemStore starts with exactly the given products.
func NewMemStore(seed ...Product) *MemStore {
	return &MemStore{list: collection.New(seed...)}
}

// NewStore returns the seeded in-memory store.
func NewStore() Store {
	return NewMemStore(Seed()...)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

// Create ignores p.ID and assigns the next one.
func (s *MemStore) Create(ctx context.Context, p Product) (Product, error) {
	return s.list.Insert(func(id int64) Product {
		p.ID = id
		return p
	}), nil
}

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	return s.list.All(), nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	p, ok := s.list.Find(id)
	return p, ok, nil
}

func (s *MemStore) Update(ctx context.Context, id int64, apply func(*Product) error) (Product, bool, error) {
	return s.list.Update(id, func(p *Product) error {
		err := apply(p)
		p.ID = id
		return err
	})
}

func (s *MemStore) Delete(ctx context.Context, id int64) (Product, bool, error) {
	p, ok := s.list.Remove(id)
	return p, ok, nil
}

func (s *MemStore) Count(ctx context.Context) (int, error) {
	return s.list.Len(), nil
}
