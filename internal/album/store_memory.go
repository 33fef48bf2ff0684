package album

import (
	"context"

	"ShopAPI/internal/collection"
)

type MemStore struct {
	list *collection.List[Album]
}

func NewMemStore(seed ...Album) *MemStore {
	return &MemStore{list: collection.New(seed...)}
}

func NewStore() Store {
	return NewMemStore(Seed()...)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, a Album) (Album, error) {
	return s.list.Insert(func(id int64) Album {
		a.ID = id
		return a
	}), nil
}

func (s *MemStore) List(ctx context.Context) ([]Album, error) {
	return s.list.All(), nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (Album, bool, error) {
	a, ok := s.list.Find(id)
	return a, ok, nil
}

func (s *MemStore) Update(ctx context.Context, id int64, apply func(*Album) error) (Album, bool, error) {
	return s.list.Update(id, func(a *Album) error {
		err := apply(a)
		a.ID = id
		return err
	})
}

func (s *MemStore) Delete(ctx context.Context, id int64) (Album, bool, error) {
	a, ok := s.list.Remove(id)
	return a, ok, nil
}

func (s *MemStore) Count(ctx context.Context) (int, error) {
	return s.list.Len(), nil
}
