package product

import "context"

type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int64   `json:"stock"`
}

func (p Product) RecordID() int64 { return p.ID }

// Store is the product collection. Get, Update and Delete report a missing
// id with found=false rather than an error.
type Store interface {
	Create(ctx context.Context, p Product) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, bool, error)
	Update(ctx context.Context, id int64, apply func(*Product) error) (Product, bool, error)
	Delete(ctx context.Context, id int64) (Product, bool, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// Seed is the catalogue a fresh server starts with.
func Seed() []Product {
	return []Product{
		{ID: 1, Name: "Laptop", Price: 1200, Stock: 10},
		{ID: 2, Name: "Mouse", Price: 25, Stock: 50},
	}
}
