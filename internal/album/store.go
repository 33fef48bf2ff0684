package album

import "context"

type Album struct {
	ID     int64  `json:"id"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Format string `json:"format"`
}

func (a Album) RecordID() int64 { return a.ID }

type Store interface {
	Create(ctx context.Context, a Album) (Album, error)
	List(ctx context.Context) ([]Album, error)
	Get(ctx context.Context, id int64) (Album, bool, error)
	Update(ctx context.Context, id int64, apply func(*Album) error) (Album, bool, error)
	Delete(ctx context.Context, id int64) (Album, bool, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

func Seed() []Album {
	return []Album{
		{ID: 1, Artist: "Pink Floyd", Title: "The Dark Side of the Moon", Format: "Vinyl"},
		{ID: 2, Artist: "Radiohead", Title: "OK Computer", Format: "CD"},
	}
}
