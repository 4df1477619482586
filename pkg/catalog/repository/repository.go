package repository

import (
	"context"
	"time"

	"astro/entities"
)

// Record is the constraint every catalog entity pointer satisfies.
type Record[T any] interface {
	*T
	Validate() error
}

// Repository is the CRUD surface shared by all six entities.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, v *T) error
	// Update loads the row, lets apply mutate it, then re-validates and saves it.
	Update(ctx context.Context, id uint, apply func(*T) error) (*T, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type ObservationRepository interface {
	Repository[entities.Observation]
	Search(ctx context.Context, f SearchFilter) ([]entities.ObservationView, error)
	FindViewByID(ctx context.Context, id uint) (*entities.ObservationView, error)
}

// SearchFilter holds optional criteria; nil fields are not applied. Date bounds are inclusive.
type SearchFilter struct {
	Start        *time.Time
	End          *time.Time
	ObjectID     *uint
	PlaceID      *uint
	InstrumentID *uint
	Limit        int // 0 = no limit
}
