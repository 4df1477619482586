package service

import (
	"context"
	"net/url"

	"astro/entities"
	"astro/pkg/catalog/repository"
)

// Input is a partial update for T. Nil fields leave the current value untouched.
type Input[T any] interface {
	Apply(*T) error
	FromForm(url.Values) error
}

// Service is the CRUD surface for Type, Property, Place, Instrument and Object.
type Service[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, in Input[T]) (*T, error)
	Update(ctx context.Context, id uint, in Input[T]) (*T, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// Relation names the parent an observation list is keyed by.
type Relation string

const (
	RelObject     Relation = "object"
	RelPlace      Relation = "place"
	RelInstrument Relation = "instrument"
)

// ObservationService works on joined views so callers always see display names.
type ObservationService interface {
	List(ctx context.Context) ([]entities.ObservationView, error)
	Get(ctx context.Context, id uint) (*entities.ObservationView, error)
	Create(ctx context.Context, in *ObservationInput) (*entities.ObservationView, error)
	Update(ctx context.Context, id uint, in *ObservationInput) (*entities.ObservationView, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, f repository.SearchFilter) ([]entities.ObservationView, error)
	// ListRelated fails with NotFound when the parent row does not exist.
	ListRelated(ctx context.Context, rel Relation, id uint) ([]entities.ObservationView, error)
	Recent(ctx context.Context, n int) ([]entities.ObservationView, error)
}
