package serviceImp

import (
	"context"

	"astro/pkg/catalog/repository"
	"astro/pkg/catalog/service"
)

type crudService[T any] struct {
	repo repository.Repository[T]
}

func New[T any](repo repository.Repository[T]) service.Service[T] {
	return &crudService[T]{repo: repo}
}

func (s *crudService[T]) List(ctx context.Context) ([]T, error) { return s.repo.List(ctx) }

func (s *crudService[T]) Get(ctx context.Context, id uint) (*T, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *crudService[T]) Create(ctx context.Context, in service.Input[T]) (*T, error) {
	v := new(T)
	if err := in.Apply(v); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *crudService[T]) Update(ctx context.Context, id uint, in service.Input[T]) (*T, error) {
	return s.repo.Update(ctx, id, in.Apply)
}

func (s *crudService[T]) Delete(ctx context.Context, id uint) error { return s.repo.Delete(ctx, id) }

func (s *crudService[T]) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx) }
