package serviceImp

import (
	"context"
	"fmt"

	"astro/entities"
	"astro/pkg/apperr"
	"astro/pkg/catalog/repository"
	"astro/pkg/catalog/service"
)

type observationService struct {
	repo        repository.ObservationRepository
	objects     repository.Repository[entities.Object]
	places      repository.Repository[entities.Place]
	instruments repository.Repository[entities.Instrument]
}

func NewObservationService(
	repo repository.ObservationRepository,
	objects repository.Repository[entities.Object],
	places repository.Repository[entities.Place],
	instruments repository.Repository[entities.Instrument],
) service.ObservationService {
	return &observationService{repo: repo, objects: objects, places: places, instruments: instruments}
}

func (s *observationService) List(ctx context.Context) ([]entities.ObservationView, error) {
	return s.repo.Search(ctx, repository.SearchFilter{})
}

func (s *observationService) Get(ctx context.Context, id uint) (*entities.ObservationView, error) {
	return s.repo.FindViewByID(ctx, id)
}

func (s *observationService) Create(ctx context.Context, in *service.ObservationInput) (*entities.ObservationView, error) {
	var o entities.Observation
	if err := in.Apply(&o); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &o); err != nil {
		return nil, err
	}
	return s.repo.FindViewByID(ctx, o.ID)
}

func (s *observationService) Update(ctx context.Context, id uint, in *service.ObservationInput) (*entities.ObservationView, error) {
	if _, err := s.repo.Update(ctx, id, in.Apply); err != nil {
		return nil, err
	}
	return s.repo.FindViewByID(ctx, id)
}

func (s *observationService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *observationService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx) }

func (s *observationService) Search(ctx context.Context, f repository.SearchFilter) ([]entities.ObservationView, error) {
	return s.repo.Search(ctx, f)
}

func (s *observationService) ListRelated(ctx context.Context, rel service.Relation, id uint) ([]entities.ObservationView, error) {
	var (
		f   repository.SearchFilter
		err error
	)
	switch rel {
	case service.RelObject:
		_, err = s.objects.FindByID(ctx, id)
		f.ObjectID = &id
	case service.RelPlace:
		_, err = s.places.FindByID(ctx, id)
		f.PlaceID = &id
	case service.RelInstrument:
		_, err = s.instruments.FindByID(ctx, id)
		f.InstrumentID = &id
	default:
		return nil, apperr.Validation("relation", fmt.Sprintf("unknown relation %q", rel))
	}
	if err != nil {
		return nil, err
	}
	return s.repo.Search(ctx, f)
}

func (s *observationService) Recent(ctx context.Context, n int) ([]entities.ObservationView, error) {
	return s.repo.Search(ctx, repository.SearchFilter{Limit: n})
}
