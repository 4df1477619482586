package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"astro/database"
	"astro/entities"
	"astro/pkg/apperr"
	"astro/pkg/catalog/repository"
)

type observationRepo struct {
	repository.Repository[entities.Observation]
	db *gorm.DB
}

func NewObservationRepository(db *gorm.DB) repository.ObservationRepository {
	return &observationRepo{Repository: New(db, repository.Observations), db: db}
}

// views selects observations joined with the names of everything they reference.
func (r *observationRepo) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Observation{}).
		Select(`observations.*,
			objects.name AS object_name,
			places.name AS place_name,
			instruments.name AS instrument_name,
			properties.name AS property_name`).
		Joins("JOIN objects ON objects.id = observations.object_id").
		Joins("JOIN places ON places.id = observations.place_id").
		Joins("JOIN instruments ON instruments.id = observations.instrument_id").
		Joins("LEFT JOIN properties ON properties.id = observations.property_id")
}

// Search ANDs together the criteria present in f, newest observation first.
func (r *observationRepo) Search(ctx context.Context, f repository.SearchFilter) ([]entities.ObservationView, error) {
	q := r.views(ctx)
	if f.Start != nil {
		q = q.Where("observations.observation_datetime >= ?", f.Start.UTC())
	}
	if f.End != nil {
		q = q.Where("observations.observation_datetime <= ?", f.End.UTC())
	}
	if f.ObjectID != nil {
		q = q.Where("observations.object_id = ?", *f.ObjectID)
	}
	if f.PlaceID != nil {
		q = q.Where("observations.place_id = ?", *f.PlaceID)
	}
	if f.InstrumentID != nil {
		q = q.Where("observations.instrument_id = ?", *f.InstrumentID)
	}
	q = q.Order("observations.observation_datetime DESC").Order("observations.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []entities.ObservationView
	if err := q.Scan(&out).Error; err != nil {
		return nil, database.Classify(err)
	}
	if out == nil {
		out = []entities.ObservationView{}
	}
	return out, nil
}

func (r *observationRepo) FindViewByID(ctx context.Context, id uint) (*entities.ObservationView, error) {
	var out []entities.ObservationView
	if err := r.views(ctx).Where("observations.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, database.Classify(err)
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("observation", id)
	}
	return &out[0], nil
}
