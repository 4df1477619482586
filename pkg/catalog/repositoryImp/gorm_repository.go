package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"astro/database"
	"astro/pkg/apperr"
	"astro/pkg/catalog/repository"
)

// gormRepo implements repository.Repository once for every entity; the descriptor supplies
// table, foreign keys and back-references.
type gormRepo[T any, PT repository.Record[T]] struct {
	db   *gorm.DB
	desc repository.Descriptor[T]
}

func New[T any, PT repository.Record[T]](db *gorm.DB, desc repository.Descriptor[T]) repository.Repository[T] {
	return &gormRepo[T, PT]{db: db, desc: desc}
}

func (r *gormRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, database.Classify(err)
	}
	return out, nil
}

func (r *gormRepo[T, PT]) FindByID(ctx context.Context, id uint) (*T, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *gormRepo[T, PT]) Create(ctx context.Context, v *T) error {
	if err := PT(v).Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.checkForeignKeys(tx, v); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(v).Error; err != nil {
			return r.writeError(err)
		}
		return nil
	})
}

func (r *gormRepo[T, PT]) Update(ctx context.Context, id uint, apply func(*T) error) (*T, error) {
	var out *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := r.find(tx, id)
		if err != nil {
			return err
		}
		if err := apply(v); err != nil {
			return err
		}
		if err := PT(v).Validate(); err != nil {
			return err
		}
		if err := r.checkForeignKeys(tx, v); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(v).Error; err != nil {
			return r.writeError(err)
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete refuses to remove a row that other rows still reference.
func (r *gormRepo[T, PT]) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}
		for _, ref := range r.desc.ReferencedBy {
			var n int64
			err := tx.Table(ref.Table).
				Where(clause.Eq{Column: clause.Column{Name: ref.Column}, Value: id}).
				Count(&n).Error
			if err != nil {
				return database.Classify(err)
			}
			if n > 0 {
				return &apperr.ConflictError{Entity: r.desc.Entity, ID: id, ReferencedBy: ref.Table, Count: n}
			}
		}
		if err := tx.Delete(new(T), id).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return &apperr.ConflictError{Entity: r.desc.Entity, ID: id}
			}
			return database.Classify(err)
		}
		return nil
	})
}

func (r *gormRepo[T, PT]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, database.Classify(err)
	}
	return n, nil
}

func (r *gormRepo[T, PT]) find(tx *gorm.DB, id uint) (*T, error) {
	v := new(T)
	if err := tx.First(v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(r.desc.Entity, id)
		}
		return nil, database.Classify(err)
	}
	return v, nil
}

func (r *gormRepo[T, PT]) checkForeignKeys(tx *gorm.DB, v *T) error {
	for _, fk := range r.desc.ForeignKeys {
		ref := fk.Value(v)
		if ref == nil || *ref == 0 {
			continue
		}
		var n int64
		if err := tx.Table(fk.Table).Where("id = ?", *ref).Count(&n).Error; err != nil {
			return database.Classify(err)
		}
		if n == 0 {
			return apperr.Validation(fk.Field, fmt.Sprintf("%s %d does not exist", fk.Entity, *ref))
		}
	}
	return nil
}

func (r *gormRepo[T, PT]) writeError(err error) error {
	if database.IsForeignKeyViolation(err) {
		return apperr.Validation("", r.desc.Entity+" references a row that does not exist")
	}
	return database.Classify(err)
}
