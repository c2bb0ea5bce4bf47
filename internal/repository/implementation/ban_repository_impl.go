package implementation

import (
	"context"
	"errors"

	"trademini-be/internal/entity"
	"trademini-be/internal/mapper"
	"trademini-be/internal/model"
	"trademini-be/internal/repository/contract"
	"trademini-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BanMapper
}

func NewBanRepository(db *gorm.DB) contract.BanRepository {
	return &BanRepositoryImpl{
		db:     db,
		mapper: mapper.NewBanMapper(),
	}
}

func (r *BanRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BanRepositoryImpl) Create(ctx context.Context, ban *entity.Ban) error {
	m := r.mapper.ToModel(ban)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ban = *r.mapper.ToEntity(m)
	return nil
}

func (r *BanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Ban{}, id).Error
}

func (r *BanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ban, error) {
	var m model.Ban
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ban, error) {
	var models []*model.Ban
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Ban, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *BanRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Ban{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
