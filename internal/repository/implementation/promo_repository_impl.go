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

type PromoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PromoMapper
}

func NewPromoRepository(db *gorm.DB) contract.PromoRepository {
	return &PromoRepositoryImpl{
		db:     db,
		mapper: mapper.NewPromoMapper(),
	}
}

func (r *PromoRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PromoRepositoryImpl) Create(ctx context.Context, promo *entity.PromoCode) error {
	m := r.mapper.ToModel(promo)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*promo = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromoRepositoryImpl) Update(ctx context.Context, promo *entity.PromoCode) error {
	m := r.mapper.ToModel(promo)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*promo = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromoRepositoryImpl) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	var m model.PromoCode
	if err := r.db.WithContext(ctx).First(&m, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PromoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromoCode, error) {
	var models []*model.PromoCode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.PromoCode, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PromoRepositoryImpl) IncrementUseCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PromoCode{}).
		Where("id = ?", id).
		Update("use_count", gorm.Expr("use_count + 1")).Error
}
