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

type BroadcastRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BroadcastMapper
}

func NewBroadcastRepository(db *gorm.DB) contract.BroadcastRepository {
	return &BroadcastRepositoryImpl{
		db:     db,
		mapper: mapper.NewBroadcastMapper(),
	}
}

func (r *BroadcastRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BroadcastRepositoryImpl) Create(ctx context.Context, msg *entity.BroadcastMessage) error {
	m := r.mapper.ToModel(msg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.ToEntity(m)
	return nil
}

func (r *BroadcastRepositoryImpl) Update(ctx context.Context, msg *entity.BroadcastMessage) error {
	m := r.mapper.ToModel(msg)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.ToEntity(m)
	return nil
}

func (r *BroadcastRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BroadcastMessage, error) {
	var m model.BroadcastMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BroadcastRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BroadcastMessage, error) {
	var models []*model.BroadcastMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.BroadcastMessage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *BroadcastRepositoryImpl) UpdateCounters(ctx context.Context, id uuid.UUID, success, failure int) error {
	return r.db.WithContext(ctx).Model(&model.BroadcastMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"success_count": gorm.Expr("success_count + ?", success),
			"failure_count": gorm.Expr("failure_count + ?", failure),
		}).Error
}
