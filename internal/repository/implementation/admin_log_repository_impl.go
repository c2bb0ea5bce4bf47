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

type AdminLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AdminLogMapper
}

func NewAdminLogRepository(db *gorm.DB) contract.AdminLogRepository {
	return &AdminLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewAdminLogMapper(),
	}
}

func (r *AdminLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AdminLogRepositoryImpl) Create(ctx context.Context, log *entity.AdminLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *AdminLogRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.AdminLog, error) {
	var m model.AdminLog
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AdminLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminLog, error) {
	var models []*model.AdminLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AdminLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *AdminLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AdminLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
