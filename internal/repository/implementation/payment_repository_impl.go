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

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var m model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var models []*model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Payment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

// paymentDetailRow is the scan target for the joined review query.
type paymentDetailRow struct {
	model.Payment
	UserTelegram *int64
	UserName     string
	PlanName     string
}

func (r *PaymentRepositoryImpl) GetDetails(ctx context.Context, status string, limit, offset int) ([]*entity.PaymentDetail, error) {
	var rows []paymentDetailRow
	query := r.db.WithContext(ctx).
		Table("payments").
		Select("payments.*, users.telegram_id AS user_telegram, users.full_name AS user_name, plans.name AS plan_name").
		Joins("JOIN users ON users.id = payments.user_id").
		Joins("JOIN plans ON plans.id = payments.plan_id").
		Order("payments.created_at DESC")

	if status != "" {
		query = query.Where("payments.status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	details := make([]*entity.PaymentDetail, len(rows))
	for i, row := range rows {
		details[i] = row.toDetail()
	}
	return details, nil
}

func (r *PaymentRepositoryImpl) GetDetail(ctx context.Context, id uuid.UUID) (*entity.PaymentDetail, error) {
	var row paymentDetailRow
	err := r.db.WithContext(ctx).
		Table("payments").
		Select("payments.*, users.telegram_id AS user_telegram, users.full_name AS user_name, plans.name AS plan_name").
		Joins("JOIN users ON users.id = payments.user_id").
		Joins("JOIN plans ON plans.id = payments.plan_id").
		Where("payments.id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDetail(), nil
}

func (row paymentDetailRow) toDetail() *entity.PaymentDetail {
	return &entity.PaymentDetail{
		Id:           row.Id,
		UserId:       row.UserId,
		UserTelegram: row.UserTelegram,
		UserName:     row.UserName,
		PlanName:     row.PlanName,
		Amount:       row.Amount,
		Currency:     row.Currency,
		Method:       row.Method,
		Status:       entity.PaymentStatus(row.Status),
		ProviderRef:  row.ProviderRef,
		CreatedAt:    row.CreatedAt,
	}
}

func (r *PaymentRepositoryImpl) GetTotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("status = ?", string(entity.PaymentStatusApproved)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *PaymentRepositoryImpl) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
