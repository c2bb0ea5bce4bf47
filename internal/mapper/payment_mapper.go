package mapper

import (
	"trademini-be/internal/entity"
	"trademini-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:          p.Id,
		UserId:      p.UserId,
		PlanId:      p.PlanId,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Method:      p.Method,
		Status:      entity.PaymentStatus(p.Status),
		ProviderRef: p.ProviderRef,
		ReviewedBy:  p.ReviewedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:          p.Id,
		UserId:      p.UserId,
		PlanId:      p.PlanId,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Method:      p.Method,
		Status:      string(p.Status),
		ProviderRef: p.ProviderRef,
		ReviewedBy:  p.ReviewedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
