package mapper

import (
	"trademini-be/internal/entity"
	"trademini-be/internal/model"
)

type PromoMapper struct{}

func NewPromoMapper() *PromoMapper {
	return &PromoMapper{}
}

func (m *PromoMapper) ToEntity(p *model.PromoCode) *entity.PromoCode {
	if p == nil {
		return nil
	}
	return &entity.PromoCode{
		Id:            p.Id,
		Code:          p.Code,
		DiscountType:  entity.DiscountType(p.DiscountType),
		DiscountValue: p.DiscountValue,
		MaxUses:       p.MaxUses,
		UseCount:      p.UseCount,
		IsActive:      p.IsActive,
		ExpiresAt:     p.ExpiresAt,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *PromoMapper) ToModel(p *entity.PromoCode) *model.PromoCode {
	if p == nil {
		return nil
	}
	return &model.PromoCode{
		Id:            p.Id,
		Code:          p.Code,
		DiscountType:  string(p.DiscountType),
		DiscountValue: p.DiscountValue,
		MaxUses:       p.MaxUses,
		UseCount:      p.UseCount,
		IsActive:      p.IsActive,
		ExpiresAt:     p.ExpiresAt,
		CreatedAt:     p.CreatedAt,
	}
}
