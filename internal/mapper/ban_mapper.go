package mapper

import (
	"trademini-be/internal/entity"
	"trademini-be/internal/model"
)

type BanMapper struct{}

func NewBanMapper() *BanMapper {
	return &BanMapper{}
}

func (m *BanMapper) ToEntity(b *model.Ban) *entity.Ban {
	if b == nil {
		return nil
	}
	return &entity.Ban{
		Id:         b.Id,
		TelegramId: b.TelegramId,
		Reason:     b.Reason,
		CreatedBy:  b.CreatedBy,
		CreatedAt:  b.CreatedAt,
		ExpiresAt:  b.ExpiresAt,
	}
}

func (m *BanMapper) ToModel(b *entity.Ban) *model.Ban {
	if b == nil {
		return nil
	}
	return &model.Ban{
		Id:         b.Id,
		TelegramId: b.TelegramId,
		Reason:     b.Reason,
		CreatedBy:  b.CreatedBy,
		CreatedAt:  b.CreatedAt,
		ExpiresAt:  b.ExpiresAt,
	}
}
