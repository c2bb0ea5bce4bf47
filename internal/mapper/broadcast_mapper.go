package mapper

import (
	"trademini-be/internal/entity"
	"trademini-be/internal/model"
)

type BroadcastMapper struct{}

func NewBroadcastMapper() *BroadcastMapper {
	return &BroadcastMapper{}
}

func (m *BroadcastMapper) ToEntity(b *model.BroadcastMessage) *entity.BroadcastMessage {
	if b == nil {
		return nil
	}
	return &entity.BroadcastMessage{
		Id:             b.Id,
		Title:          b.Title,
		Content:        b.Content,
		TargetAudience: b.TargetAudience,
		DeliveryStatus: entity.BroadcastStatus(b.DeliveryStatus),
		RecipientCount: b.RecipientCount,
		SuccessCount:   b.SuccessCount,
		FailureCount:   b.FailureCount,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
		ScheduledAt:    b.ScheduledAt,
		SentAt:         b.SentAt,
	}
}

func (m *BroadcastMapper) ToModel(b *entity.BroadcastMessage) *model.BroadcastMessage {
	if b == nil {
		return nil
	}
	return &model.BroadcastMessage{
		Id:             b.Id,
		Title:          b.Title,
		Content:        b.Content,
		TargetAudience: b.TargetAudience,
		DeliveryStatus: string(b.DeliveryStatus),
		RecipientCount: b.RecipientCount,
		SuccessCount:   b.SuccessCount,
		FailureCount:   b.FailureCount,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
		ScheduledAt:    b.ScheduledAt,
		SentAt:         b.SentAt,
	}
}
