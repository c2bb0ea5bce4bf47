package mapper

import (
	"encoding/json"

	"trademini-be/internal/entity"
	"trademini-be/internal/model"

	"gorm.io/datatypes"
)

type PlanMapper struct{}

func NewPlanMapper() *PlanMapper {
	return &PlanMapper{}
}

func (m *PlanMapper) ToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	var features []string
	if len(p.Features) > 0 {
		// Corrupt feature blobs degrade to an empty list, not an error.
		_ = json.Unmarshal(p.Features, &features)
	}
	return &entity.Plan{
		Id:           p.Id,
		Name:         p.Name,
		Slug:         p.Slug,
		Price:        p.Price,
		Currency:     p.Currency,
		DurationDays: p.DurationDays,
		IsLifetime:   p.IsLifetime,
		Features:     features,
		IsActive:     p.IsActive,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
	}
}

func (m *PlanMapper) ToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	var features datatypes.JSON
	if p.Features != nil {
		raw, err := json.Marshal(p.Features)
		if err == nil {
			features = raw
		}
	}
	return &model.Plan{
		Id:           p.Id,
		Name:         p.Name,
		Slug:         p.Slug,
		Price:        p.Price,
		Currency:     p.Currency,
		DurationDays: p.DurationDays,
		IsLifetime:   p.IsLifetime,
		Features:     features,
		IsActive:     p.IsActive,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
	}
}
