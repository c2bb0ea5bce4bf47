package mapper

import (
	"encoding/json"

	"trademini-be/internal/entity"
	"trademini-be/internal/model"

	"gorm.io/datatypes"
)

type AdminLogMapper struct{}

func NewAdminLogMapper() *AdminLogMapper {
	return &AdminLogMapper{}
}

func (m *AdminLogMapper) ToEntity(l *model.AdminLog) *entity.AdminLog {
	if l == nil {
		return nil
	}
	return &entity.AdminLog{
		Id:            l.Id,
		ActorId:       l.ActorId,
		ActionType:    l.ActionType,
		Description:   l.Description,
		AffectedTable: l.AffectedTable,
		OldValues:     decodeBlob(l.OldValues),
		NewValues:     decodeBlob(l.NewValues),
		CreatedAt:     l.CreatedAt,
	}
}

func (m *AdminLogMapper) ToModel(l *entity.AdminLog) *model.AdminLog {
	if l == nil {
		return nil
	}
	return &model.AdminLog{
		Id:            l.Id,
		ActorId:       l.ActorId,
		ActionType:    l.ActionType,
		Description:   l.Description,
		AffectedTable: l.AffectedTable,
		OldValues:     encodeBlob(l.OldValues),
		NewValues:     encodeBlob(l.NewValues),
		CreatedAt:     l.CreatedAt,
	}
}

func decodeBlob(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func encodeBlob(values map[string]interface{}) datatypes.JSON {
	if values == nil {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return raw
}
