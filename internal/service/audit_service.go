package service

import (
	"context"
	"time"

	"trademini-be/internal/dto"
	"trademini-be/internal/entity"
	"trademini-be/internal/pkg/logger"
	"trademini-be/internal/repository/specification"
	"trademini-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAuditService interface {
	// Record appends one audit entry. Best effort: callers log and
	// continue when it fails, the admin action itself already happened.
	Record(ctx context.Context, actorId uuid.UUID, actionType, description string, affectedTable *string, oldValues, newValues map[string]interface{}) error

	List(ctx context.Context, req *dto.AdminLogListRequest) ([]*dto.AdminLogResponse, int64, error)
	GetOne(ctx context.Context, id uuid.UUID) (*dto.AdminLogResponse, error)

	// File logs from the running service, as a second tab next to the
	// database audit trail.
	ServiceLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

type auditService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewAuditService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAuditService {
	return &auditService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *auditService) Record(ctx context.Context, actorId uuid.UUID, actionType, description string, affectedTable *string, oldValues, newValues map[string]interface{}) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry := &entity.AdminLog{
		Id:            uuid.New(),
		ActorId:       actorId,
		ActionType:    actionType,
		Description:   description,
		AffectedTable: affectedTable,
		OldValues:     oldValues,
		NewValues:     newValues,
		CreatedAt:     time.Now(),
	}

	if err := uow.AdminLogRepository().Create(ctx, entry); err != nil {
		s.log.Error("audit", "failed to record admin action", map[string]interface{}{
			"action_type": actionType,
			"error":       err.Error(),
		})
		return err
	}
	return nil
}

func toAdminLogResponse(log *entity.AdminLog) *dto.AdminLogResponse {
	return &dto.AdminLogResponse{
		Id:            log.Id,
		ActorId:       log.ActorId,
		ActionType:    log.ActionType,
		Description:   log.Description,
		AffectedTable: log.AffectedTable,
		OldValues:     log.OldValues,
		NewValues:     log.NewValues,
		CreatedAt:     log.CreatedAt,
	}
}

func (s *auditService) List(ctx context.Context, req *dto.AdminLogListRequest) ([]*dto.AdminLogResponse, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	countSpecs := []specification.Specification{}
	if req.ActionType != "" {
		filter := specification.Filter("action_type", req.ActionType)
		specs = append(specs, filter)
		countSpecs = append(countSpecs, filter)
	}

	logs, err := uow.AdminLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	total, err := uow.AdminLogRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, 0, err
	}

	res := make([]*dto.AdminLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, toAdminLogResponse(l))
	}
	return res, total, nil
}

func (s *auditService) GetOne(ctx context.Context, id uuid.UUID) (*dto.AdminLogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	log, err := uow.AdminLogRepository().FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, nil
	}
	return toAdminLogResponse(log), nil
}

func (s *auditService) ServiceLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.log.GetLogs(level, limit, offset)
}
