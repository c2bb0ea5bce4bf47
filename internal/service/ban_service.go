package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trademini-be/internal/dto"
	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"
	"trademini-be/internal/repository/unitofwork"
	"trademini-be/pkg/events"
	pktNats "trademini-be/pkg/nats"
	"trademini-be/pkg/view"

	"github.com/google/uuid"
)

var (
	ErrBanNotFound   = errors.New("ban not found")
	ErrAlreadyBanned = errors.New("telegram id is already banned")
	ErrUnknownAction = errors.New("unknown action")
)

type IBanService interface {
	// Execute multiplexes the bans panel request: one endpoint, the
	// action field selects list, add, or remove.
	Execute(ctx context.Context, actorId uuid.UUID, req *dto.BanActionRequest) ([]*dto.BanResponse, error)

	List(ctx context.Context) ([]*dto.BanResponse, error)
	Add(ctx context.Context, actorId uuid.UUID, req *dto.CreateBanRequest) (*dto.BanResponse, error)
	Remove(ctx context.Context, actorId uuid.UUID, banId uuid.UUID) error

	// IsBanned reports whether the telegram id carries a ban that has
	// not expired yet.
	IsBanned(ctx context.Context, telegramId string) (bool, error)
}

type banService struct {
	uowFactory     unitofwork.RepositoryFactory
	auditService   IAuditService
	eventPublisher *pktNats.Publisher
}

func NewBanService(uowFactory unitofwork.RepositoryFactory, auditService IAuditService, eventPublisher *pktNats.Publisher) IBanService {
	return &banService{
		uowFactory:     uowFactory,
		auditService:   auditService,
		eventPublisher: eventPublisher,
	}
}

func toBanResponse(ban *entity.Ban, now time.Time) *dto.BanResponse {
	return &dto.BanResponse{
		Id:         ban.Id,
		TelegramId: ban.TelegramId,
		Reason:     ban.Reason,
		CreatedBy:  ban.CreatedBy,
		CreatedAt:  ban.CreatedAt,
		ExpiresAt:  ban.ExpiresAt,
		Badge:      view.BanBadge(ban.ExpiresAt, now),
		Expired:    view.BanExpired(ban.ExpiresAt, now),
	}
}

func (s *banService) Execute(ctx context.Context, actorId uuid.UUID, req *dto.BanActionRequest) ([]*dto.BanResponse, error) {
	switch req.Action {
	case "list":
		return s.List(ctx)
	case "add":
		if _, err := s.Add(ctx, actorId, &dto.CreateBanRequest{
			TelegramId: req.TelegramId,
			Reason:     req.Reason,
			ExpiresAt:  req.ExpiresAt,
		}); err != nil {
			return nil, err
		}
		// Mutations answer with the refreshed list so the panel never
		// renders from its own guess of the new state.
		return s.List(ctx)
	case "remove":
		if req.BanId == nil {
			return nil, fmt.Errorf("ban_id is required for remove")
		}
		if err := s.Remove(ctx, actorId, *req.BanId); err != nil {
			return nil, err
		}
		return s.List(ctx)
	default:
		return nil, ErrUnknownAction
	}
}

func (s *banService) List(ctx context.Context) ([]*dto.BanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bans, err := uow.BanRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := make([]*dto.BanResponse, 0, len(bans))
	for _, b := range bans {
		res = append(res, toBanResponse(b, now))
	}
	return res, nil
}

func (s *banService) Add(ctx context.Context, actorId uuid.UUID, req *dto.CreateBanRequest) (*dto.BanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.BanRepository().FindOne(ctx, specification.ByTelegramID{TelegramID: req.TelegramId})
	if err != nil {
		return nil, err
	}
	if existing != nil && !view.BanExpired(existing.ExpiresAt, time.Now()) {
		return nil, ErrAlreadyBanned
	}

	ban := &entity.Ban{
		Id:         uuid.New(),
		TelegramId: req.TelegramId,
		CreatedBy:  &actorId,
		CreatedAt:  time.Now(),
		ExpiresAt:  req.ExpiresAt,
	}
	if req.Reason != "" {
		reason := req.Reason
		ban.Reason = &reason
	}

	if err := uow.BanRepository().Create(ctx, ban); err != nil {
		return nil, err
	}

	table := "bans"
	_ = s.auditService.Record(ctx, actorId, "BAN_ADD",
		fmt.Sprintf("banned telegram id %s", req.TelegramId), &table,
		nil, map[string]interface{}{
			"telegram_id": req.TelegramId,
			"reason":      req.Reason,
			"expires_at":  req.ExpiresAt,
		})

	if s.eventPublisher != nil {
		var tgId int64
		fmt.Sscanf(req.TelegramId, "%d", &tgId)
		if err := s.eventPublisher.Publish(ctx, events.BanAdded(tgId, req.Reason, req.ExpiresAt)); err != nil {
			// Event delivery is advisory; the ban itself is committed.
			fmt.Printf("Warn: failed to publish ban event: %v\n", err)
		}
	}

	return toBanResponse(ban, time.Now()), nil
}

func (s *banService) Remove(ctx context.Context, actorId uuid.UUID, banId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ban, err := uow.BanRepository().FindOne(ctx, specification.ByID{ID: banId})
	if err != nil {
		return err
	}
	if ban == nil {
		return ErrBanNotFound
	}

	if err := uow.BanRepository().Delete(ctx, banId); err != nil {
		return err
	}

	table := "bans"
	_ = s.auditService.Record(ctx, actorId, "BAN_REMOVE",
		fmt.Sprintf("unbanned telegram id %s", ban.TelegramId), &table,
		map[string]interface{}{"telegram_id": ban.TelegramId}, nil)

	if s.eventPublisher != nil {
		var tgId int64
		fmt.Sscanf(ban.TelegramId, "%d", &tgId)
		if err := s.eventPublisher.Publish(ctx, events.BanRemoved(tgId)); err != nil {
			fmt.Printf("Warn: failed to publish unban event: %v\n", err)
		}
	}

	return nil
}

func (s *banService) IsBanned(ctx context.Context, telegramId string) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ban, err := uow.BanRepository().FindOne(ctx, specification.ByTelegramID{TelegramID: telegramId})
	if err != nil {
		return false, err
	}
	if ban == nil {
		return false, nil
	}
	return !view.BanExpired(ban.ExpiresAt, time.Now()), nil
}
