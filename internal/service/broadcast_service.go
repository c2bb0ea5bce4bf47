package service

import (
	"context"
	"encoding/json"
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

var ErrBroadcastNotFound = errors.New("broadcast not found")

type IBroadcastService interface {
	List(ctx context.Context) ([]*dto.BroadcastResponse, error)
	GetOne(ctx context.Context, id uuid.UUID) (*dto.BroadcastResponse, error)

	// Create persists the broadcast and queues it for the delivery
	// worker. The response carries status "scheduled"; progress arrives
	// over the console websocket.
	Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateBroadcastRequest) (*dto.BroadcastResponse, error)
}

type broadcastService struct {
	uowFactory       unitofwork.RepositoryFactory
	auditService     IAuditService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewBroadcastService(
	uowFactory unitofwork.RepositoryFactory,
	auditService IAuditService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IBroadcastService {
	return &broadcastService{
		uowFactory:       uowFactory,
		auditService:     auditService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func toBroadcastResponse(b *entity.BroadcastMessage) *dto.BroadcastResponse {
	return &dto.BroadcastResponse{
		Id:             b.Id,
		Title:          b.Title,
		Content:        b.Content,
		TargetAudience: b.TargetAudience,
		DeliveryStatus: string(b.DeliveryStatus),
		BadgeColor:     view.BroadcastBadgeColor(string(b.DeliveryStatus)),
		RecipientCount: b.RecipientCount,
		SuccessCount:   b.SuccessCount,
		FailureCount:   b.FailureCount,
		CreatedAt:      b.CreatedAt,
		ScheduledAt:    b.ScheduledAt,
		SentAt:         b.SentAt,
	}
}

func (s *broadcastService) List(ctx context.Context) ([]*dto.BroadcastResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	broadcasts, err := uow.BroadcastRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.BroadcastResponse, 0, len(broadcasts))
	for _, b := range broadcasts {
		res = append(res, toBroadcastResponse(b))
	}
	return res, nil
}

func (s *broadcastService) GetOne(ctx context.Context, id uuid.UUID) (*dto.BroadcastResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	b, err := uow.BroadcastRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBroadcastNotFound
	}
	return toBroadcastResponse(b), nil
}

func (s *broadcastService) Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateBroadcastRequest) (*dto.BroadcastResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	recipients, err := uow.UserRepository().TelegramIdsForAudience(ctx, req.TargetAudience)
	if err != nil {
		return nil, err
	}

	b := &entity.BroadcastMessage{
		Id:             uuid.New(),
		Title:          req.Title,
		TargetAudience: req.TargetAudience,
		DeliveryStatus: entity.BroadcastStatusScheduled,
		RecipientCount: len(recipients),
		CreatedBy:      &actorId,
		CreatedAt:      time.Now(),
		ScheduledAt:    req.ScheduledAt,
	}
	if req.Content != "" {
		content := req.Content
		b.Content = &content
	}

	if err := uow.BroadcastRepository().Create(ctx, b); err != nil {
		return nil, err
	}

	table := "broadcast_messages"
	_ = s.auditService.Record(ctx, actorId, "BROADCAST_CREATE",
		fmt.Sprintf("queued broadcast %q to %s (%d recipients)", req.Title, req.TargetAudience, len(recipients)),
		&table, nil, map[string]interface{}{
			"title":      req.Title,
			"audience":   req.TargetAudience,
			"recipients": len(recipients),
		})

	job, err := json.Marshal(dto.BroadcastJob{BroadcastId: b.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, job); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.BroadcastQueued(b.Id.String(), req.TargetAudience, len(recipients))); err != nil {
			fmt.Printf("Warn: failed to publish broadcast event: %v\n", err)
		}
	}

	return toBroadcastResponse(b), nil
}
