package service

import (
	"context"
	"fmt"
	"strings"

	"trademini-be/internal/pkg/logger"
	"trademini-be/pkg/events"
	pktNats "trademini-be/pkg/nats"

	"github.com/google/uuid"
)

type IEventTrailService interface {
	// Start attaches the durable consumer. Returns immediately; events
	// are handled on the subscription's own goroutine.
	Start() error
}

// eventTrailService folds bus events back into the admin audit log. The
// broadcast worker finishes deliveries asynchronously, so its completion
// record arrives here rather than from a request handler.
type eventTrailService struct {
	subscriber   *pktNats.Subscriber
	auditService IAuditService
	log          logger.ILogger
}

func NewEventTrailService(subscriber *pktNats.Subscriber, auditService IAuditService, log logger.ILogger) IEventTrailService {
	return &eventTrailService{
		subscriber:   subscriber,
		auditService: auditService,
		log:          log,
	}
}

func (s *eventTrailService) Start() error {
	if s.subscriber == nil {
		return nil
	}
	return s.subscriber.Subscribe(
		"events."+events.TypeBroadcastCompleted,
		"audit-trail",
		s.handleBroadcastCompleted,
	)
}

func (s *eventTrailService) handleBroadcastCompleted(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	table := "broadcast_messages"
	description := fmt.Sprintf("Broadcast %v finished: %v delivered, %v failed",
		payload["broadcast_id"], payload["success"], payload["failure"])

	// Bus events have no acting admin; the nil actor marks them as
	// system-originated in the log view.
	return s.auditService.Record(ctx, uuid.Nil,
		strings.TrimPrefix(event.EventType(), "events."),
		description, &table, nil, payload)
}
