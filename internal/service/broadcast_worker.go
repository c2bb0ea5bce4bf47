package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"trademini-be/internal/dto"
	"trademini-be/internal/entity"
	"trademini-be/internal/pkg/logger"
	"trademini-be/internal/repository/specification"
	"trademini-be/internal/repository/unitofwork"
	"trademini-be/internal/websocket"
	"trademini-be/pkg/events"
	pktNats "trademini-be/pkg/nats"
	"trademini-be/pkg/telegram"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// sendDelay paces delivery under Telegram's ~30 msg/s bot limit.
const sendDelay = 50 * time.Millisecond

type IBroadcastWorker interface {
	Consume(ctx context.Context) error
}

// broadcastWorker drains the delivery queue: resolves the audience,
// sends each message through the bot, bumps counters as it goes, and
// pushes progress frames to connected consoles.
type broadcastWorker struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	bot            *telegram.BotClient
	hub            *websocket.Hub
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewBroadcastWorker(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	bot *telegram.BotClient,
	hub *websocket.Hub,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IBroadcastWorker {
	return &broadcastWorker{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		bot:            bot,
		hub:            hub,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (w *broadcastWorker) Consume(ctx context.Context) error {
	messages, err := w.pubSub.Subscribe(ctx, w.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			w.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (w *broadcastWorker) processMessage(ctx context.Context, msg *message.Message) {
	var job dto.BroadcastJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		log.Printf("[ERROR] Failed to unmarshal broadcast job: %v", err)
		msg.Ack() // malformed jobs never become valid, do not retry
		return
	}

	uow := w.uowFactory.NewUnitOfWork(ctx)

	b, err := uow.BroadcastRepository().FindOne(ctx, specification.ByID{ID: job.BroadcastId})
	if err != nil {
		log.Printf("[ERROR] Failed to load broadcast %s: %v", job.BroadcastId, err)
		msg.Nack()
		return
	}
	if b == nil {
		log.Printf("[ERROR] Broadcast not found: %s", job.BroadcastId)
		msg.Ack()
		return
	}
	if b.DeliveryStatus != entity.BroadcastStatusScheduled {
		// Redelivered job for a broadcast another worker already took.
		msg.Ack()
		return
	}

	if b.ScheduledAt != nil && b.ScheduledAt.After(time.Now()) {
		// Park the job on its own timer so broadcasts queued behind it
		// keep flowing. The queue is in-memory, so acking here loses no
		// durability the held message would have had.
		go w.deliverAt(ctx, job.BroadcastId, *b.ScheduledAt)
		msg.Ack()
		return
	}

	if w.deliver(ctx, b) {
		msg.Ack()
	} else {
		msg.Nack()
	}
}

// deliverAt waits until the scheduled time and then runs the delivery,
// unless the broadcast was taken or cancelled in the meantime.
func (w *broadcastWorker) deliverAt(ctx context.Context, id uuid.UUID, due time.Time) {
	timer := time.NewTimer(time.Until(due))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	uow := w.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BroadcastRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		log.Printf("[ERROR] Failed to load scheduled broadcast %s: %v", id, err)
		return
	}
	if b == nil || b.DeliveryStatus != entity.BroadcastStatusScheduled {
		return
	}
	w.deliver(ctx, b)
}

// deliver runs one broadcast to completion. Returns false when the job
// should be redelivered.
func (w *broadcastWorker) deliver(ctx context.Context, b *entity.BroadcastMessage) bool {
	uow := w.uowFactory.NewUnitOfWork(ctx)

	b.DeliveryStatus = entity.BroadcastStatusSending
	if err := uow.BroadcastRepository().Update(ctx, b); err != nil {
		return false
	}

	recipients, err := uow.UserRepository().TelegramIdsForAudience(ctx, b.TargetAudience)
	if err != nil {
		log.Printf("[ERROR] Failed to resolve audience for %s: %v", b.Id, err)
		return false
	}

	text := b.Title
	if b.Content != nil && *b.Content != "" {
		text = "<b>" + b.Title + "</b>\n\n" + *b.Content
	}

	success, failure := 0, 0
	for i, chatId := range recipients {
		if err := w.bot.SendMessage(ctx, chatId, text); err != nil {
			failure++
			w.log.Warn("broadcast", "delivery failed", map[string]interface{}{
				"broadcast_id": b.Id,
				"chat_id":      chatId,
				"error":        err.Error(),
			})
		} else {
			success++
		}

		// Counter writes and progress frames every 25 sends keep the
		// console live without hammering the database.
		if (i+1)%25 == 0 || i+1 == len(recipients) {
			_ = uow.BroadcastRepository().UpdateCounters(ctx, b.Id, success, failure)
			w.pushProgress(b, success, failure, len(recipients))
			success, failure = 0, 0
		}

		time.Sleep(sendDelay)
	}

	final, err := uow.BroadcastRepository().FindOne(ctx, specification.ByID{ID: b.Id})
	if err != nil || final == nil {
		return true
	}

	now := time.Now()
	final.SentAt = &now
	if final.RecipientCount > 0 && final.SuccessCount == 0 {
		final.DeliveryStatus = entity.BroadcastStatusFailed
	} else {
		final.DeliveryStatus = entity.BroadcastStatusCompleted
	}
	if err := uow.BroadcastRepository().Update(ctx, final); err != nil {
		log.Printf("[ERROR] Failed to finalize broadcast %s: %v", b.Id, err)
	}

	w.pushProgress(final, 0, 0, final.RecipientCount)

	if w.eventPublisher != nil {
		evt := events.BroadcastCompleted(final.Id.String(), final.SuccessCount, final.FailureCount)
		if err := w.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("Warn: failed to publish broadcast completed event: %v", err)
		}
	}

	w.log.Info("broadcast", "delivery finished", map[string]interface{}{
		"broadcast_id": final.Id,
		"status":       final.DeliveryStatus,
		"success":      final.SuccessCount,
		"failure":      final.FailureCount,
	})

	return true
}

func (w *broadcastWorker) pushProgress(b *entity.BroadcastMessage, deltaSuccess, deltaFailure, total int) {
	if w.hub == nil {
		return
	}
	w.hub.Broadcast(websocket.ConsoleEvent{
		Type: "broadcast_progress",
		Data: map[string]interface{}{
			"broadcast_id": b.Id.String(),
			"status":       string(b.DeliveryStatus),
			"success":      b.SuccessCount + deltaSuccess,
			"failure":      b.FailureCount + deltaFailure,
			"total":        total,
		},
	})
}
