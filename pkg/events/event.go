package events

import "time"

// Event is the contract carried over the NATS bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "BAN_ADDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the admin console services.
const (
	TypeBanAdded           = "BAN_ADDED"
	TypeBanRemoved         = "BAN_REMOVED"
	TypeBroadcastQueued    = "BROADCAST_QUEUED"
	TypeBroadcastCompleted = "BROADCAST_COMPLETED"
	TypePaymentApproved    = "PAYMENT_APPROVED"
	TypePaymentRejected    = "PAYMENT_REJECTED"
	TypeBotWebhookRotated  = "BOT_WEBHOOK_ROTATED"
	TypeBotReset           = "BOT_RESET"
)

func newEvent(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = make(map[string]interface{})
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func BanAdded(telegramId int64, reason string, expiresAt *time.Time) Event {
	data := map[string]interface{}{"telegram_id": telegramId, "reason": reason}
	if expiresAt != nil {
		data["expires_at"] = expiresAt.Unix()
	}
	return newEvent(TypeBanAdded, data)
}

func BanRemoved(telegramId int64) Event {
	return newEvent(TypeBanRemoved, map[string]interface{}{"telegram_id": telegramId})
}

func BroadcastQueued(broadcastId string, audience string, recipients int) Event {
	return newEvent(TypeBroadcastQueued, map[string]interface{}{
		"broadcast_id": broadcastId,
		"audience":     audience,
		"recipients":   recipients,
	})
}

func BroadcastCompleted(broadcastId string, success, failure int) Event {
	return newEvent(TypeBroadcastCompleted, map[string]interface{}{
		"broadcast_id": broadcastId,
		"success":      success,
		"failure":      failure,
	})
}

func PaymentApproved(paymentId string, amount float64, currency string) Event {
	return newEvent(TypePaymentApproved, map[string]interface{}{
		"payment_id": paymentId,
		"amount":     amount,
		"currency":   currency,
	})
}

func PaymentRejected(paymentId string, reason string) Event {
	return newEvent(TypePaymentRejected, map[string]interface{}{
		"payment_id": paymentId,
		"reason":     reason,
	})
}

func BotWebhookRotated(webhookURL string) Event {
	return newEvent(TypeBotWebhookRotated, map[string]interface{}{"webhook_url": webhookURL})
}

func BotReset(webhookURL string) Event {
	return newEvent(TypeBotReset, map[string]interface{}{"webhook_url": webhookURL})
}
