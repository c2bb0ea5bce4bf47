package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trademini-be/internal/dto"
	"trademini-be/internal/entity"
	"trademini-be/pkg/telegram"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workerTestTopic = "broadcast.jobs"

type workerFixture struct {
	pubSub     *gochannel.GoChannel
	broadcasts *fakeBroadcastRepo
	cancel     context.CancelFunc
}

func newWorkerFixture(t *testing.T) *workerFixture {
	t.Helper()

	botAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	t.Cleanup(botAPI.Close)

	broadcasts := newFakeBroadcastRepo()
	uow := &fakeUnitOfWork{
		broadcasts: broadcasts,
		users:      &fakeUserRepo{audience: map[string][]int64{entity.AudienceAll: {111}}},
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	bot := telegram.NewBotClient(botAPI.URL, "123456:test-bot-token")

	worker := NewBroadcastWorker(pubSub, workerTestTopic, &fakeFactory{uow: uow}, bot, nil, nil, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, worker.Consume(ctx))

	return &workerFixture{pubSub: pubSub, broadcasts: broadcasts, cancel: cancel}
}

func (f *workerFixture) enqueue(t *testing.T, id uuid.UUID) {
	t.Helper()
	payload, err := json.Marshal(dto.BroadcastJob{BroadcastId: id})
	require.NoError(t, err)
	require.NoError(t, f.pubSub.Publish(workerTestTopic, message.NewMessage(watermill.NewUUID(), payload)))
}

func newQueuedBroadcast(scheduledAt *time.Time) *entity.BroadcastMessage {
	content := "body"
	return &entity.BroadcastMessage{
		Id:             uuid.New(),
		Title:          "maintenance window",
		Content:        &content,
		TargetAudience: entity.AudienceAll,
		DeliveryStatus: entity.BroadcastStatusScheduled,
		RecipientCount: 1,
		CreatedAt:      time.Now(),
		ScheduledAt:    scheduledAt,
	}
}

func broadcastStatus(f *workerFixture, id uuid.UUID) entity.BroadcastStatus {
	b := f.broadcasts.get(id)
	if b == nil {
		return ""
	}
	return b.DeliveryStatus
}

func TestWorkerScheduledBroadcastDoesNotBlockQueue(t *testing.T) {
	f := newWorkerFixture(t)

	future := time.Now().Add(time.Hour)
	scheduled := newQueuedBroadcast(&future)
	immediate := newQueuedBroadcast(nil)
	f.broadcasts.put(scheduled)
	f.broadcasts.put(immediate)

	// The far-future job goes first; the immediate one must still
	// complete while it is parked.
	f.enqueue(t, scheduled.Id)
	f.enqueue(t, immediate.Id)

	assert.Eventually(t, func() bool {
		return broadcastStatus(f, immediate.Id) == entity.BroadcastStatusCompleted
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, entity.BroadcastStatusScheduled, broadcastStatus(f, scheduled.Id))
}

func TestWorkerScheduledBroadcastFiresWhenDue(t *testing.T) {
	f := newWorkerFixture(t)

	due := time.Now().Add(150 * time.Millisecond)
	scheduled := newQueuedBroadcast(&due)
	f.broadcasts.put(scheduled)
	f.enqueue(t, scheduled.Id)

	assert.Eventually(t, func() bool {
		return broadcastStatus(f, scheduled.Id) == entity.BroadcastStatusCompleted
	}, 3*time.Second, 10*time.Millisecond)

	final := f.broadcasts.get(scheduled.Id)
	require.NotNil(t, final)
	assert.Equal(t, 1, final.SuccessCount)
	assert.NotNil(t, final.SentAt)
}

func TestWorkerCancelledContextSkipsParkedBroadcast(t *testing.T) {
	f := newWorkerFixture(t)

	due := time.Now().Add(300 * time.Millisecond)
	scheduled := newQueuedBroadcast(&due)
	f.broadcasts.put(scheduled)
	f.enqueue(t, scheduled.Id)

	// Give the worker time to park the job, then shut down before the
	// timer fires.
	time.Sleep(50 * time.Millisecond)
	f.cancel()
	time.Sleep(400 * time.Millisecond)

	assert.Equal(t, entity.BroadcastStatusScheduled, broadcastStatus(f, scheduled.Id))
}
