package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"trademini-be/internal/config"
	"trademini-be/internal/dto"
	"trademini-be/internal/pkg/logger"
	"trademini-be/pkg/events"
	pktNats "trademini-be/pkg/nats"
	"trademini-be/pkg/panel"
	"trademini-be/pkg/telegram"

	"github.com/redis/go-redis/v9"
)

const webhookSecretKey = "bot:webhook_secret"

type IBotService interface {
	// Status returns the diagnostics panel data. Cached until a
	// mutation invalidates it; pass refresh to force a refetch.
	Status(ctx context.Context, refresh bool) (*dto.BotStatusResponse, error)

	// RotateWebhookSecret issues a fresh webhook secret and re-binds
	// the webhook with it. Old secret stops being accepted immediately.
	RotateWebhookSecret(ctx context.Context) (*dto.RotateWebhookSecretResponse, error)

	// Reset tears the webhook down and re-registers it, clearing any
	// stuck pending updates on Telegram's side.
	Reset(ctx context.Context) (*dto.ResetBotResponse, error)
}

type botService struct {
	bot            *telegram.BotClient
	rdb            *redis.Client
	cfg            *config.Config
	eventPublisher *pktNats.Publisher
	log            logger.ILogger

	// The status panel reuses the shared dashboard state machine: a
	// one-item list with invalidate-then-refetch after each mutation.
	status *panel.Controller[*dto.BotStatusResponse]
}

func NewBotService(
	bot *telegram.BotClient,
	rdb *redis.Client,
	cfg *config.Config,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IBotService {
	s := &botService{
		bot:            bot,
		rdb:            rdb,
		cfg:            cfg,
		eventPublisher: eventPublisher,
		log:            log,
	}
	s.status = panel.NewController("bot_status", s.fetchStatus, panelLogNotifier{log: log})
	return s
}

// panelLogNotifier routes panel failure notices into the service log.
type panelLogNotifier struct {
	log logger.ILogger
}

func (n panelLogNotifier) Notify(panelName, message string) {
	n.log.Warn("panel", message, map[string]interface{}{"panel": panelName})
}

func (s *botService) fetchStatus(ctx context.Context) ([]*dto.BotStatusResponse, error) {
	status := &dto.BotStatusResponse{CheckedAtUnix: time.Now().Unix()}

	me, err := s.bot.GetMe(ctx)
	if err != nil {
		// A degraded transport is still a reportable status; the panel
		// shows the bot as offline rather than erroring out.
		status.Online = false
		status.TransportDegraded = true
		status.TransportLastError = err.Error()
		return []*dto.BotStatusResponse{status}, nil
	}
	status.Online = true
	status.Username = me.Username

	info, err := s.bot.GetWebhookInfo(ctx)
	if err != nil {
		status.TransportDegraded = true
		status.TransportLastError = err.Error()
		return []*dto.BotStatusResponse{status}, nil
	}

	status.WebhookURL = info.URL
	status.PendingUpdates = info.PendingUpdateCount
	status.LastErrorDate = info.LastErrorDate
	status.LastErrorMessage = info.LastErrorMessage

	secret, err := s.rdb.Get(ctx, webhookSecretKey).Result()
	status.SecretConfigured = err == nil && secret != ""

	return []*dto.BotStatusResponse{status}, nil
}

func (s *botService) Status(ctx context.Context, refresh bool) (*dto.BotStatusResponse, error) {
	if refresh {
		s.status.Invalidate()
	}
	if err := s.status.Ensure(ctx); err != nil {
		return nil, err
	}
	items := s.status.Items()
	if len(items) == 0 {
		return nil, errors.New("bot status unavailable")
	}
	return items[0], nil
}

func newWebhookSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *botService) RotateWebhookSecret(ctx context.Context) (*dto.RotateWebhookSecretResponse, error) {
	err := s.status.Mutate(ctx, "webhook", func(ctx context.Context) error {
		secret, err := newWebhookSecret()
		if err != nil {
			return err
		}
		if err := s.bot.SetWebhook(ctx, s.cfg.Telegram.WebhookURL, secret); err != nil {
			return fmt.Errorf("rebind webhook: %w", err)
		}
		// Persist after Telegram accepted it; incoming updates are
		// checked against this value.
		return s.rdb.Set(ctx, webhookSecretKey, secret, 0).Err()
	})
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.BotWebhookRotated(s.cfg.Telegram.WebhookURL)); err != nil {
			s.log.Warn("bot", "failed to publish rotate event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.RotateWebhookSecretResponse{
		WebhookURL: s.cfg.Telegram.WebhookURL,
		RotatedAt:  time.Now().Unix(),
	}, nil
}

func (s *botService) Reset(ctx context.Context) (*dto.ResetBotResponse, error) {
	err := s.status.Mutate(ctx, "webhook", func(ctx context.Context) error {
		if err := s.bot.DeleteWebhook(ctx); err != nil {
			return fmt.Errorf("delete webhook: %w", err)
		}
		secret, err := s.rdb.Get(ctx, webhookSecretKey).Result()
		if err == redis.Nil {
			secret = ""
		} else if err != nil {
			return err
		}
		if err := s.bot.SetWebhook(ctx, s.cfg.Telegram.WebhookURL, secret); err != nil {
			return fmt.Errorf("re-register webhook: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.BotReset(s.cfg.Telegram.WebhookURL)); err != nil {
			s.log.Warn("bot", "failed to publish reset event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.ResetBotResponse{
		WebhookURL: s.cfg.Telegram.WebhookURL,
		ResetAt:    time.Now().Unix(),
	}, nil
}
