package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const preferenceTTL = 30 * 24 * time.Hour

// Preferences live in Redis, not Postgres: per-device hints (selected
// plan, last seen screen) that survive reconnects but are disposable.
type Preferences struct {
	SelectedPlanId *uuid.UUID `json:"selected_plan_id,omitempty"`
	LastScreen     string     `json:"last_screen,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type IPreferenceService interface {
	Load(ctx context.Context, userId uuid.UUID) (*Preferences, error)
	SaveSelectedPlan(ctx context.Context, userId uuid.UUID, planId uuid.UUID) error
	SaveLastScreen(ctx context.Context, userId uuid.UUID, screen string) error
	Clear(ctx context.Context, userId uuid.UUID) error

	// BumpPlanTally counts plan selections for the analytics panel.
	BumpPlanTally(ctx context.Context, planId uuid.UUID) (int64, error)
}

type preferenceService struct {
	rdb *redis.Client
}

func NewPreferenceService(rdb *redis.Client) IPreferenceService {
	return &preferenceService{rdb: rdb}
}

func prefKey(userId uuid.UUID) string {
	return fmt.Sprintf("prefs:%s", userId)
}

func tallyKey(planId uuid.UUID) string {
	return fmt.Sprintf("plan_tally:%s", planId)
}

func (s *preferenceService) Load(ctx context.Context, userId uuid.UUID) (*Preferences, error) {
	raw, err := s.rdb.Get(ctx, prefKey(userId)).Bytes()
	if err == redis.Nil {
		return &Preferences{}, nil
	}
	if err != nil {
		return nil, err
	}

	var prefs Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		// Corrupt blob: start fresh rather than failing the session.
		return &Preferences{}, nil
	}
	return &prefs, nil
}

func (s *preferenceService) save(ctx context.Context, userId uuid.UUID, prefs *Preferences) error {
	prefs.UpdatedAt = time.Now()
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, prefKey(userId), raw, preferenceTTL).Err()
}

func (s *preferenceService) SaveSelectedPlan(ctx context.Context, userId uuid.UUID, planId uuid.UUID) error {
	prefs, err := s.Load(ctx, userId)
	if err != nil {
		return err
	}
	prefs.SelectedPlanId = &planId
	return s.save(ctx, userId, prefs)
}

func (s *preferenceService) SaveLastScreen(ctx context.Context, userId uuid.UUID, screen string) error {
	prefs, err := s.Load(ctx, userId)
	if err != nil {
		return err
	}
	prefs.LastScreen = screen
	return s.save(ctx, userId, prefs)
}

func (s *preferenceService) Clear(ctx context.Context, userId uuid.UUID) error {
	return s.rdb.Del(ctx, prefKey(userId)).Err()
}

func (s *preferenceService) BumpPlanTally(ctx context.Context, planId uuid.UUID) (int64, error) {
	return s.rdb.Incr(ctx, tallyKey(planId)).Result()
}
