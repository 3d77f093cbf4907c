package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/domain/shopping"
	"github.com/forkcast/v1/internal/infrastructure/cache"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// GuestStore implements outbound.GuestStore on Redis. All of a guest's
// data carries the same TTL, refreshed on every write, so an abandoned
// guest id ages out as a unit. Checked state lives in a hash keyed by
// normalized ingredient name, apart from the list payload, so it
// survives regeneration.
type GuestStore struct {
	redis  *cache.RedisClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewGuestStore creates a new guest store.
func NewGuestStore(redis *cache.RedisClient, ttl time.Duration, logger *zap.Logger) outbound.GuestStore {
	return &GuestStore{
		redis:  redis,
		ttl:    ttl,
		logger: logger.Named("guest-store"),
	}
}

func planKey(guestID string, weekStart time.Time) string {
	return fmt.Sprintf("guest:%s:plan:%s", guestID, mealplan.FormatWeekStart(weekStart))
}

func listKey(guestID string, weekStart time.Time) string {
	return fmt.Sprintf("guest:%s:list:%s", guestID, mealplan.FormatWeekStart(weekStart))
}

func checkedKey(guestID string) string {
	return fmt.Sprintf("guest:%s:checked", guestID)
}

// SaveMealPlan stores the guest's plan for the week. Last write wins.
func (s *GuestStore) SaveMealPlan(ctx context.Context, guestID string, weekStart time.Time, entries []mealplan.Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode guest meal plan: %w", err)
	}
	return s.redis.Set(ctx, planKey(guestID, weekStart), payload, s.ttl)
}

// FindMealPlan returns the guest's plan for the week, or an empty slice
// when nothing has been saved.
func (s *GuestStore) FindMealPlan(ctx context.Context, guestID string, weekStart time.Time) ([]mealplan.Entry, error) {
	payload, err := s.redis.Get(ctx, planKey(guestID, weekStart))
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []mealplan.Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode guest meal plan: %w", err)
	}
	return entries, nil
}

// SaveList stores the guest's shopping list for the week.
func (s *GuestStore) SaveList(ctx context.Context, guestID string, weekStart time.Time, items []shopping.ListItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode guest shopping list: %w", err)
	}
	return s.redis.Set(ctx, listKey(guestID, weekStart), payload, s.ttl)
}

// FindList returns the guest's shopping list for the week, or an empty
// slice when none has been generated.
func (s *GuestStore) FindList(ctx context.Context, guestID string, weekStart time.Time) ([]shopping.ListItem, error) {
	payload, err := s.redis.Get(ctx, listKey(guestID, weekStart))
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []shopping.ListItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("failed to decode guest shopping list: %w", err)
	}
	return items, nil
}

// SetChecked records one ingredient's checked flag. Unchecking removes
// the hash field so the hash only ever holds checked names.
func (s *GuestStore) SetChecked(ctx context.Context, guestID, ingredientKey string, checked bool) error {
	client := s.redis.Client()
	key := checkedKey(guestID)

	if checked {
		if err := client.HSet(ctx, key, ingredientKey, "1").Err(); err != nil {
			return err
		}
	} else {
		if err := client.HDel(ctx, key, ingredientKey).Err(); err != nil {
			return err
		}
	}
	return client.Expire(ctx, key, s.ttl).Err()
}

// CheckedKeys returns the set of checked ingredient names.
func (s *GuestStore) CheckedKeys(ctx context.Context, guestID string) (map[string]bool, error) {
	fields, err := s.redis.Client().HGetAll(ctx, checkedKey(guestID)).Result()
	if err != nil {
		return nil, err
	}

	checked := make(map[string]bool, len(fields))
	for name := range fields {
		checked[name] = true
	}
	return checked, nil
}
