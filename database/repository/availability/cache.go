package availabilityRepo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"mentorbook/models"
)

// cachedAvailabilityRepo is a redis read-through cache in front of another repository.
// Writes go to the backing store first and then overwrite the cached date; a
// cleared date is cached as notPublished. Read fills only use SETNX so a slow
// reader never replaces what a later write stored.
type cachedAvailabilityRepo struct {
	next   AvailabilityRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedAvailabilityRepo wraps next with a redis cache of single-date lookups.
func NewCachedAvailabilityRepo(next AvailabilityRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) AvailabilityRepository {
	return &cachedAvailabilityRepo{next: next, client: client, ttl: ttl, logger: logger}
}

// notPublished marks a date known to have no schedule.
var notPublished = []byte("-")

func cacheKey(mentorID, date string) string {
	return fmt.Sprintf("schedule:%s:%s", mentorID, date)
}

func (r *cachedAvailabilityRepo) GetSchedule(ctx context.Context, mentorID, date string) (*models.DateSchedule, error) {
	key := cacheKey(mentorID, date)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil && bytes.Equal(data, notPublished):
		return nil, ErrNotFound
	case err == nil:
		var s models.DateSchedule
		if jsonErr := json.Unmarshal(data, &s); jsonErr == nil {
			return &s, nil
		}
		r.logger.Warn("dropping undecodable cached schedule", zap.String("key", key))
		_ = r.client.Del(ctx, key).Err()
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("schedule cache read failed", zap.String("key", key), zap.Error(err))
	}

	s, err := r.next.GetSchedule(ctx, mentorID, date)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(s); err == nil {
		if err := r.client.SetNX(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("schedule cache fill failed", zap.String("key", key), zap.Error(err))
		}
	}
	return s, nil
}

func (r *cachedAvailabilityRepo) ReplaceSchedule(ctx context.Context, schedule models.DateSchedule) error {
	if err := r.next.ReplaceSchedule(ctx, schedule); err != nil {
		return err
	}
	data, err := json.Marshal(schedule)
	if err != nil {
		r.evict(ctx, cacheKey(schedule.MentorID, schedule.Date))
		return nil
	}
	r.store(ctx, cacheKey(schedule.MentorID, schedule.Date), data)
	return nil
}

func (r *cachedAvailabilityRepo) DeleteSchedule(ctx context.Context, mentorID, date string) error {
	if err := r.next.DeleteSchedule(ctx, mentorID, date); err != nil {
		return err
	}
	r.store(ctx, cacheKey(mentorID, date), notPublished)
	return nil
}

func (r *cachedAvailabilityRepo) ListFrom(ctx context.Context, mentorID, fromDate string) ([]models.DateSchedule, error) {
	return r.next.ListFrom(ctx, mentorID, fromDate)
}

func (r *cachedAvailabilityRepo) evict(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("schedule cache eviction failed", zap.String("key", key), zap.Error(err))
	}
}

// store overwrites key after a write. If redis refuses, the key is evicted
// instead so readers fall through to the backing store.
func (r *cachedAvailabilityRepo) store(ctx context.Context, key string, data []byte) {
	err := r.client.Set(ctx, key, data, r.ttl).Err()
	if err == nil {
		return
	}
	r.logger.Warn("schedule cache write failed", zap.String("key", key), zap.Error(err))
	r.evict(ctx, key)
}
