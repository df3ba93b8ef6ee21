package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	slotCacheKeyPrefix = "slots:available:"
	slotCacheTTL       = 5 * time.Minute
)

// SlotCache is a read-through cache for the available-slot listings, the
// hottest read path in the system. Invalidation is best effort: a failed
// delete only means a stale listing until the TTL expires, the booking
// transaction itself is never blocked on the cache.
type SlotCache interface {
	GetAvailable(ctx context.Context, clinicianID uuid.UUID, date time.Time) ([]entity.TimeSlot, bool)
	SetAvailable(ctx context.Context, clinicianID uuid.UUID, date time.Time, slots []entity.TimeSlot)
	Invalidate(ctx context.Context, clinicianID uuid.UUID, date time.Time)
}

type redisSlotCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotCache(redisClient *redis.Client, log *logrus.Logger) SlotCache {
	return &redisSlotCache{
		redisClient: redisClient,
		log:         log,
	}
}

func slotCacheKey(clinicianID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", slotCacheKeyPrefix, clinicianID.String(), date.Format("2006-01-02"))
}

func (c *redisSlotCache) GetAvailable(ctx context.Context, clinicianID uuid.UUID, date time.Time) ([]entity.TimeSlot, bool) {
	payload, err := c.redisClient.Get(ctx, slotCacheKey(clinicianID, date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read slot cache for clinician %s: %+v", clinicianID, err)
		}
		return nil, false
	}

	var slots []entity.TimeSlot
	if err := json.Unmarshal(payload, &slots); err != nil {
		c.log.Warnf("Failed to decode slot cache for clinician %s: %+v", clinicianID, err)
		return nil, false
	}
	return slots, true
}

func (c *redisSlotCache) SetAvailable(ctx context.Context, clinicianID uuid.UUID, date time.Time, slots []entity.TimeSlot) {
	payload, err := json.Marshal(slots)
	if err != nil {
		c.log.Warnf("Failed to encode slot cache for clinician %s: %+v", clinicianID, err)
		return
	}

	if err := c.redisClient.Set(ctx, slotCacheKey(clinicianID, date), payload, slotCacheTTL).Err(); err != nil {
		c.log.Warnf("Failed to write slot cache for clinician %s: %+v", clinicianID, err)
	}
}

func (c *redisSlotCache) Invalidate(ctx context.Context, clinicianID uuid.UUID, date time.Time) {
	if err := c.redisClient.Del(ctx, slotCacheKey(clinicianID, date)).Err(); err != nil {
		// Stale listing until TTL, non-fatal
		c.log.Warnf("Failed to invalidate slot cache for clinician %s: %+v", clinicianID, err)
	}
}
