// Package searchcache keeps slot search results in Redis for a short TTL.
package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const keyPrefix = "availability:search:"

var (
	// ErrCacheGet возвращается при ошибке чтения из Redis
	ErrCacheGet = errors.New("searchcache: failed to get value")

	// ErrCacheSet возвращается при ошибке записи в Redis
	ErrCacheSet = errors.New("searchcache: failed to set value")

	// ErrMarshal возвращается при ошибке сериализации значения
	ErrMarshal = errors.New("searchcache: failed to marshal value")
)

// Cache кэш результатов поиска слотов
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewClient создает клиент Redis и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("searchcache: failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewCache создает кэш поверх клиента Redis
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get читает закэшированный результат в dest
// Возвращает false, если ключа нет
func (c *Cache) Get(ctx context.Context, criteria domain.SlotSearchCriteria, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, Key(criteria)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrCacheGet, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	return true, nil
}

// Set сохраняет результат поиска на время TTL
func (c *Cache) Set(ctx context.Context, criteria domain.SlotSearchCriteria, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := c.client.Set(ctx, Key(criteria), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheSet, err)
	}
	return nil
}

// Key строит ключ кэша; одинаковые критерии дают одинаковый ключ
func Key(c domain.SlotSearchCriteria) string {
	parts := []string{
		"specialization=" + stringOrEmpty(c.Specialization),
		"loc=" + enumOrEmpty(c.LocationType),
		"appt=" + enumOrEmpty(c.AppointmentType),
		"from=" + timeOrEmpty(c.From),
		"to=" + timeOrEmpty(c.To),
		"min=" + floatOrEmpty(c.MinPrice),
		"max=" + floatOrEmpty(c.MaxPrice),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return "-"
	}
	return strconv.Quote(*s)
}

func enumOrEmpty[T ~string](v *T) string {
	if v == nil {
		return "-"
	}
	return string(*v)
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
