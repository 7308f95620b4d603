package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	errs "github.com/streetcare/pointpay/internal/domain/error"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

// timeLayout is the single wire format for timestamps inside hash fields
const timeLayout = time.RFC3339Nano

// storeErr wraps a raw client error into the infrastructure failure
// category. Domain code matches on ErrStoreUnavailable, never on driver
// error strings.
func storeErr(err error) error {
	return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseUUID(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// score converts a timestamp into the sorted-set score used by every
// listing and history index
func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// rangeBounds renders a TimeRange as sorted-set score bounds
func rangeBounds(within persistence.TimeRange) (min, max string) {
	min, max = "-inf", "+inf"
	if !within.From.IsZero() {
		min = formatInt(within.From.UnixMilli())
	}
	if !within.To.IsZero() {
		max = formatInt(within.To.UnixMilli())
	}
	return min, max
}

// pageOffsets translates 1-based (page, limit) pagination into start/stop
// indexes for a sorted-set reverse range
func pageOffsets(page, limit int) (start, stop int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start = int64(page-1) * int64(limit)
	stop = start + int64(limit) - 1
	return start, stop
}

// zrevPage returns one newest-first page of member IDs plus the total
// cardinality of the index
func zrevPage(ctx context.Context, rdb *redis.Client, key string, page, limit int) ([]string, int64, error) {
	start, stop := pageOffsets(page, limit)

	ids, err := rdb.ZRevRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, 0, storeErr(err)
	}
	total, err := rdb.ZCard(ctx, key).Result()
	if err != nil {
		return nil, 0, storeErr(err)
	}
	return ids, total, nil
}

// zrevPageByScore returns one newest-first page of member IDs whose scores
// fall inside the given time range, plus the total count inside the range
func zrevPageByScore(ctx context.Context, rdb *redis.Client, key string, page, limit int, within persistence.TimeRange) ([]string, int64, error) {
	min, max := rangeBounds(within)
	start, _ := pageOffsets(page, limit)

	ids, err := rdb.ZRevRangeByScore(ctx, key, &redis.ZRangeBy{
		Min:    min,
		Max:    max,
		Offset: start,
		Count:  int64(limit),
	}).Result()
	if err != nil {
		return nil, 0, storeErr(err)
	}
	total, err := rdb.ZCount(ctx, key, min, max).Result()
	if err != nil {
		return nil, 0, storeErr(err)
	}
	return ids, total, nil
}

// getIndex resolves a secondary unique index to an ID string. A missing
// index returns notFound untouched so callers surface their own entity error.
func getIndex(ctx context.Context, rdb *redis.Client, key string, notFound error) (string, error) {
	val, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", notFound
	}
	if err != nil {
		return "", storeErr(err)
	}
	return val, nil
}
