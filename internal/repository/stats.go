package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const statsKeyPrefix = "mttt:"

var (
	ErrUnknownCounter = errors.New("unknown counter")
	ErrInvalidCounter = errors.New("counter value is not a decimal integer")
)

type StatsRepository interface {
	Increment(ctx context.Context, names ...string) error
	Get(ctx context.Context) (*entity.Stats, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) Increment(ctx context.Context, names ...string) error {
	if err := validateCounters(names); err != nil {
		return err
	}

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, name := range names {
			pipe.Incr(ctx, statsKeyPrefix+name)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to increment counters: %w", err)
	}

	return nil
}

func (that *dbStats) Get(ctx context.Context) (*entity.Stats, error) {
	keys := make([]string, 0, len(entity.StatNames))
	for _, name := range entity.StatNames {
		keys = append(keys, statsKeyPrefix+name)
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get counters: %w", err)
	}

	stats := &entity.Stats{}
	for i, value := range values {
		// missing keys come back as nil and count as zero
		raw, ok := value.(string)
		if !ok {
			continue
		}

		counter, err := parseCounter(entity.StatNames[i], raw)
		if err != nil {
			return nil, err
		}
		stats.Set(entity.StatNames[i], counter)
	}

	return stats, nil
}

func validateCounters(names []string) error {
	for _, name := range names {
		if !slices.Contains(entity.StatNames, name) {
			return fmt.Errorf("%w: %s", ErrUnknownCounter, name)
		}
	}

	return nil
}

func parseCounter(name, raw string) (int64, error) {
	counter, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidCounter, name, raw)
	}

	return counter, nil
}
