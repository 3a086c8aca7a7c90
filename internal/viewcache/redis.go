// Package viewcache кеш списков ссылок владельцев (дашборд).
//
// Мутации сбрасывают кеш владельца и увеличивают его поколение, следующее чтение списка
// заполняет кеш из хранилища. Список пишется в кеш, только если поколение не изменилось
// с момента чтения: иначе он мог быть прочитан из хранилища до мутации.
package viewcache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/fsdevblog/shortlinks/internal/models"
)

const (
	DefaultTTL = 5 * time.Minute
	// generationTTL живет дольше списка, чтобы поколение не обнулилось под активным кешем.
	generationTTL = 24 * time.Hour
	keyPrefix     = "shortlinks:"
)

// Redis кеш списков в redis.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Ключи владельца в одном hash slot, MGET работает и в кластере.
func listingKey(ownerID string) string {
	return keyPrefix + "{" + ownerID + "}:listing"
}

func generationKey(ownerID string) string {
	return keyPrefix + "{" + ownerID + "}:gen"
}

func parseGeneration(v any) (int64, error) {
	switch g := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseInt(g, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected generation type %T", v)
	}
}

func (r *Redis) Get(ctx context.Context, ownerID string) ([]models.Link, int64, bool, error) {
	vals, err := r.client.MGet(ctx, generationKey(ownerID), listingKey(ownerID)).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("get listing of %s: %w", ownerID, err)
	}

	gen, err := parseGeneration(vals[0])
	if err != nil {
		return nil, 0, false, fmt.Errorf("parse generation of %s: %w", ownerID, err)
	}

	data, ok := vals[1].(string)
	if !ok {
		return nil, gen, false, nil
	}
	var links []models.Link
	if unmarshalErr := json.Unmarshal([]byte(data), &links); unmarshalErr != nil {
		return nil, 0, false, fmt.Errorf("unmarshal listing of %s: %w", ownerID, unmarshalErr)
	}
	return links, gen, true, nil
}

// Set пишет список под WATCH ключа поколения. Если поколение уже другое или изменилось
// во время транзакции, запись молча пропускается.
func (r *Redis) Set(ctx context.Context, ownerID string, generation int64, links []models.Link) error {
	if links == nil {
		links = []models.Link{}
	}
	data, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("marshal listing of %s: %w", ownerID, err)
	}

	genKey := generationKey(ownerID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, getErr := tx.Get(ctx, genKey).Int64()
		if getErr != nil && !errors.Is(getErr, redis.Nil) {
			return getErr
		}
		if current != generation {
			return nil
		}
		_, pipeErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listingKey(ownerID), data, r.ttl)
			return nil
		})
		return pipeErr
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("set listing of %s: %w", ownerID, err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, ownerID string) error {
	genKey := generationKey(ownerID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, listingKey(ownerID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate listing of %s: %w", ownerID, err)
	}
	return nil
}

// Ping проверка соединения с redis.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
