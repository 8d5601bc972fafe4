package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository хранит черновики в Redis с TTL
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository создает репозиторий черновиков поверх Redis
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{
		client: client,
		prefix: prefix,
	}
}

// Put сохраняет черновик, перезаписывая предыдущий с тем же ключом
func (r *RedisRepository) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Put - set %s: %v", ErrStore, key, err)
	}
	return nil
}

// Take атомарно читает и удаляет черновик (GETDEL)
func (r *RedisRepository) Take(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.GetDel(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("%w: Take - getdel %s: %v", ErrStore, key, err)
	}
	return data, nil
}

func (r *RedisRepository) key(key string) string {
	return r.prefix + ":" + key
}
