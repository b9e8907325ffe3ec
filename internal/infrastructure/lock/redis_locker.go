// Package lock implementa attendance.StaffLocker: con Redis (bsm/redislock) para
// varias instancias, o en proceso cuando no hay Redis configurado.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/pkg/config"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var _ attendance.StaffLocker = (*RedisLocker)(nil)

const keyPrefix = "ivanstamas:attendance:staff:"

// RedisLocker bloqueo distribuido por staff.
type RedisLocker struct {
	client  *redislock.Client
	ttl     time.Duration
	retries int
	log     zerolog.Logger
}

// NewRedisClient crea el cliente go-redis y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 50,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// NewRedisLocker construye el locker. ttl acota cuánto puede retener el bloqueo una petición caída.
func NewRedisLocker(rdb redislock.RedisClient, ttl time.Duration, log zerolog.Logger) *RedisLocker {
	return &RedisLocker{
		client:  redislock.New(rdb),
		ttl:     ttl,
		retries: 20,
		log:     log,
	}
}

// Lock obtiene el bloqueo del staff reintentando con backoff lineal. Sin éxito devuelve domain.ErrBusy.
func (l *RedisLocker) Lock(ctx context.Context, staffID string) (func(), error) {
	key := keyPrefix + staffID
	lk, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		l.log.Warn().Str("staff_id", staffID).Msg("no se obtuvo el bloqueo del staff")
		return nil, domain.ErrBusy
	}
	if err != nil {
		return nil, fmt.Errorf("obtener bloqueo %s: %w", key, err)
	}
	return func() {
		// El contexto de la petición puede estar cancelado.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Str("staff_id", staffID).Msg("liberar bloqueo del staff")
		}
	}, nil
}
