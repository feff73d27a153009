package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gather/config"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

const (
	COUNTER_CACHE_TTL          = 10 * time.Minute
	HOSTED_EVENTS_KEY_PREFIX   = "hosted_events:"
	FRIEND_REQUESTS_KEY_PREFIX = "friend_requests:"
)

func InitRedis() error {
	if config.AppConfig == nil {
		return fmt.Errorf("AppConfig is not loaded")
	}

	redisConfig := config.AppConfig.Redis
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisConfig.Host, redisConfig.Port),
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	// Тест соединения
	_, err := RedisClient.Ping(context.Background()).Result()
	if err != nil {
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return nil
}

func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// GetCachedCounter читает счетчик из Redis. Возвращает (значение, найден).
// Redis опционален: при nil-клиенте или ошибке считаем, что кеша нет.
func GetCachedCounter(ctx context.Context, key string) (int64, bool) {
	if RedisClient == nil {
		return 0, false
	}
	val, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

// SetCachedCounter сохраняет счетчик с TTL, ошибки кеша не критичны
func SetCachedCounter(ctx context.Context, key string, count int64) {
	if RedisClient == nil {
		return
	}
	_ = RedisClient.Set(ctx, key, count, COUNTER_CACHE_TTL).Err()
}

// InvalidateCounter сбрасывает счетчик после записи в БД
func InvalidateCounter(ctx context.Context, key string) {
	if RedisClient == nil {
		return
	}
	_ = RedisClient.Del(ctx, key).Err()
}

func HostedEventsKey(userID int64) string {
	return fmt.Sprintf("%s%d", HOSTED_EVENTS_KEY_PREFIX, userID)
}

func FriendRequestsKey(userID int64) string {
	return fmt.Sprintf("%s%d", FRIEND_REQUESTS_KEY_PREFIX, userID)
}
