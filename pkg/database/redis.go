package database

import (
	"context"
	"fmt"
	"log"
	"sensory_sheets_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis 数据集缓存用。连接失败由调用方决定是否降级运行
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	log.Println("Redis connection established")
	return rdb, nil
}
