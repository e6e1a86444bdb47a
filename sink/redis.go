package sink

import (
	"context"
	"fmt"

	"dlc-rules/rule"

	"github.com/redis/go-redis/v9"
)

const redisBatchSize = 1000

// Redis Redis 键值输出端，键为 prefix+domain
type Redis struct {
	client  *redis.Client
	prefix  string
	pipe    redis.Pipeliner
	pending int
}

// NewRedis 创建 Redis 输出端
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
		pipe:   client.Pipeline(),
	}
}

// Write 加入管道，满一批时发送；管道内按写入顺序执行，后写覆盖先写
func (r *Redis) Write(rec rule.Record) error {
	ctx := context.Background()

	r.pipe.Set(ctx, r.prefix+rec.Domain, string(rec.Action), 0)
	r.pending++

	if r.pending >= redisBatchSize {
		return r.flush(ctx)
	}
	return nil
}

func (r *Redis) flush(ctx context.Context) error {
	if r.pending == 0 {
		return nil
	}
	r.pending = 0
	if _, err := r.pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入 Redis 失败: %w", err)
	}
	return nil
}

// Commit 发送剩余的写入
func (r *Redis) Commit() error {
	return r.flush(context.Background())
}

// Clear 删除所有 prefix 前缀的键
func (r *Redis) Clear() error {
	ctx := context.Background()

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}

	return iter.Err()
}

// Close 丢弃未发送的写入，客户端由调用方关闭
func (r *Redis) Close() error {
	r.pipe.Discard()
	r.pending = 0
	return nil
}
