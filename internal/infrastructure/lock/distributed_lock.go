package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 加锁：SET key value NX EX ttl
// 解锁：Lua 脚本比较 value 后删除，避免误删其他持有者的锁

var ErrLockFailed = errors.New("获取分布式锁失败")

const unlockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

type DistributedLock struct {
	client     *redis.Client
	key        string
	value      string
	expiration time.Duration
}

func NewDistributedLock(client *redis.Client, key, value string, expiration time.Duration) *DistributedLock {
	return &DistributedLock{
		client:     client,
		key:        key,
		value:      value,
		expiration: expiration,
	}
}

// TryLock 非阻塞
func (l *DistributedLock) TryLock(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, l.value, l.expiration).Result()
}

// Lock 按 retryInterval 重试，最多 maxRetries 次
func (l *DistributedLock) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		success, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if success {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrLockFailed
}

func (l *DistributedLock) Unlock(ctx context.Context) error {
	return l.client.Eval(ctx, unlockScript, []string{l.key}, l.value).Err()
}

func CustomerLockKey(customerID int64) string {
	return fmt.Sprintf("billing:lock:customer:%d", customerID)
}

// Locker 按客户维度串行化依赖客户存在性的写操作
// （创建交易、订阅、删除客户）
type Locker interface {
	LockCustomer(ctx context.Context, customerID int64, owner string) (unlock func(), err error)
}

type RedisLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
	maxRetries    int
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           10 * time.Second,
		retryInterval: 50 * time.Millisecond,
		maxRetries:    40,
	}
}

// WithRetry 调整抢锁重试间隔和次数
func (r *RedisLocker) WithRetry(interval time.Duration, maxRetries int) *RedisLocker {
	r.retryInterval = interval
	r.maxRetries = maxRetries
	return r
}

func (r *RedisLocker) LockCustomer(ctx context.Context, customerID int64, owner string) (func(), error) {
	l := NewDistributedLock(r.client, CustomerLockKey(customerID), owner, r.ttl)
	if err := l.Lock(ctx, r.retryInterval, r.maxRetries); err != nil {
		return nil, err
	}
	return func() {
		// 请求上下文可能已取消，释放锁使用独立上下文
		unlockCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = l.Unlock(unlockCtx)
	}, nil
}

// NopLocker redis 未启用时使用，依赖数据库事务隔离
type NopLocker struct{}

func (NopLocker) LockCustomer(context.Context, int64, string) (func(), error) {
	return func() {}, nil
}
