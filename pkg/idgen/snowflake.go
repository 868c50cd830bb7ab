package idgen

import (
	"fmt"
	"sync"
	"time"
)

// 雪花 ID：41 位毫秒时间戳 | 10 位节点 | 12 位序列号
// 用于账单事件的消息 key，保证跨实例唯一且趋势递增

const (
	epoch          = int64(1704067200000) // 2024-01-01 00:00:00 UTC
	nodeBits       = 10
	sequenceBits   = 12
	MaxNode        = -1 ^ (-1 << nodeBits)
	maxSequence    = -1 ^ (-1 << sequenceBits)
	nodeShift      = sequenceBits
	timestampShift = sequenceBits + nodeBits
)

type Snowflake struct {
	mu        sync.Mutex
	timestamp int64
	node      int64
	sequence  int64
	now       func() int64
}

var (
	defaultGenerator *Snowflake
	once             sync.Once
)

func NewSnowflake(node int64) (*Snowflake, error) {
	if node < 0 || node > MaxNode {
		return nil, fmt.Errorf("node 必须在 0-%d 之间: %d", MaxNode, node)
	}
	return &Snowflake{
		node: node,
		now:  func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// Init 初始化默认生成器，只生效一次
func Init(node int64) error {
	var err error
	once.Do(func() {
		defaultGenerator, err = NewSnowflake(node)
	})
	return err
}

// NextID 未调用 Init 时使用 node 1
func NextID() int64 {
	_ = Init(1)
	return defaultGenerator.Generate()
}

func (s *Snowflake) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if now == s.timestamp {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			// 序列号用完，等待下一毫秒
			for now <= s.timestamp {
				now = s.now()
			}
		}
	} else {
		s.sequence = 0
	}

	s.timestamp = now

	return ((now - epoch) << timestampShift) |
		(s.node << nodeShift) |
		s.sequence
}

// GenerateEventKey 账单事件 key，例如 EVT20240115143052_12345678
func GenerateEventKey() string {
	id := NextID()
	return fmt.Sprintf("EVT%s_%08d", time.Now().Format("20060102150405"), id%100000000)
}
