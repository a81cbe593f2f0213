package session

import (
	"strings"
	"sync"
	"time"

	"github.com/trendsight-boutique/internal/cart"

	"github.com/google/uuid"
)

// Store 会话购物车存储（仅进程内存，不持久化）
// 每个会话持有独立的互斥锁，同一购物车的操作按到达顺序串行执行。
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

type entry struct {
	mu   sync.Mutex
	cart *cart.Cart

	// 以下字段由 Store.mu 保护
	refs     int
	lastSeen time.Time
}

// NewStore 创建会话存储
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// NewID 生成新的会话 ID
func NewID() string {
	return uuid.NewString()
}

// ValidID 校验会话 ID 格式
func ValidID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}

// Do 在会话锁内操作购物车；会话不存在时创建空购物车
func (s *Store) Do(id string, fn func(c *cart.Cart)) {
	e := s.acquire(id)
	defer s.release(e)
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn != nil {
		fn(e.cart)
	}
}

// Drop 丢弃会话购物车；进行中的操作作用于旧购物车，之后的访问得到新的空购物车
func (s *Store) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len 当前会话数量
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// EvictIdle 清理超过 idle 未访问的会话，返回清理数量
func (s *Store) EvictIdle(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, e := range s.entries {
		if e.refs > 0 {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}

func (s *Store) acquire(id string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{cart: cart.New()}
		s.entries[id] = e
	}
	e.refs++
	e.lastSeen = s.now()
	return e
}

func (s *Store) release(e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.refs--
	e.lastSeen = s.now()
}
