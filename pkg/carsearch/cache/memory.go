package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

// DefaultCapacity bounds the in-memory cache when no capacity is given.
const DefaultCapacity = 512

type entry struct {
	key      string
	payload  []dal.Car
	storedAt time.Time
}

// Memory is a bounded in-memory cache: least-recently-used entries are
// evicted once capacity is reached, and entries older than the TTL are
// ignored on read and reclaimed lazily.
type Memory struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recently used
	items    map[string]*list.Element
	now      func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithCapacity sets the maximum number of entries.
func WithCapacity(n int) MemoryOption {
	return func(m *Memory) { m.capacity = n }
}

// WithTTL overrides the entry time-to-live.
func WithTTL(d time.Duration) MemoryOption {
	return func(m *Memory) { m.ttl = d }
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory returns an empty cache with DefaultCapacity and DefaultTTL.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		capacity: DefaultCapacity,
		ttl:      DefaultTTL,
		order:    list.New(),
		items:    make(map[string]*list.Element),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the payload stored under key if it has not expired. A hit
// refreshes the entry's recency.
func (m *Memory) Get(_ context.Context, key string) ([]dal.Car, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if m.now().Sub(e.storedAt) >= m.ttl {
		m.order.Remove(el)
		delete(m.items, key)
		return nil, false
	}
	m.order.MoveToFront(el)
	return e.payload, true
}

// Put stores payload under key, overwriting any existing entry and evicting
// the least-recently-used entry if the cache is full.
func (m *Memory) Put(_ context.Context, key string, payload []dal.Car) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.items[key]; ok {
		e := el.Value.(*entry)
		e.payload = payload
		e.storedAt = m.now()
		m.order.MoveToFront(el)
		return
	}
	if m.order.Len() >= m.capacity {
		oldest := m.order.Back()
		if oldest != nil {
			m.order.Remove(oldest)
			delete(m.items, oldest.Value.(*entry).key)
		}
	}
	el := m.order.PushFront(&entry{key: key, payload: payload, storedAt: m.now()})
	m.items[key] = el
}

// Scan visits live entries in recency order until fn returns false.
func (m *Memory) Scan(_ context.Context, fn func(key string, payload []dal.Car) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for el := m.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry)
		if now.Sub(e.storedAt) >= m.ttl {
			continue
		}
		if !fn(e.key, e.payload) {
			return
		}
	}
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
