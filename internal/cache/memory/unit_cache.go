package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
)

var _ ports.UnitCache = (*LRUCacheTTL)(nil)

type entry struct {
	id        string
	unit      *domain.OutputUnit
	expiresAt time.Time
}

// LRUCacheTTL — кэш выходных юнитов: LRU с ограничением ёмкости и скользящим TTL.
// Содержимое юнита кэшируется вместе с атрибутами; наружу отдаются копии.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	cache map[string]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		cache:    make(map[string]*list.Element),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, id string) (*domain.OutputUnit, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(c.ll.Len()))
		return nil, false
	}
	c.ll.MoveToFront(elem)
	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneUnit(ent.unit), true
}

func (c *LRUCacheTTL) Set(_ context.Context, unit *domain.OutputUnit) error {
	if unit == nil || unit.ID == "" {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[unit.ID]; ok {
		ent := elem.Value.(*entry)
		ent.unit = cloneUnit(unit)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        unit.ID,
		unit:      cloneUnit(unit),
		expiresAt: c.expiryFrom(now),
	})
	c.cache[unit.ID] = elem
	metrics.CacheSize.Set(float64(c.ll.Len()))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Len — число элементов (включая ещё не вычищенные просроченные).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
