package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

// Entry é uma resposta guardada com criação e expiração absolutas
type Entry struct {
	Key       string
	Value     any
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Stats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	Evictions  int64   `json:"evictions"`
	Expired    int64   `json:"expired"`
	HitRatio   float64 `json:"hit_ratio"`
}

// ResponseCache é um cache em memória com TTL por entrada e limite de entradas.
// No limite, primeiro remove as expiradas e depois a mais antiga por ordem de inserção
// (não é LRU: leitura não altera a ordem).
type ResponseCache struct {
	mu         sync.Mutex
	maxEntries int
	items      map[string]*list.Element
	order      *list.List // frente = inserida há mais tempo
	now        func() time.Time

	hits      int64
	misses    int64
	evictions int64
	expired   int64
}

type Option func(*ResponseCache)

// WithClock troca o relógio, usado nos testes de expiração
func WithClock(now func() time.Time) Option {
	return func(c *ResponseCache) {
		c.now = now
	}
}

func New(maxEntries int, opts ...Option) *ResponseCache {
	c := &ResponseCache{
		maxEntries: maxEntries,
		items:      make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get nunca devolve entrada expirada; a expirada é removida na hora
func (c *ResponseCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}

	entry := elem.Value.(*Entry)
	if c.now().After(entry.ExpiresAt) {
		c.removeElement(elem)
		c.expired++
		c.misses++
		return nil, false
	}

	c.hits++
	return entry.Value, true
}

// Set sobrescreve a chave existente, que passa a ser a mais recente
func (c *ResponseCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}

	if c.maxEntries > 0 && c.order.Len() >= c.maxEntries {
		c.expired += int64(c.purgeExpiredLocked(now))

		if c.order.Len() >= c.maxEntries {
			oldest := c.order.Front()
			logrus.WithField("key", oldest.Value.(*Entry).Key).Debug("cache: evicting oldest entry")
			c.removeElement(oldest)
			c.evictions++
		}
	}

	entry := &Entry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	c.items[key] = c.order.PushBack(entry)
}

func (c *ResponseCache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}

	c.removeElement(elem)
	return true
}

// PurgeExpired remove todas as entradas vencidas e retorna quantas saíram
func (c *ResponseCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.purgeExpiredLocked(c.now())
	c.expired += int64(removed)

	return removed
}

func (c *ResponseCache) DeletePrefix(prefix string) int {
	return c.DeleteFunc(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// DeleteFunc remove as chaves para as quais match retorna true
func (c *ResponseCache) DeleteFunc(match func(key string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if match(elem.Value.(*Entry).Key) {
			c.removeElement(elem)
			removed++
		}
		elem = next
	}

	return removed
}

func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

func (c *ResponseCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		Entries:    c.order.Len(),
		MaxEntries: c.maxEntries,
		Hits:       c.hits,
		Misses:     c.misses,
		Evictions:  c.evictions,
		Expired:    c.expired,
	}

	if total := c.hits + c.misses; total > 0 {
		stats.HitRatio = utils.RoundWithTwoDecimalPlace(float64(c.hits) / float64(total))
	}

	return stats
}

func (c *ResponseCache) purgeExpiredLocked(now time.Time) int {
	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*Entry).ExpiresAt) {
			c.removeElement(elem)
			removed++
		}
		elem = next
	}

	return removed
}

func (c *ResponseCache) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*Entry).Key)
}
