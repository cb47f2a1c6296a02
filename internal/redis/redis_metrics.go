package redis

import "sync/atomic"

// RedisMetrics - счётчики попаданий и промахов кеша геосервисов
type RedisMetrics struct {
	CacheHit  atomic.Uint64
	CacheMiss atomic.Uint64
}

// Hit отмечает попадание в кеш
func (m *RedisMetrics) Hit() {
	m.CacheHit.Add(1)
}

// Miss отмечает промах кеша
func (m *RedisMetrics) Miss() {
	m.CacheMiss.Add(1)
}

// Counts возвращает текущие значения счётчиков
func (m *RedisMetrics) Counts() (hits, misses uint64) {
	return m.CacheHit.Load(), m.CacheMiss.Load()
}
