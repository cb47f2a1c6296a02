package mapscreen

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"travel-map/internal/logger"
	"travel-map/internal/metrics"

	"github.com/google/uuid"
)

// ErrSessionNotFound - сессии экрана карты с таким id нет
var ErrSessionNotFound = errors.New("map session not found")

// LocatorFactory возвращает Locator для конкретного устройства
type LocatorFactory func(deviceID string) Locator

type session struct {
	coordinator *Coordinator
	deviceID    string
	cancel      context.CancelFunc
	// время последнего обращения, UnixNano
	lastSeen atomic.Int64
}

func (s *session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Registry хранит открытые экраны карты. У каждого свой координатор и своя горутина цикла событий
type Registry struct {
	ctx      context.Context
	locators LocatorFactory
	markers  MarkerSource
	geocoder Geocoder
	log      *logger.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	// отброшенные ответы уже закрытых сессий
	closedStale atomic.Uint64
}

// NewRegistry создаёт Registry. Сессии живут не дольше ctx
func NewRegistry(ctx context.Context, locators LocatorFactory, markers MarkerSource, geocoder Geocoder, log *logger.Logger) *Registry {
	return &Registry{
		ctx:      ctx,
		locators: locators,
		markers:  markers,
		geocoder: geocoder,
		log:      log,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*session),
	}
}

// Open создаёт сессию для устройства, монтирует экран и сразу даёт ему фокус
func (r *Registry) Open(deviceID string, renderer Renderer) (uuid.UUID, *Coordinator, error) {
	id := uuid.New()
	c := NewCoordinator(r.locators(deviceID), r.markers, r.geocoder, renderer, r.log)

	ctx, cancel := context.WithCancel(r.ctx)
	go func() {
		if err := c.Run(ctx); err != nil {
			r.log.WithError(err).Error("Map session loop failed")
		}
	}()

	if err := c.Mount(); err != nil {
		cancel()
		return uuid.Nil, nil, err
	}
	if err := c.Focus(); err != nil {
		cancel()
		return uuid.Nil, nil, err
	}

	s := &session{coordinator: c, deviceID: deviceID, cancel: cancel}
	s.touch(r.now())

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	metrics.MapSessions.Inc()

	r.log.WithFields(map[string]interface{}{
		"session_id": id,
		"device_id":  deviceID,
	}).Info("Map session opened")
	return id, c, nil
}

// Get возвращает координатор сессии и продлевает её жизнь
func (r *Registry) Get(id uuid.UUID) (*Coordinator, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(r.now())
	return s.coordinator, nil
}

// Close останавливает цикл событий сессии и удаляет её
func (r *Registry) Close(id uuid.UUID) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	r.stop(s)
	r.log.WithField("session_id", id).Info("Map session closed")
	return nil
}

func (r *Registry) stop(s *session) {
	s.cancel()
	<-s.coordinator.Done()
	r.closedStale.Add(s.coordinator.StaleDropped())
	metrics.MapSessions.Dec()
}

// CloseAll закрывает все сессии
func (r *Registry) CloseAll() {
	r.mu.RLock()
	ids := make([]uuid.UUID, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		_ = r.Close(id)
	}
}

// CloseIdle закрывает сессии, к которым не обращались дольше idleTTL, и возвращает их количество
func (r *Registry) CloseIdle(idleTTL time.Duration) int {
	deadline := r.now().Add(-idleTTL).UnixNano()

	expired := make(map[uuid.UUID]*session)
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.lastSeen.Load() < deadline {
			expired[id] = s
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for id, s := range expired {
		r.stop(s)
		r.log.WithFields(map[string]interface{}{
			"session_id": id,
			"device_id":  s.deviceID,
		}).Info("Idle map session closed")
	}
	return len(expired)
}

// StartReaper раз в interval закрывает простаивающие сессии. Останавливается вместе с ctx реестра
func (r *Registry) StartReaper(idleTTL, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.CloseIdle(idleTTL)
			case <-r.ctx.Done():
				return
			}
		}
	}()
}

// Len возвращает количество открытых сессий
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StaleDropped возвращает число устаревших ответов, отброшенных всеми сессиями за время работы
func (r *Registry) StaleDropped() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := r.closedStale.Load()
	for _, s := range r.sessions {
		total += s.coordinator.StaleDropped()
	}
	return total
}
