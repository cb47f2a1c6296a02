// Package mapscreen - координатор экрана карты.
//
// Все изменения состояния экрана выполняются в одной горутине цикла событий (Run).
// Запросы геолокации, маркеров и геокодера идут параллельно, а их результаты
// возвращаются в цикл и применяются, только если их токен всё ещё последний.
package mapscreen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"travel-map/internal/logger"
	"travel-map/internal/metrics"
	"travel-map/internal/models"
	"travel-map/internal/routing"
	"travel-map/internal/selection"
)

// ErrClosed возвращается операциями координатора после остановки цикла событий
var ErrClosed = errors.New("map screen is closed")

const (
	NoticeLocationDenied = "location permission denied"
	NoticeSearchNotFound = "location not found"
	NoticeSearchFailed   = "search is temporarily unavailable"
	NoticeMarkersStale   = "markers could not be refreshed"
)

// Locator - источник местоположения устройства
type Locator interface {
	Locate(ctx context.Context) (models.Coordinate, error)
}

// MarkerSource - снимок маркеров. При ошибке может вернуть последний удачный снимок вместе с ошибкой
type MarkerSource interface {
	Refresh(ctx context.Context) ([]models.MarkerRecord, error)
}

// Geocoder - поиск точки по тексту
type Geocoder interface {
	Geocode(ctx context.Context, query string) (models.Coordinate, error)
}

// Renderer - внешний слой отрисовки карты
type Renderer interface {
	Render(snapshot models.RenderSnapshot)
}

// RendererFunc позволяет использовать функцию как Renderer
type RendererFunc func(snapshot models.RenderSnapshot)

func (f RendererFunc) Render(snapshot models.RenderSnapshot) { f(snapshot) }

type resource int

const (
	resourceLocation resource = iota
	resourceMarkers
	resourceGeocode
	resourceCount
)

func (r resource) String() string {
	switch r {
	case resourceLocation:
		return "location"
	case resourceMarkers:
		return "markers"
	case resourceGeocode:
		return "geocode"
	default:
		return "unknown"
	}
}

// Coordinator - состояние одного экрана карты
type Coordinator struct {
	locator  Locator
	markers  MarkerSource
	geocoder Geocoder
	renderer Renderer
	log      *logger.Logger

	ops     chan func()
	done    chan struct{}
	started atomic.Bool

	// Поля ниже меняются только в горутине цикла событий
	runCtx       context.Context
	screenCtx    context.Context
	screenCancel context.CancelFunc
	tokens       [resourceCount]uint64
	selection    models.SelectionState
	region       models.RenderRegion
	device       *models.Coordinate
	visible      []models.Marker
	groups       map[string]models.RouteGroup
	notice       string
	revision     uint64

	mu       sync.RWMutex
	snapshot models.RenderSnapshot

	staleDropped atomic.Uint64
}

// NewCoordinator создаёт координатор. renderer может быть nil
func NewCoordinator(locator Locator, markers MarkerSource, geocoder Geocoder, renderer Renderer, log *logger.Logger) *Coordinator {
	c := &Coordinator{
		locator:  locator,
		markers:  markers,
		geocoder: geocoder,
		renderer: renderer,
		log:      log,
		ops:      make(chan func()),
		done:     make(chan struct{}),
	}
	c.resetState()
	c.snapshot = c.buildSnapshot()
	return c
}

// Run обслуживает цикл событий до отмены ctx. Повторный вызов возвращает ошибку
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return errors.New("map screen is already running")
	}
	defer close(c.done)

	c.runCtx = ctx
	c.screenCtx, c.screenCancel = context.WithCancel(ctx)
	defer func() { c.screenCancel() }()

	for {
		select {
		case op := <-c.ops:
			op()
		case <-ctx.Done():
			return nil
		}
	}
}

// Done закрывается после остановки цикла событий
func (c *Coordinator) Done() <-chan struct{} { return c.done }

// do выполняет fn в цикле событий и ждёт завершения
func (c *Coordinator) do(fn func()) error {
	finished := make(chan struct{})
	op := func() {
		defer close(finished)
		fn()
	}
	select {
	case c.ops <- op:
	case <-c.done:
		return ErrClosed
	}
	<-finished
	return nil
}

// post передаёт fn в цикл событий без ожидания. После остановки цикла fn отбрасывается
func (c *Coordinator) post(fn func()) {
	select {
	case c.ops <- fn:
	case <-c.done:
	}
}

// Mount сбрасывает экран в начальное состояние и отменяет все запросы
func (c *Coordinator) Mount() error {
	return c.do(func() {
		c.restartScreen()
		c.resetState()
		c.publish()
	})
}

// Focus независимо обновляет местоположение устройства и снимок маркеров
func (c *Coordinator) Focus() error {
	return c.do(func() {
		c.refreshLocation()
		c.refreshMarkers()
	})
}

// Blur отменяет запросы в полёте; их поздние результаты отбрасываются
func (c *Coordinator) Blur() error {
	return c.do(func() {
		c.restartScreen()
	})
}

// SubmitSearch геокодирует text. Пустой текст игнорируется
func (c *Coordinator) SubmitSearch(text string) error {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil
	}
	return c.do(func() {
		token := c.nextToken(resourceGeocode)
		ctx := c.screenCtx
		go func() {
			location, err := c.geocoder.Geocode(ctx, query)
			c.post(func() {
				if !c.isLatest(resourceGeocode, token) {
					return
				}
				c.applyGeocode(query, location, err)
			})
		}()
	})
}

// FocusSearch - поле поиска получило фокус
func (c *Coordinator) FocusSearch() error {
	return c.do(func() {
		c.dispatch(selection.Event{Type: selection.SearchFocused})
	})
}

// ChooseMarker выбирает маркер из списка по id. Неизвестный id игнорируется
func (c *Coordinator) ChooseMarker(id string) error {
	return c.do(func() {
		for _, m := range c.visible {
			if m.ID == id {
				c.dispatch(selection.Event{Type: selection.MarkerChosen, Marker: m})
				return
			}
		}
		c.log.WithField("marker_id", id).Debug("Chosen marker is not on the map")
	})
}

// TapMap - нажатие на карту
func (c *Coordinator) TapMap() error {
	return c.do(func() {
		c.dispatch(selection.Event{Type: selection.MapTapped})
	})
}

// ClearSearch сбрасывает поиск. Геокодирование в полёте тоже отменяется
func (c *Coordinator) ClearSearch() error {
	return c.do(func() {
		c.nextToken(resourceGeocode)
		c.dispatch(selection.Event{Type: selection.SearchCleared})
	})
}

// Snapshot возвращает последний опубликованный снимок
func (c *Coordinator) Snapshot() models.RenderSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// StaleDropped возвращает количество отброшенных устаревших ответов
func (c *Coordinator) StaleDropped() uint64 {
	return c.staleDropped.Load()
}

func (c *Coordinator) resetState() {
	c.selection = models.IdleSelection()
	c.region = models.RegionAt(models.Coordinate{})
	c.device = nil
	c.visible = nil
	c.groups = map[string]models.RouteGroup{}
	c.notice = ""
}

// restartScreen отменяет контекст экрана и делает все выданные токены устаревшими
func (c *Coordinator) restartScreen() {
	c.screenCancel()
	c.screenCtx, c.screenCancel = context.WithCancel(c.runCtx)
	for r := resource(0); r < resourceCount; r++ {
		c.tokens[r]++
	}
}

func (c *Coordinator) nextToken(r resource) uint64 {
	c.tokens[r]++
	return c.tokens[r]
}

func (c *Coordinator) isLatest(r resource, token uint64) bool {
	if c.tokens[r] == token {
		return true
	}
	c.staleDropped.Add(1)
	metrics.StaleResponses.WithLabelValues(r.String()).Inc()
	c.log.WithFields(map[string]interface{}{
		"resource": r.String(),
		"token":    token,
		"latest":   c.tokens[r],
	}).Debug("Discarding stale response")
	return false
}

func (c *Coordinator) refreshLocation() {
	token := c.nextToken(resourceLocation)
	ctx := c.screenCtx
	go func() {
		location, err := c.locator.Locate(ctx)
		c.post(func() {
			if !c.isLatest(resourceLocation, token) {
				return
			}
			c.applyLocation(location, err)
		})
	}()
}

func (c *Coordinator) refreshMarkers() {
	token := c.nextToken(resourceMarkers)
	ctx := c.screenCtx
	go func() {
		records, err := c.markers.Refresh(ctx)
		c.post(func() {
			if !c.isLatest(resourceMarkers, token) {
				return
			}
			c.applyMarkers(records, err)
		})
	}()
}

func (c *Coordinator) applyLocation(location models.Coordinate, err error) {
	if err != nil {
		if errors.Is(err, models.ErrPermissionDenied) {
			c.notice = NoticeLocationDenied
		} else {
			c.log.WithError(err).Warn("Failed to get device location")
		}
		c.publish()
		return
	}

	c.device = &location
	// Новая точка устройства не уводит карту от выбранного маркера или результата поиска
	if c.selection.Mode != models.SelectionMarkerSelected && c.selection.Mode != models.SelectionSearchActive {
		c.recentre(location)
	}
	c.publish()
}

func (c *Coordinator) applyMarkers(records []models.MarkerRecord, err error) {
	if err != nil {
		c.notice = NoticeMarkersStale
		if len(records) == 0 {
			c.publish()
			return
		}
	}

	valid, dropped := routing.ValidMarkers(records)
	for _, id := range dropped {
		metrics.DroppedMarkers.Inc()
		c.log.WithField("marker_id", id).Warn("Marker has malformed coordinates, skipping")
	}

	c.visible = valid
	c.groups = routing.Group(valid)
	c.reconcileSelection()
	c.publish()
}

// reconcileSelection сверяет выбранный маркер с новым снимком: изменённый маркер
// подменяется свежей копией, удалённый возвращает экран к списку маркеров
func (c *Coordinator) reconcileSelection() {
	if c.selection.Mode != models.SelectionMarkerSelected {
		return
	}
	selected := *c.selection.Marker
	for _, m := range c.visible {
		if m.ID != selected.ID {
			continue
		}
		if m != selected {
			c.selection = models.MarkerSelectedSelection(m)
			c.recentre(m.Coordinate)
		}
		return
	}

	c.log.WithField("marker_id", selected.ID).Info("Selected marker is no longer on the map")
	c.selection = models.PickerOpenSelection()
	if c.device != nil {
		c.recentre(*c.device)
	}
}

func (c *Coordinator) applyGeocode(query string, location models.Coordinate, err error) {
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.notice = NoticeSearchNotFound
		} else {
			c.log.WithError(err).WithField("query", query).Warn("Geocoding failed")
			c.notice = NoticeSearchFailed
		}
		c.publish()
		return
	}
	c.dispatch(selection.Event{Type: selection.SearchResolved, Location: location})
}

// dispatch применяет событие автомата и его эффект на регион.
// Событие, которое не меняет ни состояние, ни регион, не публикует новый снимок
func (c *Coordinator) dispatch(ev selection.Event) {
	next, effect := selection.Apply(c.selection, ev)
	if effect.Kind == selection.EffectNone && sameSelection(next, c.selection) {
		return
	}
	c.selection = next
	c.notice = ""

	switch effect.Kind {
	case selection.EffectRecentre:
		c.recentre(effect.Center)
	case selection.EffectFallbackToDevice:
		if c.device != nil {
			c.recentre(*c.device)
		}
	}

	c.log.WithFields(map[string]interface{}{
		"event": ev.Type.String(),
		"mode":  c.selection.Mode,
	}).Debug("Selection changed")
	c.publish()
}

func sameSelection(a, b models.SelectionState) bool {
	if a.Mode != b.Mode {
		return false
	}
	if (a.Marker == nil) != (b.Marker == nil) || (a.Marker != nil && *a.Marker != *b.Marker) {
		return false
	}
	if (a.SearchLocation == nil) != (b.SearchLocation == nil) ||
		(a.SearchLocation != nil && *a.SearchLocation != *b.SearchLocation) {
		return false
	}
	return true
}

// recentre переносит центр карты, сохраняя масштаб
func (c *Coordinator) recentre(center models.Coordinate) {
	c.region.Latitude = center.Latitude
	c.region.Longitude = center.Longitude
}

func (c *Coordinator) buildSnapshot() models.RenderSnapshot {
	requests := routing.BuildRouteRequests(c.groups)
	if c.selection.Mode == models.SelectionSearchActive && c.device != nil {
		requests = append(requests, routing.BuildSearchRequest(*c.device, *c.selection.SearchLocation))
	}

	markers := make([]models.Marker, len(c.visible))
	copy(markers, c.visible)

	var device *models.Coordinate
	if c.device != nil {
		d := *c.device
		device = &d
	}

	return models.RenderSnapshot{
		Revision:           c.revision,
		Region:             c.region,
		DeviceLocation:     device,
		Markers:            markers,
		DirectionsRequests: requests,
		Selection:          c.selection,
		Notice:             c.notice,
	}
}

func (c *Coordinator) publish() {
	c.revision++
	snapshot := c.buildSnapshot()

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	if c.renderer != nil {
		c.renderer.Render(snapshot)
	}
}
