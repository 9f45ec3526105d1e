package observability

import "sync"

// Inmem keeps the last max observations in memory. Enough for the debug
// endpoint and tests; a real deployment would export to Prometheus instead.
type Inmem struct {
	mu     sync.Mutex
	last   []any
	max    int
	totals struct {
		cacheHits, cacheMiss           int
		createOK, createPartial, fails int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{max: max}
}

func (m *Inmem) push(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveCreate(outcome string, headerMs, itemsMs, publishMs float64) {
	m.mu.Lock()
	switch outcome {
	case CreateOK:
		m.totals.createOK++
	case CreatePartial:
		m.totals.createPartial++
	default:
		m.totals.fails++
	}
	m.mu.Unlock()

	m.push(struct {
		Kind                         string
		Outcome                      string
		HeaderMs, ItemsMs, PublishMs float64
	}{"create", outcome, headerMs, itemsMs, publishMs})
}

func (m *Inmem) ObserveLookup(source string, cacheMs, storeMs float64) {
	m.push(struct {
		Kind             string
		Source           string
		CacheMs, StoreMs float64
	}{"lookup", source, cacheMs, storeMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(struct {
		Kind          string
		Method, Route string
		Status        int
		Dur           float64
	}{"http", method, route, status, durMs})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

type Totals struct {
	CacheHits     int
	CacheMisses   int
	CreateOK      int
	CreatePartial int
	CreateFailed  int
}

func (m *Inmem) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Totals{
		CacheHits:     m.totals.cacheHits,
		CacheMisses:   m.totals.cacheMiss,
		CreateOK:      m.totals.createOK,
		CreatePartial: m.totals.createPartial,
		CreateFailed:  m.totals.fails,
	}
}
