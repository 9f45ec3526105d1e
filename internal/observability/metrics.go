package observability

const (
	CreateOK      = "ok"      // header, items and event all succeeded
	CreatePartial = "partial" // order durable, a follow-on step failed
	CreateFailed  = "failed"  // nothing persisted
)

const (
	SourceCache = "cache"
	SourceStore = "store"
)

type Metrics interface {
	ObserveCreate(outcome string, headerMs, itemsMs, publishMs float64)
	ObserveLookup(source string, cacheMs, storeMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func (Noop) ObserveCreate(string, float64, float64, float64) {}
func (Noop) ObserveLookup(string, float64, float64)          {}
func (Noop) ObserveHTTP(string, string, int, float64)        {}
func (Noop) IncCacheHit()                                    {}
func (Noop) IncCacheMiss()                                   {}
