// Package cache stores downloaded subtitle archives so that extracting
// another entry from the same pack does not hit the site again. Backends are
// pluggable: an in-process LRU with TTL, and a Redis/Valkey store with
// application-level LRU semantics for deployments that share a session
// across restarts.
package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// EvictNotify is called with each entry dropped to make room. The Redis
// backend passes a nil value: reading dropped payloads back would cost a
// roundtrip for bookkeeping nobody needs.
type EvictNotify func(key string, value []byte)

// Store is a byte payload cache keyed by download URL.
type Store interface {
	// Get returns the payload for key and whether it was present.
	Get(key string) ([]byte, bool)

	// Put stores the payload under key, replacing any previous value.
	Put(key string, value []byte)

	// Has reports whether key is present, without touching LRU order.
	Has(key string) bool

	// Len returns the number of stored payloads.
	Len() int

	// Close releases backend resources. A no-op for in-memory stores.
	Close() error
}

// Options configures a backend.
type Options struct {
	// MaxEntries bounds the store; least recently used payloads drop first.
	MaxEntries int

	// TTL is how long a payload stays usable after being written.
	TTL time.Duration

	// OnEvict is invoked for dropped entries. Optional.
	OnEvict EvictNotify

	// Logger receives backend errors. A nil Logger drops them.
	Logger Logger

	// Redis connection settings, read by the redis backend only.
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Metrics names the store in Prometheus metrics. When non-empty the
	// store is wrapped so hits, misses, evictions and the live entry count
	// are tracked under that label.
	Metrics string
}

// Backend builds a Store from options.
type Backend func(opts Options) (Store, error)

var (
	backendMu sync.RWMutex
	backends  = make(map[string]Backend)
)

// Register makes a backend available under the given name. It panics on a
// duplicate name or a nil backend.
func Register(name string, b Backend) {
	backendMu.Lock()
	defer backendMu.Unlock()

	if b == nil {
		panic("cache: Register backend is nil")
	}
	if _, dup := backends[name]; dup {
		panic(fmt.Sprintf("cache: backend %q already registered", name))
	}
	backends[name] = b
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	backendMu.RLock()
	defer backendMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open builds the named backend. With Options.Metrics set, the store is
// returned wrapped in the metering layer.
func Open(name string, opts Options) (Store, error) {
	backendMu.RLock()
	b, ok := backends[name]
	backendMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown backend %q (registered: %v)", name, Backends())
	}

	if opts.Metrics == "" {
		return b(opts)
	}

	label := opts.Metrics
	forward := opts.OnEvict
	opts.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(label).Inc()
		if forward != nil {
			forward(key, value)
		}
	}

	inner, err := b(opts)
	if err != nil {
		return nil, err
	}
	return newMeteredStore(inner, label), nil
}
