package cache

// meteredStore counts hits and misses around an inner store and keeps an
// entries collector registered for its label. Evictions are counted where
// they happen, in the backend's eviction callback.
type meteredStore struct {
	inner Store
	label string
}

func newMeteredStore(inner Store, label string) *meteredStore {
	registerEntriesCollector(label, inner.Len)
	return &meteredStore{inner: inner, label: label}
}

func (s *meteredStore) Get(key string) ([]byte, bool) {
	val, ok := s.inner.Get(key)
	if ok {
		HitsTotal.WithLabelValues(s.label).Inc()
	} else {
		MissesTotal.WithLabelValues(s.label).Inc()
	}
	return val, ok
}

func (s *meteredStore) Put(key string, value []byte) {
	s.inner.Put(key, value)
}

func (s *meteredStore) Has(key string) bool {
	return s.inner.Has(key)
}

func (s *meteredStore) Len() int {
	return s.inner.Len()
}

func (s *meteredStore) Close() error {
	unregisterEntriesCollector(s.label)
	return s.inner.Close()
}
