package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", openMemory)
}

// memoryStore keeps payloads in an expirable LRU inside the process.
type memoryStore struct {
	lru *lru.LRU[string, []byte]
}

func openMemory(opts Options) (Store, error) {
	var notify func(string, []byte)
	if opts.OnEvict != nil {
		notify = func(key string, value []byte) {
			opts.OnEvict(key, value)
		}
	}
	return &memoryStore{
		lru: lru.NewLRU[string, []byte](opts.MaxEntries, notify, opts.TTL),
	}, nil
}

func (s *memoryStore) Get(key string) ([]byte, bool) {
	return s.lru.Get(key)
}

func (s *memoryStore) Put(key string, value []byte) {
	s.lru.Add(key, value)
}

func (s *memoryStore) Has(key string) bool {
	return s.lru.Contains(key)
}

func (s *memoryStore) Len() int {
	return s.lru.Len()
}

func (s *memoryStore) Close() error {
	return nil
}
