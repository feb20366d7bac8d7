package blob

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	info Info
	data []byte
}

// memoryStore implements Store backed by process memory. Intended for tests.
type memoryStore struct {
	baseURL string

	mu   sync.RWMutex
	objs map[string]memoryEntry
}

// NewMemory returns an in-memory Store.
func NewMemory(baseURL string) Store {
	return &memoryStore{baseURL: baseURL, objs: make(map[string]memoryEntry)}
}

func (s *memoryStore) Driver() Driver { return DriverMemory }

func (s *memoryStore) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opts.ContentType,
		Metadata:     cloneMetadata(opts.Metadata),
		LastModified: time.Now().UTC(),
		URL:          s.URL(key),
	}

	s.mu.Lock()
	s.objs[key] = memoryEntry{info: info, data: data}
	s.mu.Unlock()

	return info, nil
}

func (s *memoryStore) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	s.mu.RLock()
	obj, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return Info{}, nil, ErrNotFound
	}

	dataCopy := make([]byte, len(obj.data))
	copy(dataCopy, obj.data)
	infoCopy := obj.info
	infoCopy.Metadata = cloneMetadata(infoCopy.Metadata)

	return infoCopy, io.NopCloser(bytes.NewReader(dataCopy)), nil
}

func (s *memoryStore) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.objs[key]
	if ok {
		delete(s.objs, key)
	}

	return ok, nil
}

func (s *memoryStore) URL(key string) string {
	if s.baseURL != "" {
		return strings.TrimSuffix(s.baseURL, "/") + "/" + key
	}

	return "memory://" + key
}
