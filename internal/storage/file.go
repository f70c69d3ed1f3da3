package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

type fileStore struct {
	mu        sync.Mutex
	path      string
	namespace string
	data      map[string]string
}

// NewFileStore opens a JSON-file-backed store at path. A missing or
// unreadable file degrades to an empty store rather than failing.
func NewFileStore(path, namespace string) Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	s := &fileStore{
		path:      path,
		namespace: namespace,
		data:      make(map[string]string),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Failed to read storage file %s, starting empty: %v", path, err)
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Warnf("Failed to decode storage file %s, starting empty: %v", path, err)
		s.data = make(map[string]string)
	}
	return s
}

func (s *fileStore) key(key string) string {
	return s.namespace + ":" + key
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[s.key(key)], nil
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key(key)] = value
	return s.flush()
}

func (s *fileStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, s.key(key))
	}
	return s.flush()
}

func (s *fileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write storage file %s: %w", s.path, err)
	}
	return nil
}
