package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/gloucester-auto/dealership-api/utils"
)

// MockImageStore is an in-memory ImageStore for testing. It records every
// Store and Delete call and can be told to fail deletions for specific URLs.
type MockImageStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	deletes  []string
	failures map[string]error
	counter  int
}

// NewMockImageStore creates a new mock image store
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{
		objects:  make(map[string][]byte),
		failures: make(map[string]error),
	}
}

// Store validates the payload like the real backends and records it under a
// deterministic URL.
func (m *MockImageStore) Store(_ context.Context, data []byte, contentType, originalName string) (string, error) {
	if err := utils.ValidateImage(int64(len(data)), contentType); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++
	url := fmt.Sprintf("https://images.test/cars/mock-%d%s", m.counter, utils.ImageExtension(contentType, originalName))
	m.objects[url] = data
	return url, nil
}

// Delete records the deletion attempt and removes the object, or returns the
// injected failure for that URL.
func (m *MockImageStore) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes = append(m.deletes, url)
	if err, ok := m.failures[url]; ok {
		return err
	}
	delete(m.objects, url)
	return nil
}

// FailDeleteFor makes Delete return err for the given URL.
func (m *MockImageStore) FailDeleteFor(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[url] = err
}

// DeleteCalls returns the URLs Delete was called with, in order.
func (m *MockImageStore) DeleteCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deletes...)
}

// Stored reports whether an object exists for the given URL.
func (m *MockImageStore) Stored(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[url]
	return ok
}
