package world

import (
	"slices"
	"sync"

	"voxelterrain/internal/material"
)

// ColumnStorage holds the material columns of one chunk, keyed by column index.
type ColumnStorage interface {
	LoadColumn(index int) ([]material.ID, bool, error)
	SaveColumn(index int, column []material.ID) error
	Delete(index int) error
	// ForEach visits columns in ascending index order until fn returns false.
	ForEach(fn func(index int, column []material.ID) bool) error
	Close() error
}

// StorageProvider creates column storage instances for chunks.
type StorageProvider interface {
	NewStorage(key ChunkCoord, bounds Bounds, dim Dimensions) (ColumnStorage, error)
}

var (
	storageProvider StorageProvider = NewMemoryStorageProvider()
	storageMu       sync.RWMutex
)

// SetStorageProvider overrides the storage provider used for new chunks.
func SetStorageProvider(provider StorageProvider) {
	storageMu.Lock()
	storageProvider = provider
	storageMu.Unlock()
}

func getStorageProvider() StorageProvider {
	storageMu.RLock()
	provider := storageProvider
	storageMu.RUnlock()
	return provider
}

type memoryStorageProvider struct{}

func NewMemoryStorageProvider() StorageProvider {
	return memoryStorageProvider{}
}

func (memoryStorageProvider) NewStorage(ChunkCoord, Bounds, Dimensions) (ColumnStorage, error) {
	return &memoryColumnStorage{columns: make(map[int][]material.ID)}, nil
}

type memoryColumnStorage struct {
	mu      sync.RWMutex
	columns map[int][]material.ID
}

func (m *memoryColumnStorage) LoadColumn(index int) ([]material.ID, bool, error) {
	m.mu.RLock()
	column, ok := m.columns[index]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(column), true, nil
}

func (m *memoryColumnStorage) SaveColumn(index int, column []material.ID) error {
	dup := slices.Clone(column)
	m.mu.Lock()
	m.columns[index] = dup
	m.mu.Unlock()
	return nil
}

func (m *memoryColumnStorage) Delete(index int) error {
	m.mu.Lock()
	delete(m.columns, index)
	m.mu.Unlock()
	return nil
}

func (m *memoryColumnStorage) ForEach(fn func(index int, column []material.ID) bool) error {
	m.mu.RLock()
	indices := make([]int, 0, len(m.columns))
	for idx := range m.columns {
		indices = append(indices, idx)
	}
	m.mu.RUnlock()
	slices.Sort(indices)

	for _, idx := range indices {
		column, ok, _ := m.LoadColumn(idx)
		if !ok {
			continue
		}
		if !fn(idx, column) {
			break
		}
	}
	return nil
}

func (m *memoryColumnStorage) Close() error {
	return nil
}
