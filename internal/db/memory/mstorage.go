package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
)

// MStorage простое key/value хранилище в памяти. Значения хранятся сериализованными в json,
// чтобы наружу никогда не утекали указатели на внутреннее состояние.
type MStorage struct {
	data map[string][]byte
	m    sync.RWMutex
	seq  atomic.Int64
}

func NewMemStorage() *MStorage {
	return &MStorage{
		data: make(map[string][]byte),
	}
}

// Len количество записей.
func (m *MStorage) Len() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return len(m.data)
}

// NextID возвращает следующее значение последовательности. Значения не переиспользуются.
func (m *MStorage) NextID() int64 {
	return m.seq.Add(1)
}

// SetOptions опции записи.
type SetOptions struct {
	Overwrite bool // Разрешить перезапись существующего ключа
	mustExist bool
}

// WithOverwrite разрешает перезапись существующего ключа.
func WithOverwrite() func(*SetOptions) {
	return func(o *SetOptions) {
		o.Overwrite = true
	}
}

// WithMustExist запрещает создание нового ключа, только перезапись существующего.
func WithMustExist() func(*SetOptions) {
	return func(o *SetOptions) {
		o.Overwrite = true
		o.mustExist = true
	}
}

// Get возвращает значение по ключу либо ErrNotFound.
func Get[T any](ctx context.Context, key string, m *MStorage) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	m.m.RLock()
	defer m.m.RUnlock()

	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	var result T
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, fmt.Errorf("unmarshal json by key `%s`: %w", key, err)
	}
	return &result, nil
}

// Set Сохраняет пару ключ/значение. По умолчанию ключ обязан быть уникальным, иначе вернется ErrDuplicateKey.
func Set[T any](ctx context.Context, key string, val *T, m *MStorage, opts ...func(*SetOptions)) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	var options SetOptions
	for _, opt := range opts {
		opt(&options)
	}

	bytes, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("marshal json for key `%s`: %w", key, err)
	}

	m.m.Lock()
	defer m.m.Unlock()

	_, exists := m.data[key]
	if exists && !options.Overwrite {
		return ErrDuplicateKey
	}
	if !exists && options.mustExist {
		return ErrNotFound
	}
	m.data[key] = bytes
	return nil
}

// Delete удаляет ключ. Если ключа нет - ErrNotFound.
func Delete(ctx context.Context, key string, m *MStorage) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	m.m.Lock()
	defer m.m.Unlock()

	if _, ok := m.data[key]; !ok {
		return ErrNotFound
	}
	delete(m.data, key)
	return nil
}

// FilterAll возвращает все значения, для которых fn вернула true. Порядок не определен.
func FilterAll[T any](ctx context.Context, m *MStorage, fn func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	m.m.RLock()
	defer m.m.RUnlock()

	var result = make([]T, 0)
	for key, bytes := range m.data {
		var val T
		if err := json.Unmarshal(bytes, &val); err != nil {
			return nil, fmt.Errorf("unmarshal json by key `%s`: %w", key, err)
		}
		if fn(val) {
			result = append(result, val)
		}
	}
	return result, nil
}
