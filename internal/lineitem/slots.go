package lineitem

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrSlotEmpty is returned by Slots.Read when nothing was written under the key.
var ErrSlotEmpty = errors.New("slot is empty")

// Slots is a keyed medium holding one serialized payload per key,
// the server-side equivalent of a browser's localStorage entry.
//
// Modify is an atomic read-modify-write: fn gets the current payload (nil when
// the slot is empty) and returns the replacement. An error from fn aborts the
// write and is returned as is.
type Slots interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, payload []byte) error
	Modify(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
	Remove(ctx context.Context, key string) error
}

// MemorySlots keeps payloads in process memory.
type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string][]byte)}
}

func (m *MemorySlots) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.slots[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (m *MemorySlots) Write(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.slots[key] = stored
	return nil
}

func (m *MemorySlots) Modify(_ context.Context, key string, fn func([]byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var current []byte
	if payload, ok := m.slots[key]; ok {
		current = make([]byte, len(payload))
		copy(current, payload)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	m.slots[key] = next
	return nil
}

func (m *MemorySlots) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

// FileSlots stores each key as <dir>/<escaped key>.json. Writes go through a
// temp file and rename so a reader never sees a half-written payload. Modify
// is atomic within the process only.
type FileSlots struct {
	dir string
	mu  sync.Mutex
}

func NewFileSlots(dir string) (*FileSlots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create slot directory: %w", err)
	}
	return &FileSlots{dir: dir}, nil
}

func (f *FileSlots) path(key string) string {
	// PathEscape is reversible and leaves no separators. Colons and a leading
	// dot are escaped too, so keys like ".." stay inside dir.
	safe := strings.ReplaceAll(url.PathEscape(key), ":", "%3A")
	if len(safe) > 0 && safe[0] == '.' {
		safe = "%2E" + safe[1:]
	}
	return filepath.Join(f.dir, safe+".json")
}

func (f *FileSlots) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, nil
}

func (f *FileSlots) Write(ctx context.Context, key string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(key, payload)
}

func (f *FileSlots) Modify(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.Read(ctx, key)
	if errors.Is(err, ErrSlotEmpty) {
		current = nil
	} else if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return f.write(key, next)
}

func (f *FileSlots) write(key string, payload []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp slot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("failed to replace slot %s: %w", key, err)
	}
	return nil
}

func (f *FileSlots) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove slot %s: %w", key, err)
	}
	return nil
}
