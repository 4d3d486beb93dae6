package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is a Store backed by a map. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	byID     map[string]*Transcript
	bySource map[string]string
	now      func() time.Time
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		byID:     make(map[string]*Transcript),
		bySource: make(map[string]string),
		now:      time.Now,
	}
}

// Put stores a copy of t.
func (m *Memory) Put(ctx context.Context, t *Transcript) (*Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := clone(t)
	now := m.now().UTC()

	if stored.Source != "" {
		if id, ok := m.bySource[stored.Source]; ok {
			stored.ID = id
		}
	}
	if existing, ok := m.byID[stored.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
		if existing.Source != "" && existing.Source != stored.Source {
			delete(m.bySource, existing.Source)
		}
	} else {
		if stored.ID == "" {
			stored.ID = uuid.New().String()
		}
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	m.byID[stored.ID] = stored
	if stored.Source != "" {
		m.bySource[stored.Source] = stored.ID
	}
	return clone(stored), nil
}

// Get returns a copy of the transcript with the given ID.
func (m *Memory) Get(ctx context.Context, id string) (*Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(t), nil
}

// GetBySource returns a copy of the transcript imported from source.
func (m *Memory) GetBySource(ctx context.Context, source string) (*Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySource[source]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(m.byID[id]), nil
}

// List returns summaries ordered by name, then ID.
func (m *Memory) List(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	summaries := make([]Summary, 0, len(m.byID))
	for _, t := range m.byID {
		summaries = append(summaries, t.Summarize())
	}
	m.mu.RUnlock()

	slices.SortFunc(summaries, func(a, b Summary) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return summaries, nil
}

// Delete removes the transcript with the given ID.
func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	if t.Source != "" {
		delete(m.bySource, t.Source)
	}
	return nil
}

// DeleteBySource removes the transcript imported from source.
func (m *Memory) DeleteBySource(ctx context.Context, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.bySource[source]
	if !ok {
		return ErrNotFound
	}
	delete(m.bySource, source)
	delete(m.byID, id)
	return nil
}

// DeleteBySourcePrefix removes every transcript whose source starts with
// prefix. An empty prefix matches nothing.
func (m *Memory) DeleteBySourcePrefix(ctx context.Context, prefix string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if prefix == "" {
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for source, id := range m.bySource {
		if !strings.HasPrefix(source, prefix) {
			continue
		}
		delete(m.bySource, source)
		delete(m.byID, id)
		removed++
	}
	return removed, nil
}

// clone copies t and its slices. Segments and chunk timestamps are shared;
// they are never modified after import.
func clone(t *Transcript) *Transcript {
	c := *t
	c.Segments = slices.Clone(t.Segments)
	c.Chunks = slices.Clone(t.Chunks)
	return &c
}
