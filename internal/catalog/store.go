// Package catalog holds imported transcripts and their cached chunks in
// process memory.
package catalog

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks segment-aligner/internal/catalog Store

import (
	"context"
	"errors"
	"time"

	"segment-aligner/internal/aligner"
)

// ErrNotFound is returned when a transcript does not exist.
var ErrNotFound = errors.New("transcript not found")

// Transcript is an imported transcript with its chunks computed at import time.
type Transcript struct {
	ID        string
	Name      string
	Source    string // file path for watched files, empty for uploads
	Format    string
	Hash      string // ContentHash of the imported bytes
	Segments  []aligner.Segment
	Chunks    []aligner.Chunk
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the listing view of a transcript.
type Summary struct {
	ID        string
	Name      string
	Source    string
	Format    string
	Segments  int
	Chunks    int
	UpdatedAt time.Time
}

// Summarize returns the listing view of t.
func (t *Transcript) Summarize() Summary {
	return Summary{
		ID:        t.ID,
		Name:      t.Name,
		Source:    t.Source,
		Format:    t.Format,
		Segments:  len(t.Segments),
		Chunks:    len(t.Chunks),
		UpdatedAt: t.UpdatedAt,
	}
}

// Store defines the transcript catalog operations.
type Store interface {
	// Put stores t. An empty ID assigns a new one; a Source matching an
	// existing entry replaces that entry and keeps its ID. The stored
	// transcript is returned.
	Put(ctx context.Context, t *Transcript) (*Transcript, error)
	// Get returns the transcript with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Transcript, error)
	// GetBySource returns the transcript imported from source or ErrNotFound.
	GetBySource(ctx context.Context, source string) (*Transcript, error)
	// List returns summaries ordered by name, then ID.
	List(ctx context.Context) ([]Summary, error)
	// Delete removes a transcript. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
	// DeleteBySource removes the transcript imported from source.
	// Returns ErrNotFound if absent.
	DeleteBySource(ctx context.Context, source string) error
	// DeleteBySourcePrefix removes every transcript whose source starts with
	// prefix and returns how many were removed.
	DeleteBySourcePrefix(ctx context.Context, prefix string) (int, error)
}
