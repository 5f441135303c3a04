package store

import (
	"log"
	"sync"

	"gorm.io/gorm"
)

// Outcome reports where a write landed.
type Outcome string

const (
	WrittenRemotely    Outcome = "remote"
	WrittenLocallyOnly Outcome = "local"
)

// WriteResult lets callers surface degraded durability instead of silently
// swallowing the difference between a durable write and a local fallback.
type WriteResult struct {
	Outcome Outcome
	Err     error
}

// Durable reports whether the write reached the remote store.
func (r WriteResult) Durable() bool {
	return r.Outcome == WrittenRemotely
}

// Writer persists entity mutations.
type Writer interface {
	Create(value interface{}) error
	Save(value interface{}) error
	Delete(value interface{}) error
}

// GormWriter writes through to the remote relational store.
type GormWriter struct {
	DB *gorm.DB
}

func (w *GormWriter) Create(value interface{}) error { return w.DB.Create(value).Error }
func (w *GormWriter) Save(value interface{}) error   { return w.DB.Save(value).Error }
func (w *GormWriter) Delete(value interface{}) error { return w.DB.Delete(value).Error }

// MemoryWriter keeps mutations in process memory. It is the fallback target
// when the remote store is unreachable; entries survive only for the life of
// the process.
type MemoryWriter struct {
	mu      sync.Mutex
	created []interface{}
	saved   []interface{}
	deleted []interface{}
}

func (w *MemoryWriter) Create(value interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.created = append(w.created, value)
	return nil
}

func (w *MemoryWriter) Save(value interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.saved = append(w.saved, value)
	return nil
}

func (w *MemoryWriter) Delete(value interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.deleted = append(w.deleted, value)
	return nil
}

// Pending returns how many mutations are held only in memory.
func (w *MemoryWriter) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.created) + len(w.saved) + len(w.deleted)
}

// FallbackWriter attempts the remote store once per call and on failure
// applies the mutation to the local writer for that call only. No retries,
// no replay: the result tells the caller durability was degraded.
type FallbackWriter struct {
	Remote Writer
	Local  Writer
}

func NewFallbackWriter(db *gorm.DB) *FallbackWriter {
	return &FallbackWriter{
		Remote: &GormWriter{DB: db},
		Local:  &MemoryWriter{},
	}
}

func (w *FallbackWriter) Create(value interface{}) WriteResult {
	return w.apply(value, Writer.Create)
}

func (w *FallbackWriter) Save(value interface{}) WriteResult {
	return w.apply(value, Writer.Save)
}

func (w *FallbackWriter) Delete(value interface{}) WriteResult {
	return w.apply(value, Writer.Delete)
}

func (w *FallbackWriter) apply(value interface{}, op func(Writer, interface{}) error) WriteResult {
	if err := op(w.Remote, value); err != nil {
		log.Printf("remote write failed, keeping change locally only: %v", err)
		if lerr := op(w.Local, value); lerr != nil {
			return WriteResult{Outcome: WrittenLocallyOnly, Err: lerr}
		}
		return WriteResult{Outcome: WrittenLocallyOnly, Err: err}
	}
	return WriteResult{Outcome: WrittenRemotely}
}
