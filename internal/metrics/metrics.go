package metrics

import (
	"sync"
	"time"
)

type storageStats struct {
	saves       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about store activity and
// forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu         sync.Mutex
	storage    map[string]*storageStats
	membership map[string]int
	creations  map[string]int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		storage:    make(map[string]*storageStats),
		membership: make(map[string]int),
		creations:  make(map[string]int),
		otel:       otel,
	}
}

// RecordStorageSave counts a snapshot save for backend and stores its latency.
func (r *Recorder) RecordStorageSave(backend string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.storage[backend]
	if !ok {
		stats = &storageStats{}
		r.storage[backend] = stats
	}
	stats.saves++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStorageSave(backend, duration, err)
	}
}

// RecordMembership counts a membership transaction by outcome.
func (r *Recorder) RecordMembership(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.membership[outcome]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordOutcome(r.otel.membership, outcome)
	}
}

// RecordMatchCreation counts a create request by outcome.
func (r *Recorder) RecordMatchCreation(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.creations[outcome]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordOutcome(r.otel.creations, outcome)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// StorageSnapshot is a copy of the save stats for one backend.
type StorageSnapshot struct {
	Saves       int
	Errors      int
	LastLatency time.Duration
}

// Storage returns a copy of the current save stats for backend.
func (r *Recorder) Storage(backend string) StorageSnapshot {
	if r == nil {
		return StorageSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.storage[backend]
	if !ok {
		return StorageSnapshot{}
	}
	return StorageSnapshot{Saves: stats.saves, Errors: stats.errors, LastLatency: stats.lastLatency}
}

// MembershipCount returns how many membership transactions ended with outcome.
func (r *Recorder) MembershipCount(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.membership[outcome]
}

// CreationCount returns how many create requests ended with outcome.
func (r *Recorder) CreationCount(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creations[outcome]
}
