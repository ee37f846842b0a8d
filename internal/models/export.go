package models

import (
	"sync"
	"time"
)

// RegionFailure records why a region was left out of an export.
type RegionFailure struct {
	Code string
	Err  error
}

// ExportResult describes a finished export.
type ExportResult struct {
	Path     string
	Columns  []string
	Rows     int
	Failures []RegionFailure
	Duration time.Duration
}

// ExportState is a snapshot of the export in flight, if any.
type ExportState struct {
	IsActive  bool
	Codes     []string
	StartTime time.Time
	LastPath  string
	LastError error
}

// ExportStateRepository guards against overlapping exports.
type ExportStateRepository struct {
	mu    sync.RWMutex
	state ExportState
}

func NewExportStateRepository() *ExportStateRepository {
	return &ExportStateRepository{}
}

// GetState returns the current export state
func (r *ExportStateRepository) GetState() ExportState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := r.state
	st.Codes = append([]string(nil), r.state.Codes...)
	return st
}

// TryStart marks an export as active. It returns false when one is already running.
func (r *ExportStateRepository) TryStart(codes []string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.IsActive {
		return false
	}

	r.state = ExportState{
		IsActive:  true,
		Codes:     append([]string(nil), codes...),
		StartTime: time.Now(),
		LastPath:  r.state.LastPath,
	}
	return true
}

// Complete clears the active flag and keeps the outcome for display.
func (r *ExportStateRepository) Complete(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.IsActive = false
	r.state.LastError = err
	if err == nil {
		r.state.LastPath = path
	}
}

// IsExporting returns true if an export is currently active
func (r *ExportStateRepository) IsExporting() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.IsActive
}
