// Package metrics provides lightweight, lock-free counters for
// tracking runtime statistics of a plotting session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a plotting session.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	commandsTotal    atomic.Int64
	commandBytes     atomic.Int64
	plotsTotal       atomic.Int64
	dataBytes        atomic.Int64
	tempFilesActive  atomic.Int64
	tempFilesTotal   atomic.Int64
	tempFilesRemoved atomic.Int64
	errorsTotal      atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Command metrics ──────────────────────────────────────────────────

// CommandSent records one directive of n bytes written to the pipe.
func (c *Collector) CommandSent(n int) {
	if c == nil {
		return
	}
	c.commandsTotal.Add(1)
	c.commandBytes.Add(int64(n))
}

// PlotIssued records one plot or splot dispatched to the plotter.
func (c *Collector) PlotIssued() {
	if c == nil {
		return
	}
	c.plotsTotal.Add(1)
}

// CommandsSent returns the lifetime directive count.
func (c *Collector) CommandsSent() int64 {
	if c == nil {
		return 0
	}
	return c.commandsTotal.Load()
}

// PlotsIssued returns the lifetime plot count.
func (c *Collector) PlotsIssued() int64 {
	if c == nil {
		return 0
	}
	return c.plotsTotal.Load()
}

// ── Data-file metrics ────────────────────────────────────────────────

// DataWritten records n bytes streamed into a data file.
func (c *Collector) DataWritten(n int64) {
	if c == nil {
		return
	}
	c.dataBytes.Add(n)
}

// TempFileCreated records one materialised scratch file.
func (c *Collector) TempFileCreated() {
	if c == nil {
		return
	}
	c.tempFilesActive.Add(1)
	c.tempFilesTotal.Add(1)
}

// TempFilesRemoved records n scratch files unlinked during cleanup.
func (c *Collector) TempFilesRemoved(n int) {
	if c == nil {
		return
	}
	c.tempFilesActive.Add(int64(-n))
	c.tempFilesRemoved.Add(int64(n))
}

// ActiveTempFiles returns the number of files not yet removed.
func (c *Collector) ActiveTempFiles() int64 {
	if c == nil {
		return 0
	}
	return c.tempFilesActive.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	CommandsTotal    int64  `json:"commands_total"`
	CommandBytes     int64  `json:"command_bytes"`
	PlotsTotal       int64  `json:"plots_total"`
	DataBytes        int64  `json:"data_bytes"`
	TempFilesActive  int64  `json:"temp_files_active"`
	TempFilesTotal   int64  `json:"temp_files_total"`
	TempFilesRemoved int64  `json:"temp_files_removed"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:           time.Since(c.startTime).Truncate(time.Second).String(),
		CommandsTotal:    c.commandsTotal.Load(),
		CommandBytes:     c.commandBytes.Load(),
		PlotsTotal:       c.plotsTotal.Load(),
		DataBytes:        c.dataBytes.Load(),
		TempFilesActive:  c.tempFilesActive.Load(),
		TempFilesTotal:   c.tempFilesTotal.Load(),
		TempFilesRemoved: c.tempFilesRemoved.Load(),
		ErrorsTotal:      c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
