package api

import (
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics holds process-lifetime counters, exposed at /api/metrics and
// printed once more on shutdown.
type Metrics struct {
	requestsTotal    atomic.Uint64
	requestsSuccess  atomic.Uint64
	requestsError    atomic.Uint64
	instancesStarted atomic.Uint64
	instancesStopped atomic.Uint64
	listDegraded     atomic.Uint64
	startTime        int64
}

func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now().Unix()}
}

func (m *Metrics) RecordRequest()      { m.requestsTotal.Add(1) }
func (m *Metrics) RecordSuccess()      { m.requestsSuccess.Add(1) }
func (m *Metrics) RecordError()        { m.requestsError.Add(1) }
func (m *Metrics) RecordStart()        { m.instancesStarted.Add(1) }
func (m *Metrics) RecordStop()         { m.instancesStopped.Add(1) }
func (m *Metrics) RecordListDegraded() { m.listDegraded.Add(1) }

func (m *Metrics) Snapshot() map[string]interface{} {
	uptime := time.Now().Unix() - m.startTime
	return map[string]interface{}{
		"uptime_seconds":    uptime,
		"requests_total":    m.requestsTotal.Load(),
		"requests_success":  m.requestsSuccess.Load(),
		"requests_error":    m.requestsError.Load(),
		"instances_started": m.instancesStarted.Load(),
		"instances_stopped": m.instancesStopped.Load(),
		"list_degraded":     m.listDegraded.Load(),
		"goroutines":        runtime.NumGoroutine(),
	}
}
