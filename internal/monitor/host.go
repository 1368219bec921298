// Package monitor reads host resource usage for the health endpoint.
package monitor

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStats holds the host system resource statistics
type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	Load1         float64 `json:"load_1"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	MemoryTotalMB uint64  `json:"memory_total_mb"`
}

// GetHostStats retrieves the current host system resource statistics
func GetHostStats() (*HostStats, error) {
	stats := &HostStats{}

	cpuPercent, err := cpu.Percent(0, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU stats: %w", err)
	}
	if len(cpuPercent) > 0 {
		stats.CPUPercent = cpuPercent[0]
	}

	if avg, err := load.Avg(); err == nil {
		stats.Load1 = avg.Load1
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory stats: %w", err)
	}
	stats.MemoryUsedMB = memInfo.Used / 1024 / 1024
	stats.MemoryTotalMB = memInfo.Total / 1024 / 1024

	return stats, nil
}
