package monitor

import "testing"

func TestGetHostStats(t *testing.T) {
	stats, err := GetHostStats()
	if err != nil {
		t.Fatalf("Failed to get host stats: %v", err)
	}

	if stats.CPUPercent < 0 || stats.CPUPercent > 100 {
		t.Errorf("CPU percent out of range: %f", stats.CPUPercent)
	}

	if stats.MemoryTotalMB == 0 {
		t.Error("MemoryTotalMB should not be zero")
	}

	if stats.MemoryUsedMB > stats.MemoryTotalMB {
		t.Error("MemoryUsedMB should not exceed MemoryTotalMB")
	}
}
