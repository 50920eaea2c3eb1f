package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemHealthResponse reports process and host health
type SystemHealthResponse struct {
	Status     string  `json:"status"`
	UptimeSecs int64   `json:"uptime_secs"`
	Goroutines int     `json:"goroutines"`
	AllocMB    uint64  `json:"alloc_mb"`
	NumGC      uint32  `json:"num_gc"`
	CPUPercent float64 `json:"cpu_percent"`
	RAMPercent float64 `json:"ram_percent"`
	Companies  int     `json:"companies"`
	Valuations int     `json:"valuations"`
}

// handleSystemHealth reports process stats, host load, and data coverage
func (s *Server) handleSystemHealth(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cpuPercent, ramPercent := s.systemStats()

	companyCount := 0
	if tickers, err := s.loader.List(); err == nil {
		companyCount = len(tickers)
	}

	valuationCount := 0
	if valuations, err := s.valuations.LatestPerTicker(); err == nil {
		valuationCount = len(valuations)
	}

	s.writeJSON(w, http.StatusOK, SystemHealthResponse{
		Status:     "running",
		UptimeSecs: int64(time.Since(s.startedAt).Seconds()),
		Goroutines: runtime.NumGoroutine(),
		AllocMB:    m.Alloc / 1024 / 1024,
		NumGC:      m.NumGC,
		CPUPercent: cpuPercent,
		RAMPercent: ramPercent,
		Companies:  companyCount,
		Valuations: valuationCount,
	})
}

// systemStats returns CPU and RAM usage percentages. A short sampling
// interval keeps the handler responsive.
func (s *Server) systemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
