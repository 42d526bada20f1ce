// Package sysinfo reports the host hardware the renderer runs on and picks a
// default worker count from it.
package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info describes the render host
type Info struct {
	CPUModel     string  `json:"cpuModel"`
	LogicalCores int     `json:"logicalCores"`
	ClockGHz     float64 `json:"clockGHz"`
	TotalRAMGB   uint64  `json:"totalRamGB"`
}

// String formats the info for a startup log line
func (i Info) String() string {
	return fmt.Sprintf("%s (%d logical cores @ %.2f GHz), %d GB RAM",
		i.CPUModel, i.LogicalCores, i.ClockGHz, i.TotalRAMGB)
}

// Collect queries CPU and memory information
func Collect() (Info, error) {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return Info{}, fmt.Errorf("cpu info: %w", err)
	}
	if len(cpuInfo) == 0 {
		return Info{}, fmt.Errorf("no CPU information available")
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return Info{}, fmt.Errorf("memory info: %w", err)
	}

	return Info{
		CPUModel:     cpuInfo[0].ModelName,
		LogicalCores: DefaultWorkers(),
		ClockGHz:     cpuInfo[0].Mhz / 1000, // MHz to GHz
		TotalRAMGB:   memInfo.Total / (1024 * 1024 * 1024),
	}, nil
}

// DefaultWorkers returns the number of logical cores, falling back to the Go
// runtime's view when the host cannot be queried
func DefaultWorkers() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		return runtime.NumCPU()
	}
	return count
}
