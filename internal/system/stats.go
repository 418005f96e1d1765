package system

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a snapshot of process and host resource usage.
type Stats struct {
	RSS             uint64  // bytes
	CPUPercent      float64 // since process start
	Threads         int32
	HostTotal       uint64 // bytes
	HostAvailable   uint64 // bytes
	HostUsedPercent float64
	LogicalCPUs     int
}

// CollectStats reads resource usage of the current process and the host.
func CollectStats() (Stats, error) {
	var s Stats

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return s, fmt.Errorf("process stats: %w", err)
	}
	mi, err := p.MemoryInfo()
	if err != nil {
		return s, fmt.Errorf("process memory: %w", err)
	}
	s.RSS = mi.RSS
	if s.CPUPercent, err = p.CPUPercent(); err != nil {
		return s, fmt.Errorf("process cpu: %w", err)
	}
	if s.Threads, err = p.NumThreads(); err != nil {
		return s, fmt.Errorf("process threads: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return s, fmt.Errorf("host memory: %w", err)
	}
	s.HostTotal = vm.Total
	s.HostAvailable = vm.Available
	s.HostUsedPercent = vm.UsedPercent

	if s.LogicalCPUs, err = cpu.Counts(true); err != nil {
		return s, fmt.Errorf("cpu count: %w", err)
	}
	return s, nil
}

func mib(b uint64) float64 { return float64(b) / (1 << 20) }

func (s Stats) String() string {
	return fmt.Sprintf("RSS: %.1f MiB | CPU: %.1f%% | Threads: %d | Host: %.0f/%.0f MiB free (%.1f%% used) | CPUs: %d",
		mib(s.RSS), s.CPUPercent, s.Threads, mib(s.HostAvailable), mib(s.HostTotal), s.HostUsedPercent, s.LogicalCPUs)
}
