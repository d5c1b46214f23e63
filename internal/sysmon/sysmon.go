// Package sysmon samples host resource usage and reports the CPU features
// the word-level arithmetic can benefit from.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemTotal   uint64  // bytes
	MemUsed    uint64  // bytes
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Fields that cannot be read
// are left at zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = clampPercent(vmem.UsedPercent)
		s.MemTotal = vmem.Total
		s.MemUsed = vmem.Used
	}
	return s
}

func clampPercent(p float64) float64 {
	return max(0, min(100, p))
}

// CPUFeatures lists the instruction set extensions present on this CPU that
// speed up multi-word multiplication and division. The list is empty on
// architectures without any of them.
func CPUFeatures() []string {
	var features []string
	add := func(name string, ok bool) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add("adx", xcpu.X86.HasADX)
		add("bmi2", xcpu.X86.HasBMI2)
		add("avx2", xcpu.X86.HasAVX2)
		add("avx512f", xcpu.X86.HasAVX512F)
	case "arm64":
		add("asimd", xcpu.ARM64.HasASIMD)
		add("sve", xcpu.ARM64.HasSVE)
	}
	return features
}
