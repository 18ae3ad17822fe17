// Package sysmon samples system-wide CPU and memory usage for the dashboard
// header.
package sysmon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// String renders the snapshot as "cpu 12.5% mem 48.0%".
func (s Stats) String() string {
	return fmt.Sprintf("cpu %.1f%% mem %.1f%%", s.CPUPercent, s.MemPercent)
}

// Sampler reads usage through replaceable probes.
type Sampler struct {
	cpuPercent func() (float64, error)
	memPercent func() (float64, error)
}

// NewSampler returns a Sampler backed by gopsutil.
func NewSampler() *Sampler {
	return &Sampler{
		cpuPercent: func() (float64, error) {
			// interval=0 reports the delta since the previous call.
			pcts, err := cpu.Percent(0, false)
			if err != nil {
				return 0, err
			}
			if len(pcts) == 0 {
				return 0, fmt.Errorf("cpu: no samples")
			}
			return pcts[0], nil
		},
		memPercent: func() (float64, error) {
			vm, err := mem.VirtualMemory()
			if err != nil {
				return 0, err
			}
			return vm.UsedPercent, nil
		},
	}
}

// Sample collects one snapshot. A probe that fails contributes zero, and
// values are clamped to [0, 100].
func (s *Sampler) Sample() Stats {
	var st Stats
	if v, err := s.cpuPercent(); err == nil {
		st.CPUPercent = clampPercent(v)
	}
	if v, err := s.memPercent(); err == nil {
		st.MemPercent = clampPercent(v)
	}
	return st
}

// Sample collects a snapshot with a fresh gopsutil-backed Sampler.
func Sample() Stats {
	return NewSampler().Sample()
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
