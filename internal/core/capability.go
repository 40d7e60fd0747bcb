package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	lowPowerMemory = 4 << 30
	lowPowerCPUs   = 2
)

// Capability summarises the host as far as scene sizing cares.
type Capability struct {
	TotalMemory uint64
	CPUs        int
	LowPower    bool
}

// ProbeCapability inspects the host. Any probe that fails leaves its field
// zero and does not count towards LowPower; the joined error is returned for
// logging only.
func ProbeCapability(ctx context.Context) (Capability, error) {
	var (
		c    Capability
		errs []error
	)
	if v, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("probe memory: %w", err))
	} else {
		c.TotalMemory = v.Total
	}
	if n, err := cpu.CountsWithContext(ctx, true); err != nil {
		errs = append(errs, fmt.Errorf("probe cpus: %w", err))
	} else {
		c.CPUs = n
	}
	c.LowPower = c.lowPower()
	return c, errors.Join(errs...)
}

func (c Capability) lowPower() bool {
	if c.TotalMemory > 0 && c.TotalMemory < lowPowerMemory {
		return true
	}
	return c.CPUs > 0 && c.CPUs < lowPowerCPUs
}
